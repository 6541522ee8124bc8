/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package lock_test

import (
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/aionet/lock"
)

var _ = Describe("keyed lock", func() {
	It("serializes same-key waiters in FIFO order", func() {
		lk := lock.New()
		defer lk.Close()

		var (
			mu    sync.Mutex
			order []int
			wg    sync.WaitGroup
		)

		const n = 5
		wg.Add(n)

		var starts [n]chan struct{}
		for i := range starts {
			starts[i] = make(chan struct{})
		}

		go func() {
			for i := 0; i < n; i++ {
				i := i
				<-starts[i]
				err := lk.Acquire("same-key", func(g lock.Guard) {
					mu.Lock()
					order = append(order, i)
					mu.Unlock()
					time.Sleep(5 * time.Millisecond)
					_ = g.Release()
					wg.Done()
				})
				Expect(err).ToNot(HaveOccurred())
			}
		}()

		for i := range starts {
			close(starts[i])
			time.Sleep(time.Millisecond)
		}

		wg.Wait()

		Expect(order).To(Equal([]int{0, 1, 2, 3, 4}))
	})

	It("runs unrelated keys fully in parallel", func() {
		lk := lock.New()
		defer lk.Close()

		var wg sync.WaitGroup
		wg.Add(2)

		started := make(chan string, 2)

		release := func(g lock.Guard) {
			started <- g.Key()
			time.Sleep(20 * time.Millisecond)
			_ = g.Release()
			wg.Done()
		}

		Expect(lk.Acquire("key-a", release)).To(Succeed())
		Expect(lk.Acquire("key-b", release)).To(Succeed())

		Eventually(started, time.Second).Should(Receive())
		Eventually(started, time.Second).Should(Receive())

		wg.Wait()
	})

	It("rejects Acquire after Close", func() {
		lk := lock.New()
		lk.Close()

		err := lk.Acquire("any", func(g lock.Guard) {})
		Expect(err).To(HaveOccurred())
	})
})
