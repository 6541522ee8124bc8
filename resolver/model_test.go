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

package resolver_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/aionet/resolver"
)

var _ = Describe("Resolver", func() {
	var r resolver.Resolver

	BeforeEach(func() {
		r = resolver.New(2 * time.Second)
	})

	It("bypasses resolution for an empty host and yields a wildcard endpoint", func() {
		e, err := r.ResolveTCP(context.Background(), "", 8080)
		Expect(err).ToNot(HaveOccurred())
		Expect(e.Network).To(Equal("tcp"))
		Expect(e.IsWildcard()).To(BeTrue())
		Expect(e.Addresses).To(HaveLen(1))
	})

	It("bypasses resolution for 0.0.0.0", func() {
		e, err := r.ResolveTCP(context.Background(), "0.0.0.0", 1234)
		Expect(err).ToNot(HaveOccurred())
		Expect(e.IsWildcard()).To(BeTrue())
	})

	It("resolves localhost to at least one address", func() {
		e, err := r.ResolveTCP(context.Background(), "localhost", 80)
		Expect(err).ToNot(HaveOccurred())
		Expect(e.Addresses).ToNot(BeEmpty())
	})

	It("rejects a zero port", func() {
		_, err := r.ResolveTCP(context.Background(), "localhost", 0)
		Expect(err).To(HaveOccurred())
	})

	It("resolves a unix path trivially", func() {
		e, err := r.ResolveUnix("/tmp/example.sock")
		Expect(err).ToNot(HaveOccurred())
		Expect(e.Network).To(Equal("unix"))
		Expect(e.Addresses).To(Equal([]string{"/tmp/example.sock"}))
	})

	It("rejects an empty unix path", func() {
		_, err := r.ResolveUnix("   ")
		Expect(err).To(HaveOccurred())
	})
})
