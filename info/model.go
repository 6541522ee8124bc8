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

package info

import (
	"sync"

	libatm "github.com/nabbar/aionet/atomic"
)

type infoMap struct {
	m sync.Mutex
	k []string
	v libatm.MapTyped[string, string]
}

func (i *infoMap) Set(key, value string) {
	i.m.Lock()
	if _, ok := i.v.Load(key); !ok {
		i.k = append(i.k, key)
	}
	i.m.Unlock()

	i.v.Store(key, value)
}

func (i *infoMap) Get(key string) (string, bool) {
	return i.v.Load(key)
}

func (i *infoMap) Keys() []string {
	i.m.Lock()
	defer i.m.Unlock()

	k := make([]string, len(i.k))
	copy(k, i.k)
	return k
}

func (i *infoMap) Walk(fct FuncWalk) {
	for _, k := range i.Keys() {
		if v, ok := i.v.Load(k); ok {
			if !fct(k, v) {
				return
			}
		}
	}
}

func (i *infoMap) Clone() Info {
	n := New()
	i.Walk(func(key, value string) bool {
		n.Set(key, value)
		return true
	})
	return n
}

func (i *infoMap) Merge(src Info) {
	if src == nil {
		return
	}

	src.Walk(func(key, value string) bool {
		i.Set(key, value)
		return true
	})
}
