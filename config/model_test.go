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

package config_test

import (
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/aionet/config"
)

var _ = Describe("Load", func() {
	It("seeds from AionetConfig defaults and overrides from the environment", func() {
		Expect(os.Setenv("AIONET_RUNTIME_WORKERS", "4")).To(Succeed())
		defer func() { _ = os.Unsetenv("AIONET_RUNTIME_WORKERS") }()

		cfg := config.Default()
		Expect(config.Load("aionet", &cfg)).To(Succeed())

		Expect(cfg.Runtime.Workers).To(Equal(4))
		Expect(cfg.Broker.SweepInterval).To(Equal(2 * time.Second))
		Expect(cfg.Broker.IdleThreshold).To(Equal(120 * time.Second))
	})

	It("rejects a negative duration", func() {
		Expect(os.Setenv("AIONET_BROKER_SWEEPINTERVAL", "-1s")).To(Succeed())
		defer func() { _ = os.Unsetenv("AIONET_BROKER_SWEEPINTERVAL") }()

		cfg := config.Default()
		err := config.Load("aionet", &cfg)
		Expect(err).To(HaveOccurred())
	})

	It("accepts day-aware duration notation", func() {
		Expect(os.Setenv("AIONET_BROKER_IDLETHRESHOLD", "1d12h")).To(Succeed())
		defer func() { _ = os.Unsetenv("AIONET_BROKER_IDLETHRESHOLD") }()

		cfg := config.Default()
		Expect(config.Load("aionet", &cfg)).To(Succeed())

		Expect(cfg.Broker.IdleThreshold).To(Equal(36 * time.Hour))
	})
})
