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

// Package config loads process configuration via github.com/spf13/viper
// (environment variables plus an optional file) into a typed struct
// validated with github.com/go-playground/validator/v10 tags. Every
// time.Duration field additionally accepts the day-aware notation
// ("1d12h") implemented by the duration package, on top of the plain
// strings time.ParseDuration already understands.
package config

import "time"

// RuntimeConfig sizes the shared worker pool.
type RuntimeConfig struct {
	Workers         int           `mapstructure:"workers" validate:"gte=0"`
	StrandQueueHint int           `mapstructure:"strandQueueHint" validate:"gte=0"`
	Watchdog        time.Duration `mapstructure:"watchdog" validate:"gte=0"`
}

// TransportConfig tunes dial/accept behavior and TLS.
type TransportConfig struct {
	DialTimeout   time.Duration `mapstructure:"dialTimeout" validate:"gte=0"`
	AcceptTimeout time.Duration `mapstructure:"acceptTimeout" validate:"gte=0"`
	TLSEnabled    bool          `mapstructure:"tlsEnabled"`
}

// BrokerConfig tunes the connection pool's idle-trim sweeper.
type BrokerConfig struct {
	SweepInterval time.Duration `mapstructure:"sweepInterval" validate:"gte=0"`
	IdleThreshold time.Duration `mapstructure:"idleThreshold" validate:"gte=0"`
}

// AionetConfig is the top-level configuration document a caller populates
// via Load.
type AionetConfig struct {
	Runtime   RuntimeConfig   `mapstructure:"runtime"`
	Transport TransportConfig `mapstructure:"transport"`
	Broker    BrokerConfig    `mapstructure:"broker"`
}

// Default returns an AionetConfig seeded with this module's defaults
// (runtime workers = GOMAXPROCS via zero-value, broker sweep/idle = 2s/120s),
// suitable as Load's starting point before env/file overrides apply.
func Default() AionetConfig {
	return AionetConfig{
		Broker: BrokerConfig{
			SweepInterval: 2 * time.Second,
			IdleThreshold: 120 * time.Second,
		},
	}
}
