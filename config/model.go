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

package config

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	libdur "github.com/nabbar/aionet/duration"
)

// dayAwareDurationHook lets every time.Duration field in a config struct
// accept the day-aware notation ("5d23h15m13s") on top of the plain
// strings time.ParseDuration already understands, falling back to
// duration.Parse only when the standard parse fails.
func dayAwareDurationHook() mapstructure.DecodeHookFuncType {
	target := reflect.TypeOf(time.Duration(0))

	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t != target || f.Kind() != reflect.String {
			return data, nil
		}

		s := data.(string)
		if std, err := time.ParseDuration(s); err == nil {
			return std, nil
		}

		d, err := libdur.Parse(s)
		if err != nil {
			return data, err
		}

		return d.Time(), nil
	}
}

// Load reads configuration from environment variables prefixed with prefix
// (uppercased, with "." replaced by "_", following viper's own
// AutomaticEnv/SetEnvKeyReplacer convention) and, if present, a config file
// named "<prefix>.yaml|.json|.toml" on the current path, then decodes into
// out and validates it with struct tags.
//
// out must be a pointer to a struct (typically *AionetConfig) already
// holding any caller-supplied defaults; Load only overrides fields actually
// set in the environment or file.
func Load(prefix string, out interface{}) error {
	v := viper.New()
	v.SetEnvPrefix(prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName(prefix)
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return ErrorReadConfig.Error(err)
		}
	}

	// viper only unmarshals keys it already knows about, so every field of
	// out is registered as a default first; AutomaticEnv then overrides it.
	defaults := make(map[string]interface{})
	if err := mapstructure.Decode(out, &defaults); err != nil {
		return ErrorUnmarshal.Error(err)
	}
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	hook := mapstructure.ComposeDecodeHookFunc(dayAwareDurationHook())

	if err := v.Unmarshal(out, viper.DecodeHook(hook)); err != nil {
		return ErrorUnmarshal.Error(err)
	}

	if err := validator.New().Struct(out); err != nil {
		return ErrorValidate.Error(err)
	}

	return nil
}
