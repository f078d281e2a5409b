// Package config loads the library's process-wide ambient settings: which
// hash function the EdDSA Context signs and verifies with, and the CLI's
// default encoding. It is entirely a CLI-facing concern — eddy.Context
// itself never imports this package, it just accepts a hash function as a
// constructor argument (spec.md §9 design note 1).
package config

import (
	"crypto/sha512"
	"fmt"
	"hash"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config holds the resolved settings for a single CLI invocation.
type Config struct {
	HashFunction string // "sha512" or "sha512_256"
	Encoding     string // "raw", "base16", "hex" or "base64"
}

// Load reads configuration from, in increasing priority: defaults, an
// optional eddy.yaml/eddy.toml file on the current path, environment
// variables prefixed EDDY_, and finally any flags already bound to v.
func Load(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = viper.New()
	}

	v.SetDefault("hash.function", "sha512")
	v.SetDefault("encoding", "base16")

	v.SetEnvPrefix("EDDY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("eddy")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "config: reading eddy config file")
		}
	}

	cfg := &Config{
		HashFunction: v.GetString("hash.function"),
		Encoding:     v.GetString("encoding"),
	}
	if cfg.HashFunction != "sha512" && cfg.HashFunction != "sha512_256" {
		return nil, errors.Errorf("config: unknown hash.function %q", cfg.HashFunction)
	}
	return cfg, nil
}

// HashFunc resolves the configured hash function name to a constructor
// compatible with eddsa.HashFunc.
func (c *Config) HashFunc() func() hash.Hash {
	switch c.HashFunction {
	case "sha512_256":
		return sha512.New512_256
	default:
		return sha512.New
	}
}

// String implements fmt.Stringer for logging.
func (c *Config) String() string {
	return fmt.Sprintf("hash.function=%s encoding=%s", c.HashFunction, c.Encoding)
}
