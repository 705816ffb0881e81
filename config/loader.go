// Package config provides a viper-backed configuration loader that
// implements component.ConfigLoader. Configuration comes from YAML files
// merged in load order, with environment variables (optionally prefixed)
// overriding file values.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Loader merges YAML files and environment variables into one view.
type Loader struct {
	v           *viper.Viper
	loadedFiles []string
}

// NewLoader creates an empty loader.
func NewLoader() *Loader {
	v := viper.New()
	v.SetConfigType("yaml")
	return &Loader{v: v}
}

// WithEnvPrefix enables environment overrides. A key like "emitter.pool_size"
// maps to PREFIX_EMITTER_POOL_SIZE.
func (l *Loader) WithEnvPrefix(prefix string) *Loader {
	if prefix != "" {
		l.v.SetEnvPrefix(prefix)
	}
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()
	return l
}

// LoadFile reads one YAML file and merges it over previously loaded values.
func (l *Loader) LoadFile(path string) error {
	l.v.SetConfigFile(path)
	if err := l.v.MergeInConfig(); err != nil {
		return fmt.Errorf("load config file %s: %w", path, err)
	}
	l.loadedFiles = append(l.loadedFiles, path)
	return nil
}

// LoadedFiles returns the files merged so far, in load order.
func (l *Loader) LoadedFiles() []string {
	out := make([]string, len(l.loadedFiles))
	copy(out, l.loadedFiles)
	return out
}

// Set forces a configuration value (highest priority). Mostly for tests.
func (l *Loader) Set(key string, value interface{}) {
	l.v.Set(key, value)
}

// Get returns the raw value for a key.
func (l *Loader) Get(key string) interface{} {
	return l.v.Get(key)
}

// Unmarshal deserializes a configuration section into a struct.
func (l *Loader) Unmarshal(key string, v interface{}) error {
	return l.v.UnmarshalKey(key, v)
}

// GetString returns a string value.
func (l *Loader) GetString(key string) string {
	return l.v.GetString(key)
}

// GetInt returns an integer value.
func (l *Loader) GetInt(key string) int {
	return l.v.GetInt(key)
}

// GetBool returns a boolean value.
func (l *Loader) GetBool(key string) bool {
	return l.v.GetBool(key)
}

// IsSet reports whether a key is present.
func (l *Loader) IsSet(key string) bool {
	return l.v.IsSet(key)
}
