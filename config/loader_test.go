package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_LoadFile(t *testing.T) {
	path := writeYAML(t, "app.yaml", `
emitter:
  enabled: true
  pool_size: 42
  mode: fanout
logger:
  level: debug
`)

	l := NewLoader()
	require.NoError(t, l.LoadFile(path))

	assert.Equal(t, 42, l.GetInt("emitter.pool_size"))
	assert.Equal(t, "fanout", l.GetString("emitter.mode"))
	assert.True(t, l.GetBool("emitter.enabled"))
	assert.Equal(t, "debug", l.GetString("logger.level"))
	assert.Equal(t, []string{path}, l.LoadedFiles())
}

func TestLoader_LoadFile_Missing(t *testing.T) {
	l := NewLoader()
	err := l.LoadFile("/nonexistent/app.yaml")
	assert.Error(t, err)
	assert.Empty(t, l.LoadedFiles())
}

func TestLoader_MergeOrder(t *testing.T) {
	base := writeYAML(t, "base.yaml", `
emitter:
  pool_size: 10
  mode: sequential
`)
	override := writeYAML(t, "override.yaml", `
emitter:
  pool_size: 99
`)

	l := NewLoader()
	require.NoError(t, l.LoadFile(base))
	require.NoError(t, l.LoadFile(override))

	// later files win, untouched keys survive
	assert.Equal(t, 99, l.GetInt("emitter.pool_size"))
	assert.Equal(t, "sequential", l.GetString("emitter.mode"))
}

func TestLoader_Unmarshal(t *testing.T) {
	path := writeYAML(t, "app.yaml", `
emitter:
  enabled: true
  pool_size: 7
  serialize_events: true
`)

	l := NewLoader()
	require.NoError(t, l.LoadFile(path))

	var section struct {
		Enabled         bool `mapstructure:"enabled"`
		PoolSize        int  `mapstructure:"pool_size"`
		SerializeEvents bool `mapstructure:"serialize_events"`
	}
	require.NoError(t, l.Unmarshal("emitter", &section))

	assert.True(t, section.Enabled)
	assert.Equal(t, 7, section.PoolSize)
	assert.True(t, section.SerializeEvents)
}

func TestLoader_SetAndIsSet(t *testing.T) {
	l := NewLoader()

	assert.False(t, l.IsSet("emitter.mode"))

	l.Set("emitter.mode", "fanout")
	assert.True(t, l.IsSet("emitter.mode"))
	assert.Equal(t, "fanout", l.Get("emitter.mode"))
}

func TestLoader_EnvPrefix(t *testing.T) {
	t.Setenv("APP_EMITTER_POOL_SIZE", "64")

	l := NewLoader().WithEnvPrefix("APP")
	assert.Equal(t, 64, l.GetInt("emitter.pool_size"))
}

func TestProvideLoader(t *testing.T) {
	path := writeYAML(t, "app.yaml", `
emitter:
  pool_size: 12
`)

	injector := do.New()
	do.Provide(injector, ProvideLoader(ProvideLoaderOptions{
		ConfigFiles: []string{path},
	}))

	loader, err := do.Invoke[*Loader](injector)
	require.NoError(t, err)
	assert.Equal(t, 12, loader.GetInt("emitter.pool_size"))
}

func TestProvideLoader_BadFile(t *testing.T) {
	injector := do.New()
	do.Provide(injector, ProvideLoader(ProvideLoaderOptions{
		ConfigFiles: []string{"/nonexistent/app.yaml"},
	}))

	_, err := do.Invoke[*Loader](injector)
	assert.Error(t, err)
}

func TestProvideLoaderValue(t *testing.T) {
	l := NewLoader()
	l.Set("emitter.enabled", true)

	injector := do.New()
	do.Provide(injector, ProvideLoaderValue(l))

	got, err := do.Invoke[*Loader](injector)
	require.NoError(t, err)
	assert.Same(t, l, got)
}
