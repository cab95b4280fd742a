package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresmejia3/lsbcrypt/pkg/stego"
)

func Test_ParseConfig(t *testing.T) {
	t.Run("empty document gives defaults", func(t *testing.T) {
		cfg, err := ParseConfig([]byte(``))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("happy", func(t *testing.T) {
		cfg, err := ParseConfig([]byte(`
codec:
  iterations: 5000
  compression: ZSTD
  redundancy: true
  channel-order: rgb
limits:
  max-scan-pixels: 250000
server:
  address: 127.0.0.1:9000
  allowed-extensions: [.PNG, bmp]
`))
		require.NoError(t, err)
		assert.Equal(t, Codec{Iterations: 5000, Compression: "zstd", Redundancy: true, ChannelOrder: "rgb"}, cfg.Codec)
		assert.Equal(t, 250000, cfg.Limits.MaxScanPixels)
		assert.Equal(t, 5000, cfg.Limits.MaxWidth, "unset keys keep their default")
		assert.Equal(t, []string{"png", "bmp"}, cfg.Server.AllowedExtensions)
		assert.Equal(t, stego.RGB, cfg.Order())
	})

	t.Run("validates incorrect schema", func(t *testing.T) {
		_, err := ParseConfig([]byte(`codec: "things"`))
		assert.Error(t, err)
	})

	t.Run("does not show an error when user provides an unknown field", func(t *testing.T) {
		_, err := ParseConfig([]byte(`some-unknown-field: foo`))
		assert.NoError(t, err)
	})

	t.Run("collects every validation error", func(t *testing.T) {
		_, err := ParseConfig([]byte(`
codec:
  iterations: 0
  compression: brotli
  channel-order: grb
limits:
  max-upload-bytes: 0
server:
  address: ""
`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "5 errors occurred")
		assert.Contains(t, err.Error(), "codec iterations must be positive")
		assert.Contains(t, err.Error(), `unknown compression "brotli"`)
		assert.Contains(t, err.Error(), `unknown channel order "grb"`)
		assert.Contains(t, err.Error(), "server address is required")
	})
}

func Test_LoadConfig(t *testing.T) {
	t.Run("no path", func(t *testing.T) {
		cfg, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "lsbcrypt.yaml")
		require.NoError(t, os.WriteFile(path, []byte("codec:\n  iterations: 42\n"), 0600))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, 42, cfg.Codec.Iterations)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorContains(t, err, "failed to read config file")
	})
}

func Test_Dump(t *testing.T) {
	cfg := Default()
	out, err := cfg.Dump()
	require.NoError(t, err)
	assert.Contains(t, out, "iterations: 100000")
	assert.Contains(t, out, "channel-order: bgr")

	again, err := ParseConfig([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func Test_CodecOptions(t *testing.T) {
	cfg := Default()
	cfg.Codec.Redundancy = true

	opts := cfg.CodecOptions()
	assert.Equal(t, stego.Options{
		Iterations:    stego.DefaultIterations,
		Compression:   stego.CompressionZlib,
		Redundancy:    true,
		MaxScanPixels: 1000000,
	}, opts)

	_, err := stego.New(opts)
	require.NoError(t, err)
}

func Test_AllowsExtension(t *testing.T) {
	cfg := Default()
	for name, want := range map[string]bool{
		"photo.png":   true,
		"PHOTO.JPEG":  true,
		"archive.zip": false,
		"noextension": false,
		"trailing.":   false,
	} {
		assert.Equal(t, want, cfg.AllowsExtension(name), name)
	}
}
