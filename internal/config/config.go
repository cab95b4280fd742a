package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/andresmejia3/lsbcrypt/pkg/stego"
)

// Config holds the settings shared by the CLI and the HTTP server.
type Config struct {
	Codec  Codec  `yaml:"codec"`
	Limits Limits `yaml:"limits"`
	Server Server `yaml:"server"`
}

// Codec must match between the side that conceals and the side that reveals.
type Codec struct {
	Iterations   int    `yaml:"iterations"`
	Compression  string `yaml:"compression"`
	Redundancy   bool   `yaml:"redundancy"`
	ChannelOrder string `yaml:"channel-order"`
}

// Limits bounds the work done for a single carrier.
type Limits struct {
	MaxWidth       int   `yaml:"max-width"`
	MaxHeight      int   `yaml:"max-height"`
	MaxScanPixels  int   `yaml:"max-scan-pixels"`
	MaxUploadBytes int64 `yaml:"max-upload-bytes"`
}

type Server struct {
	Address           string   `yaml:"address"`
	AllowedExtensions []string `yaml:"allowed-extensions"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Codec: Codec{
			Iterations:   stego.DefaultIterations,
			Compression:  stego.CompressionZlib,
			ChannelOrder: stego.BGR.String(),
		},
		Limits: Limits{
			MaxWidth:       5000,
			MaxHeight:      5000,
			MaxScanPixels:  1000000,
			MaxUploadBytes: 16 * 1024 * 1024,
		},
		Server: Server{
			Address:           ":8080",
			AllowedExtensions: []string{"png", "jpg", "jpeg", "bmp", "tiff", "gif", "webp"},
		},
	}
}

// Dump generates a YAML string of the Config object
func (c *Config) Dump() (string, error) {
	d, err := yaml.Marshal(c)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate YAML dump of config")
	}

	return string(d), nil
}

func (c *Config) validate() error {
	var result *multierror.Error

	if c.Codec.Iterations < 1 {
		result = multierror.Append(result, fmt.Errorf("codec iterations must be positive"))
	}

	if _, err := stego.NewCompressor(c.Codec.Compression); err != nil {
		result = multierror.Append(result, err)
	}

	if _, err := stego.ParseChannelOrder(c.Codec.ChannelOrder); err != nil {
		result = multierror.Append(result, err)
	}

	if c.Limits.MaxWidth < 1 || c.Limits.MaxHeight < 1 {
		result = multierror.Append(result, fmt.Errorf("limits max-width and max-height must be positive"))
	}

	if c.Limits.MaxScanPixels < 0 {
		result = multierror.Append(result, fmt.Errorf("limits max-scan-pixels cannot be negative"))
	}

	if c.Limits.MaxUploadBytes < 1 {
		result = multierror.Append(result, fmt.Errorf("limits max-upload-bytes must be positive"))
	}

	if c.Server.Address == "" {
		result = multierror.Append(result, fmt.Errorf("server address is required"))
	}

	if len(c.Server.AllowedExtensions) == 0 {
		result = multierror.Append(result, fmt.Errorf("server allowed-extensions cannot be empty"))
	}

	return result.ErrorOrNil()
}

// ParseConfig reads YAML on top of Default. Keys left out keep their default value.
func ParseConfig(data []byte) (Config, error) {
	config := Default()

	err := yaml.Unmarshal(data, &config)
	if err != nil {
		return config, err
	}

	config.Codec.Compression = strings.ToLower(config.Codec.Compression)
	config.Codec.ChannelOrder = strings.ToLower(config.Codec.ChannelOrder)
	for i, ext := range config.Server.AllowedExtensions {
		config.Server.AllowedExtensions[i] = strings.ToLower(strings.TrimPrefix(ext, "."))
	}

	if err = config.validate(); err != nil {
		return config, err
	}

	return config, nil
}

// LoadConfig parses the file at path. An empty path yields Default.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "failed to read config file %s", path)
	}

	config, err := ParseConfig(data)
	if err != nil {
		return config, errors.Wrapf(err, "invalid config file %s", path)
	}
	return config, nil
}

// CodecOptions maps the codec and limits sections onto stego.Options.
func (c *Config) CodecOptions() stego.Options {
	return stego.Options{
		Iterations:    c.Codec.Iterations,
		Compression:   c.Codec.Compression,
		Redundancy:    c.Codec.Redundancy,
		MaxScanPixels: c.Limits.MaxScanPixels,
	}
}

// Order returns the parsed channel order. The value was checked by ParseConfig.
func (c *Config) Order() stego.ChannelOrder {
	order, _ := stego.ParseChannelOrder(c.Codec.ChannelOrder)
	return order
}

// AllowsExtension reports whether a file name's extension is on the server allow-list.
func (c *Config) AllowsExtension(filename string) bool {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return false
	}
	ext := strings.ToLower(filename[idx+1:])
	for _, allowed := range c.Server.AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
