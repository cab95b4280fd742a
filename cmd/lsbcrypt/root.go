package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/andresmejia3/lsbcrypt/internal/config"
	"github.com/andresmejia3/lsbcrypt/pkg/stego"
)

// Global flags
var (
	verbose    bool
	configPath string

	codecFlags struct {
		Iterations   int
		Compression  string
		Redundancy   bool
		ChannelOrder string
	}
)

var rootCmd = &cobra.Command{
	Use:   "lsbcrypt",
	Short: "Hide encrypted messages in the low bits of images",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		if verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	flags.StringVar(&configPath, "config", "", "Path to a YAML config file")
	flags.IntVar(&codecFlags.Iterations, "iterations", stego.DefaultIterations, "PBKDF2 iterations (must match on conceal and reveal)")
	flags.StringVar(&codecFlags.Compression, "compression", stego.CompressionZlib, "Payload compression: zlib, zstd")
	flags.BoolVar(&codecFlags.Redundancy, "redundancy", false, "Protect the payload with Reed-Solomon parity shards")
	flags.StringVar(&codecFlags.ChannelOrder, "channel-order", stego.BGR.String(), "Channel embedding order: bgr, rgb")
}

// loadConfig reads --config and applies any codec flag set on the command line on top of it.
func loadConfig(cmd *cobra.Command) config.Config {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	flags := cmd.Flags()
	if flags.Changed("iterations") {
		cfg.Codec.Iterations = codecFlags.Iterations
	}
	if flags.Changed("compression") {
		cfg.Codec.Compression = codecFlags.Compression
	}
	if flags.Changed("redundancy") {
		cfg.Codec.Redundancy = codecFlags.Redundancy
	}
	if flags.Changed("channel-order") {
		if _, err := stego.ParseChannelOrder(codecFlags.ChannelOrder); err != nil {
			log.Fatal().Err(err).Msg("Invalid channel order")
		}
		cfg.Codec.ChannelOrder = codecFlags.ChannelOrder
	}

	return cfg
}

func newCodec(cfg config.Config, progress stego.Progress) *stego.Codec {
	opts := cfg.CodecOptions()
	opts.Progress = progress

	codec, err := stego.New(opts)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid codec settings")
	}
	return codec
}

func loadCarrier(path string, cfg config.Config) (*stego.PixelBuffer, string) {
	pixels, format, err := stego.LoadImage(path, cfg.Order())
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to load image")
	}
	log.Debug().Str("format", format).Int("width", pixels.Width).Int("height", pixels.Height).Msg("Loaded image")
	return pixels, format
}
