package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/andresmejia3/lsbcrypt/pkg/stego"
)

var (
	concealFlags struct {
		Image  string
		Msg    string
		File   string
		Out    string
		DryRun bool
		Keys   keyFlags
	}
)

var concealCmd = &cobra.Command{
	Use:   "conceal",
	Short: "Conceal a message in an image",
	Run: func(cmd *cobra.Command, args []string) {
		if concealFlags.Msg != "" && concealFlags.File != "" {
			log.Fatal().Msg("message and file flags cannot both be provided")
		}
		if concealFlags.Msg == "" && concealFlags.File == "" {
			log.Fatal().Msg("a message or a file is required")
		}

		cfg := loadConfig(cmd)
		pixels, format := loadCarrier(concealFlags.Image, cfg)
		if stego.IsLossyFormat(format) {
			log.Warn().Str("format", format).Msg("Carrier is lossy; the output is written as PNG and must not be re-encoded")
		}

		message, err := readMessage()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to read message")
		}

		key, err := concealFlags.Keys.resolve(true)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to get key")
		}

		codec := newCodec(cfg, nil)
		bits, err := codec.Prepare(message, key)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to prepare payload")
		}

		capacity := codec.Capacity(pixels.Width, pixels.Height)
		if concealFlags.DryRun {
			fmt.Printf("Message:   %d bytes\n", len(message))
			fmt.Printf("Required:  %d bits\n", len(bits))
			fmt.Printf("Available: %d bits\n", capacity)
			if len(bits) > capacity {
				fmt.Println("Result:    does not fit")
				os.Exit(1)
			}
			fmt.Printf("Result:    fits (%.1f%% of capacity)\n", 100*float64(len(bits))/float64(capacity))
			return
		}

		if len(bits) > capacity {
			capErr := &stego.CapacityError{Required: len(bits), Available: capacity}
			log.Fatal().Int("required_bits", capErr.Required).Int("max_bytes", capErr.MaxBytes()).Msg("Message too long to fit in the image")
		}

		bar := newProgressBar((len(bits)+1)/2, " 🔒 Concealing")
		encoded, err := stego.Embed(pixels, bits, bar)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to conceal message")
		}
		bar.Finish()

		out := outputPath(concealFlags.Out)
		if err := stego.SavePNG(out, encoded); err != nil {
			log.Fatal().Err(err).Msg("Failed to save image")
		}
		log.Info().Str("output", out).Int("bits", len(bits)).Msg("Message concealed")
	},
}

func readMessage() ([]byte, error) {
	switch concealFlags.File {
	case "":
		return []byte(concealFlags.Msg), nil
	case "-":
		return io.ReadAll(os.Stdin)
	default:
		return os.ReadFile(concealFlags.File)
	}
}

// outputPath defaults to output/hidden.png and makes sure the directory exists. Output is always
// PNG, so other extensions are replaced.
func outputPath(out string) string {
	if out == "" {
		out = filepath.Join("output", "hidden.png")
	}
	if ext := filepath.Ext(out); !strings.EqualFold(ext, ".png") {
		log.Warn().Str("extension", ext).Msg("Output is always PNG, changing extension")
		out = strings.TrimSuffix(out, ext) + ".png"
	}

	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		log.Fatal().Err(err).Msg("Failed to create output directory")
	}
	return out
}

func init() {
	rootCmd.AddCommand(concealCmd)

	concealCmd.Flags().StringVarP(&concealFlags.Image, "image-path", "i", "", "Path to image (required)")
	concealCmd.MarkFlagRequired("image-path")
	concealCmd.Flags().StringVarP(&concealFlags.Msg, "message", "m", "", "Message you want to conceal")
	concealCmd.Flags().StringVarP(&concealFlags.File, "file", "f", "", "Path to file to conceal (instead of message). Use '-' for stdin.")
	concealCmd.Flags().StringVarP(&concealFlags.Out, "output", "o", "", "Output path for the PNG image (default output/hidden.png)")
	concealCmd.Flags().BoolVar(&concealFlags.DryRun, "dry-run", false, "Check if the message fits without encoding")
	concealFlags.Keys.register(concealCmd)
}
