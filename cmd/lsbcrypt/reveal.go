package main

import (
	"errors"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/andresmejia3/lsbcrypt/pkg/stego"
)

var (
	revealFlags struct {
		Image string
		Out   string
		Raw   bool
		Keys  keyFlags
	}
)

var revealCmd = &cobra.Command{
	Use:   "reveal",
	Short: "Reveal a message in an image",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(cmd)
		pixels, _ := loadCarrier(revealFlags.Image, cfg)

		key, err := revealFlags.Keys.resolve(false)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to get key")
		}

		scan := pixels.Width * pixels.Height
		if limit := cfg.Limits.MaxScanPixels; limit > 0 && limit < scan {
			scan = limit
		}
		bar := newProgressBar(scan*stego.Channels, " 🔍 Scanning")
		codec := newCodec(cfg, bar)

		var message []byte
		if revealFlags.Raw {
			message, err = codec.Reveal(pixels, key)
		} else {
			var text string
			text, err = codec.RevealText(pixels, key)
			message = []byte(text)
		}
		bar.Finish()

		switch {
		case errors.Is(err, stego.ErrNotFound):
			log.Fatal().Msg("No hidden message found")
		case stego.IsWrongKey(err):
			log.Fatal().Err(err).Msg("Failed to decrypt message. Incorrect key?")
		case err != nil:
			log.Fatal().Err(err).Msg("Failed to reveal message")
		}

		var w io.Writer = os.Stdout
		if revealFlags.Out != "" {
			f, err := os.Create(revealFlags.Out)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to create output file")
			}
			defer f.Close()
			w = f
		}

		if _, err := w.Write(message); err != nil {
			log.Fatal().Err(err).Msg("Failed to write message")
		}
	},
}

func init() {
	rootCmd.AddCommand(revealCmd)

	revealCmd.Flags().StringVarP(&revealFlags.Image, "image-path", "i", "", "Path to image (required)")
	revealCmd.MarkFlagRequired("image-path")
	revealCmd.Flags().StringVarP(&revealFlags.Out, "output", "o", "", "Output path for revealed message (optional)")
	revealCmd.Flags().BoolVar(&revealFlags.Raw, "raw", false, "Write the message as is, without checking it is UTF-8 text")
	revealFlags.Keys.register(revealCmd)
}
