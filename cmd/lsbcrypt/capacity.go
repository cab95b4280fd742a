package main

import (
	"bufio"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/andresmejia3/lsbcrypt/pkg/stego"
)

// envelopeOverhead approximates the bytes added around a message: salt, IV, one padding block,
// the zlib frame and the sentinel.
const envelopeOverhead = 16 + 16 + 16 + 11 + 2

var capacityCmd = &cobra.Command{
	Use:   "capacity [image-path]",
	Short: "Calculate the storage capacity of an image",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		imagePath := args[0]

		f, err := os.Open(imagePath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open image")
		}
		defer f.Close()

		// Only the header is needed.
		imgCfg, format, err := stego.DecodeConfig(bufio.NewReader(f))
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to decode image")
		}

		// The configured scan bound limits what reveal can read back.
		w, h := imgCfg.Width, imgCfg.Height
		bits := newCodec(loadConfig(cmd), nil).Capacity(w, h)
		estimate := bits/8 - envelopeOverhead
		if estimate < 0 {
			estimate = 0
		}

		wtr := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(wtr, "Format\tDimensions\tCapacity (Bits)\tCapacity (Bytes)\tMax Message (est. Bytes)")
		fmt.Fprintln(wtr, "------\t----------\t---------------\t----------------\t------------------------")
		fmt.Fprintf(wtr, "%s\t%dx%d\t%d\t%d\t%d\n", format, w, h, bits, bits/8, estimate)
		wtr.Flush()

		if stego.IsLossyFormat(format) {
			log.Warn().Str("format", format).Msg("Lossy carrier: conceal writes PNG output")
		}
	},
}

func init() {
	rootCmd.AddCommand(capacityCmd)
}
