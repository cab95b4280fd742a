package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andresmejia3/lsbcrypt/pkg/stego"
)

var infoCmd = &cobra.Command{
	Use:   "info [image_path]",
	Short: "Check an image for a sentinel marker without decrypting",
	Long:  `Scans the low bits of an image for the end-of-message marker and reports how much of the capacity the embedded payload occupies. No key is needed; random images can report a false positive.`,
	Args:  cobra.ExactArgs(1), // Requires exactly one argument: the image path
	RunE: func(cmd *cobra.Command, args []string) error {
		imagePath := args[0]
		cfg := loadConfig(cmd)

		pixels, _, err := stego.LoadImage(imagePath, cfg.Order())
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", imagePath, err)
		}

		info, err := stego.Inspect(pixels, cfg.Limits.MaxScanPixels)
		if err != nil {
			return fmt.Errorf("failed to get info from %s: %w", imagePath, err)
		}

		fmt.Println("Stego Image Information:")
		fmt.Println("------------------------")
		fmt.Printf("Dimensions:       %dx%d\n", info.Width, info.Height)
		fmt.Printf("Capacity:         %d bits\n", info.CapacityBits)
		fmt.Printf("Marker Found:     %t\n", info.HasMessage)
		if info.HasMessage {
			fmt.Printf("Payload Size:     %d bytes\n", info.PayloadBytes)
			fmt.Printf("Capacity Used:    %.2f%%\n", 100*info.FillRatio())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
