package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(cmd)
		out, err := cfg.Dump()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to dump config")
		}
		fmt.Print(out)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
