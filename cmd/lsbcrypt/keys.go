package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/andresmejia3/lsbcrypt/pkg/stego"
)

var kOut string

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Generate a P-256 key pair for ECDH key agreement",
	Long:  `Writes private.pem and public.pem. Exchange public keys, then conceal and reveal with --private-key (yours) and --peer-key (theirs).`,
	Run: func(cmd *cobra.Command, args []string) {
		log.Info().Str("output", kOut).Msg("Generating P-256 keys...")
		if err := stego.GenerateKeyPair(kOut); err != nil {
			log.Fatal().Err(err).Msg("Error generating keys")
		}
		log.Info().Msg("Keys generated successfully")
	},
}

func init() {
	rootCmd.AddCommand(keysCmd)

	keysCmd.Flags().StringVarP(&kOut, "output", "o", "", "Path to directory to save keys (required)")
	keysCmd.MarkFlagRequired("output")
}
