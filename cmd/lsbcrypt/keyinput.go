package main

import (
	"bytes"
	"fmt"
	"os"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/andresmejia3/lsbcrypt/pkg/stego"
)

// KeyEnvVar supplies key material when no key flag is given.
const KeyEnvVar = "LSBCRYPT_KEY"

type keyFlags struct {
	Key        string
	KeyFile    string
	PrivateKey string
	PeerKey    string
}

func (k *keyFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&k.Key, "key", "k", "", "Key material (passphrase). Prefer --key-file or "+KeyEnvVar)
	cmd.Flags().StringVar(&k.KeyFile, "key-file", "", "Read key material from a file")
	cmd.Flags().StringVar(&k.PrivateKey, "private-key", "", "Your .pem private key, combined with --peer-key via ECDH")
	cmd.Flags().StringVar(&k.PeerKey, "peer-key", "", "The other party's .pem public key")
}

// resolve picks the key source: --key, --key-file, --private-key with --peer-key, the environment,
// then an interactive prompt. confirm asks twice when prompting.
func (k *keyFlags) resolve(confirm bool) ([]byte, error) {
	sources := 0
	for _, set := range []bool{k.Key != "", k.KeyFile != "", k.PrivateKey != "" || k.PeerKey != ""} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return nil, fmt.Errorf("only one of --key, --key-file or --private-key/--peer-key can be used")
	}

	switch {
	case k.Key != "":
		return []byte(k.Key), nil
	case k.KeyFile != "":
		data, err := os.ReadFile(k.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("could not read key file: %w", err)
		}
		data = bytes.TrimRight(data, "\r\n")
		if len(data) == 0 {
			return nil, fmt.Errorf("key file %s is empty", k.KeyFile)
		}
		return data, nil
	case k.PrivateKey != "" || k.PeerKey != "":
		if k.PrivateKey == "" || k.PeerKey == "" {
			return nil, fmt.Errorf("both --private-key and --peer-key are required")
		}
		return stego.SharedKey(k.PrivateKey, k.PeerKey)
	}

	if envKey := os.Getenv(KeyEnvVar); envKey != "" {
		return []byte(envKey), nil
	}

	key, err := readPassword("Enter key: ")
	if err != nil {
		return nil, err
	}
	if len(key) == 0 {
		return nil, fmt.Errorf("key cannot be empty")
	}

	if confirm {
		again, err := readPassword("Confirm key: ")
		if err != nil {
			return nil, err
		}
		if !bytes.Equal(key, again) {
			return nil, fmt.Errorf("keys do not match")
		}
	}
	return key, nil
}

func readPassword(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	if term.IsTerminal(int(syscall.Stdin)) {
		return term.ReadPassword(int(syscall.Stdin))
	}

	// STDIN is piped (e.g. the message), fall back to the controlling terminal.
	tty, err := os.Open("/dev/tty")
	if err != nil {
		if runtime.GOOS == "windows" {
			return nil, fmt.Errorf("key must be set via %s when STDIN is piped", KeyEnvVar)
		}
		return nil, fmt.Errorf("cannot prompt for key: STDIN is piped and /dev/tty is not available. Set %s", KeyEnvVar)
	}
	defer tty.Close()

	return term.ReadPassword(int(tty.Fd()))
}
