package stego

import (
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	PrivateKeyFile = "private.pem"
	PublicKeyFile  = "public.pem"
)

// GenerateKeyPair writes a P-256 private key (EC PRIVATE KEY, mode 0600) and its PKIX public key
// into outDir. Two parties exchange public keys and derive the same key material with SharedKey.
func GenerateKeyPair(outDir string) error {
	if _, err := os.Stat(outDir); os.IsNotExist(err) {
		return fmt.Errorf("output directory does not exist: %s", outDir)
	}

	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return err
	}

	privBytes, err := x509.MarshalECPrivateKey(privateKey)
	if err != nil {
		return err
	}
	if err := writePEM(filepath.Join(outDir, PrivateKeyFile), "EC PRIVATE KEY", privBytes, 0600); err != nil {
		return err
	}

	pubBytes, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	if err != nil {
		return err
	}
	return writePEM(filepath.Join(outDir, PublicKeyFile), "PUBLIC KEY", pubBytes, 0644)
}

// SharedKey performs ECDH between our private key and the peer's public key and returns the raw
// shared secret, to be used as key material.
func SharedKey(privateKeyPath, peerPublicKeyPath string) ([]byte, error) {
	priv, err := loadPrivateKey(privateKeyPath)
	if err != nil {
		return nil, err
	}
	pub, err := loadPublicKey(peerPublicKeyPath)
	if err != nil {
		return nil, err
	}

	secret, err := priv.ECDH(pub)
	if err != nil {
		return nil, fmt.Errorf("ECDH failed: %w", err)
	}
	return secret, nil
}

func writePEM(path, blockType string, der []byte, perm os.FileMode) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if err := pem.Encode(file, &pem.Block{Type: blockType, Bytes: der}); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func readPEM(path string) (*pem.Block, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read key file: %w", err)
	}
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("failed to parse PEM block in %s", path)
	}
	return block, nil
}

func loadPrivateKey(path string) (*ecdh.PrivateKey, error) {
	block, err := readPEM(path)
	if err != nil {
		return nil, err
	}
	if block.Type != "EC PRIVATE KEY" {
		return nil, fmt.Errorf("unexpected key type %q in %s", block.Type, path)
	}

	privECDSA, err := x509.ParseECPrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse EC private key: %w", err)
	}
	return privECDSA.ECDH()
}

func loadPublicKey(path string) (*ecdh.PublicKey, error) {
	block, err := readPEM(path)
	if err != nil {
		return nil, err
	}
	if block.Type != "PUBLIC KEY" {
		return nil, fmt.Errorf("unexpected key type %q in %s", block.Type, path)
	}

	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}
	pubECDSA, ok := pub.(*ecdsa.PublicKey)
	if !ok {
		return nil, errors.New("key is not an EC public key")
	}
	return pubECDSA.ECDH()
}
