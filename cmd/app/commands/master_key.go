package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	cryptoDomain "github.com/syteworks/stellar-custody/internal/crypto/domain"
	cryptoService "github.com/syteworks/stellar-custody/internal/crypto/service"
)

// RunCreateMasterKey generates a fresh 32-byte master key for envelope
// encryption and prints it as environment configuration. Key material is
// zeroed from memory after encoding.
//
// Without a KMS key URI the raw key is printed base64-encoded, ready for
// MASTER_ENCRYPTION_KEY. With a KMS key URI the key is wrapped first and the
// printed value is the base64 KMS ciphertext. For local development use
// kmsKeyURI="base64key://<32-byte-base64-key>"; in production use a cloud
// provider (gcpkms://, awskms://, azurekeyvault://, hashivault://).
func RunCreateMasterKey(
	ctx context.Context,
	kmsService cryptoService.KMSService,
	out io.Writer,
	kmsKeyURI string,
) error {
	masterKey := make([]byte, cryptoDomain.KeySize)
	if _, err := rand.Read(masterKey); err != nil {
		return fmt.Errorf("failed to generate master key: %w", err)
	}
	defer cryptoDomain.Zero(masterKey)

	if kmsKeyURI == "" {
		fmt.Fprintln(out, "# Master Key Configuration")
		fmt.Fprintln(out, "# Store this key securely; it cannot be recovered.")
		fmt.Fprintf(out, "MASTER_ENCRYPTION_KEY=\"%s\"\n", base64.StdEncoding.EncodeToString(masterKey))
		return nil
	}

	keeperInterface, err := kmsService.OpenKeeper(ctx, kmsKeyURI)
	if err != nil {
		return fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() {
		if closeErr := keeperInterface.Close(); closeErr != nil {
			fmt.Fprintf(out, "# Warning: failed to close KMS keeper: %v\n", closeErr)
		}
	}()

	// The keeper interface only exposes Decrypt; wrapping needs Encrypt.
	keeper, ok := keeperInterface.(interface {
		Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	})
	if !ok {
		return fmt.Errorf("KMS keeper does not support encryption")
	}

	ciphertext, err := keeper.Encrypt(ctx, masterKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt master key with KMS: %w", err)
	}

	fmt.Fprintln(out, "# Master Key Configuration (KMS Mode)")
	fmt.Fprintln(out, "# The plaintext key never leaves this process.")
	fmt.Fprintf(out, "MASTER_ENCRYPTION_KEY=\"%s\"\n", base64.StdEncoding.EncodeToString(ciphertext))
	fmt.Fprintf(out, "KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
	return nil
}
