package cryptography

import (
	"encoding/pem"
	"fmt"
	"math/big"
	"os"
	"path/filepath"

	"github.com/yalmn/cryptomorph/internal/domain/cryptoalg"
	"github.com/yalmn/cryptomorph/internal/pkg/fileutil"
)

// encodeKeyPEM wraps the big-endian bytes of value in a PEM block with the given label.
func encodeKeyPEM(label string, value *big.Int) []byte {
	return pem.EncodeToMemory(&pem.Block{
		Type:  label,
		Bytes: value.Bytes(),
	})
}

// decodeKeyPEM parses the first PEM block of data and checks its label.
func decodeKeyPEM(data []byte, label string) (*big.Int, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block found", cryptoalg.ErrMalformedInput)
	}
	if block.Type != label {
		return nil, fmt.Errorf("%w: expected PEM block %q, got %q", cryptoalg.ErrMalformedInput, label, block.Type)
	}
	if len(block.Bytes) == 0 {
		return nil, fmt.Errorf("%w: empty %s", cryptoalg.ErrMalformedInput, label)
	}
	return new(big.Int).SetBytes(block.Bytes), nil
}

func writeKeyFile(filename, label string, value *big.Int, perm os.FileMode) error {
	if err := fileutil.WriteFileAtomic(filename, encodeKeyPEM(label, value), perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", label, err)
	}
	return nil
}

func readKeyFile(filename, label string) (*big.Int, error) {
	data, err := os.ReadFile(filepath.Clean(filename))
	if err != nil {
		return nil, fmt.Errorf("unable to read key file: %w", err)
	}
	value, err := decodeKeyPEM(data, label)
	if err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", filename, err)
	}
	return value, nil
}

// siblingPublicKeyPath returns the conventional public key path next to a private key file.
func siblingPublicKeyPath(privateKeyPath string) string {
	return filepath.Join(filepath.Dir(privateKeyPath), cryptoalg.PublicKeyFileName)
}
