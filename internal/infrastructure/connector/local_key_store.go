package connector

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yalmn/cryptomorph/internal/domain/keys"
	"github.com/yalmn/cryptomorph/internal/pkg/logger"
)

// ErrOutsideKeyStore is returned for paths that do not resolve below the store root
var ErrOutsideKeyStore = errors.New("path is outside of the key store")

// localKeyStore keeps key files below a root directory, one sub-directory per key pair
type localKeyStore struct {
	root   string
	logger logger.Logger
}

// NewLocalKeyStore creates the root directory if needed and returns a file system key store
func NewLocalKeyStore(root string, logger logger.Logger) (keys.KeyStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve key store root: %w", err)
	}
	if err := os.MkdirAll(abs, 0700); err != nil {
		return nil, fmt.Errorf("failed to create key store root: %w", err)
	}

	return &localKeyStore{
		root:   abs,
		logger: logger,
	}, nil
}

// PairDir creates <root>/<keyPairID>
func (s *localKeyStore) PairDir(keyPairID string) (string, error) {
	dir, err := s.resolve(keyPairID)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create key pair directory: %w", err)
	}
	return dir, nil
}

// Read returns the content of a key file below the root
func (s *localKeyStore) Read(path string) ([]byte, error) {
	resolved, err := s.resolve(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}
	return data, nil
}

// Delete removes a key file and its directory once the last file of the pair is gone
func (s *localKeyStore) Delete(path string) error {
	resolved, err := s.resolve(path)
	if err != nil {
		return err
	}

	if err := os.Remove(resolved); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete key file: %w", err)
	}

	dir := filepath.Dir(resolved)
	if dir != s.root {
		if entries, err := os.ReadDir(dir); err == nil && len(entries) == 0 {
			_ = os.Remove(dir)
		}
	}

	s.logger.Info("Deleted key file ", resolved)
	return nil
}

// resolve maps a relative or absolute path to an absolute path below the root
func (s *localKeyStore) resolve(path string) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.root, path)
	}
	path = filepath.Clean(path)

	if path == s.root || !strings.HasPrefix(path, s.root+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideKeyStore, path)
	}
	return path, nil
}
