package app

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/yalmn/cryptomorph/internal/domain/cryptoalg"
	"github.com/yalmn/cryptomorph/internal/pkg/fileutil"
	"github.com/yalmn/cryptomorph/internal/pkg/logger"
	"github.com/yalmn/cryptomorph/internal/pkg/metrics"
)

// Operation names reported to metrics
const (
	OpGenerateKeyPair      = "generate_keypair"
	OpHybridEncrypt        = "hybrid_encrypt"
	OpHybridDecrypt        = "hybrid_decrypt"
	OpSymmetricEncrypt     = "symmetric_encrypt"
	OpSymmetricDecrypt     = "symmetric_decrypt"
	OpSign                 = "sign"
	OpVerify               = "verify"
	OpGenerateSymmetricKey = "generate_symmetric_key"
)

// KeyPairFiles locates the two files written for a generated key pair
type KeyPairFiles struct {
	Bits           int
	PrivateKeyPath string
	PublicKeyPath  string
}

// FileCodecService runs one-shot file transactions: every operation reads its inputs,
// transforms them in memory and writes its output atomically, so a failure leaves no partial file.
type FileCodecService struct {
	rsa      cryptoalg.RSAProcessor
	aes      cryptoalg.AESProcessor
	hybrid   cryptoalg.HybridProcessor
	recorder *metrics.Recorder
	logger   logger.Logger
}

// NewFileCodecService creates a FileCodecService. recorder may be nil.
func NewFileCodecService(
	rsa cryptoalg.RSAProcessor,
	aes cryptoalg.AESProcessor,
	hybrid cryptoalg.HybridProcessor,
	recorder *metrics.Recorder,
	logger logger.Logger,
) (*FileCodecService, error) {
	if rsa == nil || aes == nil || hybrid == nil {
		return nil, fmt.Errorf("rsa, aes and hybrid processors are required")
	}

	return &FileCodecService{
		rsa:      rsa,
		aes:      aes,
		hybrid:   hybrid,
		recorder: recorder,
		logger:   logger,
	}, nil
}

// GenerateKeyPair generates a key pair of bits bits and writes rsa_private.key and rsa_public.key into outDir.
func (s *FileCodecService) GenerateKeyPair(ctx context.Context, bits int, outDir string) (files *KeyPairFiles, err error) {
	defer func() { s.recorder.ObserveOperation(OpGenerateKeyPair, err) }()

	if err := os.MkdirAll(outDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create key directory: %w", err)
	}

	start := time.Now()
	keyPair, err := s.rsa.GenerateKeys(ctx, bits)
	if err != nil {
		return nil, err
	}
	s.recorder.ObserveKeyGeneration(strconv.Itoa(bits), time.Since(start))

	files = &KeyPairFiles{
		Bits:           bits,
		PrivateKeyPath: filepath.Join(outDir, cryptoalg.PrivateKeyFileName),
		PublicKeyPath:  filepath.Join(outDir, cryptoalg.PublicKeyFileName),
	}

	if err := s.rsa.SavePublicKeyToFile(keyPair.Public, files.PublicKeyPath); err != nil {
		return nil, err
	}
	if err := s.rsa.SavePrivateKeyToFile(keyPair.Private, files.PrivateKeyPath); err != nil {
		if rmErr := os.Remove(files.PublicKeyPath); rmErr != nil {
			s.logger.Warn("Failed to remove orphaned public key ", files.PublicKeyPath, ": ", rmErr)
		}
		return nil, err
	}

	return files, nil
}

// EncryptFile seals inputPath in a hybrid envelope for the public key and writes it to outputPath.
func (s *FileCodecService) EncryptFile(inputPath, publicKeyPath, outputPath string) (err error) {
	defer func() { s.recorder.ObserveOperation(OpHybridEncrypt, err) }()

	publicKey, err := s.rsa.ReadPublicKey(publicKeyPath)
	if err != nil {
		return err
	}

	plain, err := readInput(inputPath)
	if err != nil {
		return err
	}

	envelope, err := s.hybrid.Encrypt(plain, publicKey)
	if err != nil {
		return err
	}

	return fileutil.WriteFileAtomic(outputPath, envelope, 0600)
}

// DecryptFile opens the hybrid envelope at inputPath with the private key and writes the plaintext.
func (s *FileCodecService) DecryptFile(inputPath, privateKeyPath, outputPath string) (err error) {
	defer func() { s.recorder.ObserveOperation(OpHybridDecrypt, err) }()

	privateKey, err := s.rsa.ReadPrivateKey(privateKeyPath)
	if err != nil {
		return err
	}

	envelope, err := readInput(inputPath)
	if err != nil {
		return err
	}

	plain, err := s.hybrid.Decrypt(envelope, privateKey)
	if err != nil {
		return err
	}

	return fileutil.WriteFileAtomic(outputPath, plain, 0600)
}

// EncryptFileSymmetric encrypts inputPath with a hex encoded 256-bit key and writes IV || ciphertext.
func (s *FileCodecService) EncryptFileSymmetric(inputPath, hexKey, outputPath string) (err error) {
	defer func() { s.recorder.ObserveOperation(OpSymmetricEncrypt, err) }()

	key, err := decodeSymmetricKey(hexKey)
	if err != nil {
		return err
	}

	plain, err := readInput(inputPath)
	if err != nil {
		return err
	}

	ciphertext, err := s.aes.Encrypt(plain, key)
	if err != nil {
		return err
	}

	return fileutil.WriteFileAtomic(outputPath, ciphertext, 0600)
}

// DecryptFileSymmetric reverses EncryptFileSymmetric.
func (s *FileCodecService) DecryptFileSymmetric(inputPath, hexKey, outputPath string) (err error) {
	defer func() { s.recorder.ObserveOperation(OpSymmetricDecrypt, err) }()

	key, err := decodeSymmetricKey(hexKey)
	if err != nil {
		return err
	}

	ciphertext, err := readInput(inputPath)
	if err != nil {
		return err
	}

	plain, err := s.aes.Decrypt(ciphertext, key)
	if err != nil {
		return err
	}

	return fileutil.WriteFileAtomic(outputPath, plain, 0600)
}

// SignFile writes the raw big-endian signature of inputPath to signaturePath.
func (s *FileCodecService) SignFile(inputPath, privateKeyPath, signaturePath string) (err error) {
	defer func() { s.recorder.ObserveOperation(OpSign, err) }()

	privateKey, err := s.rsa.ReadPrivateKey(privateKeyPath)
	if err != nil {
		return err
	}

	data, err := readInput(inputPath)
	if err != nil {
		return err
	}

	signature, err := s.rsa.Sign(data, privateKey)
	if err != nil {
		return err
	}

	return fileutil.WriteFileAtomic(signaturePath, signature, 0644)
}

// VerifyFile checks the signature stored at signaturePath against inputPath.
func (s *FileCodecService) VerifyFile(inputPath, publicKeyPath, signaturePath string) (valid bool, err error) {
	defer func() { s.recorder.ObserveOperation(OpVerify, err) }()

	publicKey, err := s.rsa.ReadPublicKey(publicKeyPath)
	if err != nil {
		return false, err
	}

	data, err := readInput(inputPath)
	if err != nil {
		return false, err
	}

	signature, err := readInput(signaturePath)
	if err != nil {
		return false, err
	}

	return s.rsa.Verify(data, signature, publicKey)
}

// GenerateSymmetricKey returns a fresh 256-bit key as lowercase hex.
func (s *FileCodecService) GenerateSymmetricKey() (hexKey string, err error) {
	defer func() { s.recorder.ObserveOperation(OpGenerateSymmetricKey, err) }()

	key, err := s.aes.GenerateKey(cryptoalg.AESKeySize256)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(key), nil
}

func decodeSymmetricKey(hexKey string) ([]byte, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("%w: symmetric key is not valid hex: %v", cryptoalg.ErrMalformedInput, err)
	}
	if len(key) != cryptoalg.AESKeySize256 {
		return nil, fmt.Errorf("%w: symmetric key must be %d bytes, got %d", cryptoalg.ErrMalformedInput, cryptoalg.AESKeySize256, len(key))
	}
	return key, nil
}

func readInput(path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
