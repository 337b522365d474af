package export

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/blake2b"
)

// ErrUnsupportedHash indicates a checksum algorithm that is not available.
var ErrUnsupportedHash = errors.New("unsupported checksum algorithm")

// HashType represents the different checksum algorithms available.
type HashType string

const (
	// HashTypeBLAKE2b uses 256-bit BLAKE2b digests.
	HashTypeBLAKE2b HashType = "blake2b"
	// HashTypeSHA256 uses SHA256 digests.
	HashTypeSHA256 HashType = "sha256"
)

// Checksum is the digest of one written output file.
type Checksum struct {
	File   string `json:"file"`
	Digest string `json:"digest"`
}

// newHash returns a fresh hash for the algorithm.
func newHash(hashType HashType) (hash.Hash, error) {
	switch hashType {
	case HashTypeBLAKE2b:
		return blake2b.New256(nil)
	case HashTypeSHA256:
		return sha256.New(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedHash, hashType)
	}
}

// HashFile returns the hex encoded digest of a file's content.
func HashFile(path string, hashType HashType) (string, error) {
	h, err := newHash(hashType)
	if err != nil {
		return "", err
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", filepath.Base(path), err)
	}
	defer file.Close()

	if _, err := io.Copy(h, file); err != nil {
		return "", fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// hashFiles digests every file of dir in the given order.
func hashFiles(dir string, files []string, hashType HashType) ([]Checksum, error) {
	checksums := make([]Checksum, 0, len(files))

	for _, file := range files {
		digest, err := HashFile(filepath.Join(dir, file), hashType)
		if err != nil {
			return nil, err
		}

		checksums = append(checksums, Checksum{File: file, Digest: digest})
	}

	return checksums, nil
}
