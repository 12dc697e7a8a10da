// Package validation checks user-supplied paths and sizes before the loader
// touches the filesystem or an archive, guarding against path traversal and
// resource exhaustion.
package validation

import (
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"unicode"
)

// Security limits to prevent DoS attacks (CWE-400).
const (
	// MaxSourceSize is the largest ReqIF source the loader accepts (512 MB).
	MaxSourceSize = 512 << 20
	// MaxPayloadSize is the largest embedded object turned into a data URI (64 MB).
	MaxPayloadSize = 64 << 20
	// MaxPathLength is the maximum allowed path length.
	MaxPathLength = 4096
)

// Common validation errors.
var (
	ErrPathTraversal    = errors.New("path traversal detected")
	ErrPathTooLong      = errors.New("path too long")
	ErrInvalidCharacter = errors.New("invalid character in path")
	ErrEmptyPath        = errors.New("path cannot be empty")
	ErrTooLarge         = errors.New("input exceeds size limit")
)

// ValidatePath checks length and characters of a path without a base directory.
func ValidatePath(p string) error {
	if p == "" {
		return ErrEmptyPath
	}
	if len(p) > MaxPathLength {
		return ErrPathTooLong
	}
	for _, r := range p {
		if r == 0 {
			return fmt.Errorf("%w: null byte not allowed", ErrInvalidCharacter)
		}
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character not allowed", ErrInvalidCharacter)
		}
	}
	return nil
}

// SanitizePath resolves a slash-separated reference against baseDir and
// returns the full filesystem path. References that are absolute or climb out
// of baseDir are rejected.
func SanitizePath(baseDir, ref string) (string, error) {
	rel, err := SanitizeEntryName(ref)
	if err != nil {
		return "", err
	}

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve base directory: %w", err)
	}
	full := filepath.Join(absBase, filepath.FromSlash(rel))

	r, err := filepath.Rel(absBase, full)
	if err != nil || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return "", ErrPathTraversal
	}
	return full, nil
}

// SanitizeEntryName cleans an archive-relative, slash-separated name.
func SanitizeEntryName(name string) (string, error) {
	if err := ValidatePath(name); err != nil {
		return "", err
	}
	if strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) || filepath.IsAbs(name) || hasDrive(name) {
		return "", fmt.Errorf("%w: absolute path not allowed", ErrPathTraversal)
	}
	clean := path.Clean(strings.ReplaceAll(name, `\`, "/"))
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return "", ErrPathTraversal
	}
	if clean == "." {
		return "", ErrEmptyPath
	}
	return clean, nil
}

func hasDrive(name string) bool {
	return len(name) >= 2 && name[1] == ':' &&
		(name[0] >= 'a' && name[0] <= 'z' || name[0] >= 'A' && name[0] <= 'Z')
}

// ReadAllLimited reads r completely, failing with ErrTooLarge once more than
// limit bytes arrive.
func ReadAllLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, limit)
	}
	return data, nil
}
