package validation

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"simple", "doc.reqif", nil},
		{"nested", "a/b/doc.reqif", nil},
		{"empty", "", ErrEmptyPath},
		{"too long", strings.Repeat("a", MaxPathLength+1), ErrPathTooLong},
		{"null byte", "doc\x00.reqif", ErrInvalidCharacter},
		{"control", "doc\x07.reqif", ErrInvalidCharacter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidatePath(%q) = %v, want %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestSanitizeEntryName(t *testing.T) {
	tests := []struct {
		name    string
		entry   string
		want    string
		wantErr error
	}{
		{"plain", "files/pic.png", "files/pic.png", nil},
		{"dot prefix", "./files/pic.png", "files/pic.png", nil},
		{"backslashes", `files\pic.png`, "files/pic.png", nil},
		{"inner dotdot", "files/../pic.png", "pic.png", nil},
		{"dots in name", "a..b.png", "a..b.png", nil},
		{"escape", "../pic.png", "", ErrPathTraversal},
		{"deep escape", "a/../../pic.png", "", ErrPathTraversal},
		{"absolute", "/etc/passwd", "", ErrPathTraversal},
		{"drive", `C:\pic.png`, "", ErrPathTraversal},
		{"dot only", ".", "", ErrEmptyPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeEntryName(tt.entry)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SanitizeEntryName(%q) error = %v, want %v", tt.entry, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("SanitizeEntryName(%q) = %q, want %q", tt.entry, got, tt.want)
			}
		})
	}
}

func TestSanitizePath(t *testing.T) {
	base := t.TempDir()

	got, err := SanitizePath(base, "images/stop chart.png")
	if err != nil {
		t.Fatalf("SanitizePath() error = %v", err)
	}
	if want := filepath.Join(base, "images", "stop chart.png"); got != want {
		t.Errorf("SanitizePath() = %q, want %q", got, want)
	}

	if _, err := SanitizePath(base, "../outside.png"); !errors.Is(err, ErrPathTraversal) {
		t.Errorf("escape error = %v, want %v", err, ErrPathTraversal)
	}
}

func TestReadAllLimited(t *testing.T) {
	data, err := ReadAllLimited(strings.NewReader("12345"), 5)
	if err != nil || string(data) != "12345" {
		t.Fatalf("ReadAllLimited() = %q, %v", data, err)
	}
	if _, err := ReadAllLimited(strings.NewReader("123456"), 5); !errors.Is(err, ErrTooLarge) {
		t.Errorf("over limit error = %v, want %v", err, ErrTooLarge)
	}
}
