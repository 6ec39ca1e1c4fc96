package validation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateAndSanitize_Permissive(t *testing.T) {
	v := NewPermissiveFilePathValidator()

	tests := []struct {
		name        string
		input       string
		shouldError bool
	}{
		{"empty path", "", true},
		{"null byte", "/tmp/log\x00.txt", true},
		{"traversal", "/tmp/../etc/passwd", true},
		{"bare tilde", "~root/file", true},
		{"absolute path", filepath.Join(os.TempDir(), "newslens.log"), false},
		{"too long", "/" + strings.Repeat("a", 5000), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.ValidateAndSanitize(tt.input)
			if (err != nil) != tt.shouldError {
				t.Errorf("ValidateAndSanitize(%q) error = %v, shouldError %v", tt.input, err, tt.shouldError)
			}
		})
	}
}

func TestValidateAndSanitize_TildeExpansion(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	v := NewPermissiveFilePathValidator()
	got, err := v.ValidateAndSanitize("~/.newslens/newslens.log")
	if err != nil {
		t.Fatalf("ValidateAndSanitize error = %v", err)
	}

	want := filepath.Join(home, ".newslens", "newslens.log")
	if got != want {
		t.Errorf("ValidateAndSanitize(~/...) = %q, want %q", got, want)
	}
}

func TestValidateAndSanitize_BaseDirs(t *testing.T) {
	v := NewFilePathValidator()

	// Temp dir is on the allow list
	okPath := filepath.Join(os.TempDir(), "newslens-test.log")
	if _, err := v.ValidateAndSanitize(okPath); err != nil {
		t.Errorf("path in temp dir rejected: %v", err)
	}

	// /etc is not
	if _, err := v.ValidateAndSanitize("/etc/newslens.log"); err == nil {
		t.Error("path outside allowed dirs should be rejected")
	}
}

func TestValidateFile_RejectsDirectory(t *testing.T) {
	v := NewPermissiveFilePathValidator()

	if _, err := v.ValidateFile(os.TempDir()); err == nil {
		t.Error("ValidateFile should reject a directory path")
	}
}

func TestSecureConfigPath_Default(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := SecureConfigPath("")
	if err != nil {
		t.Fatalf("SecureConfigPath(\"\") error = %v", err)
	}

	want := filepath.Join(home, ".config", "newslens", "config.toml")
	if got != want {
		t.Errorf("SecureConfigPath(\"\") = %q, want %q", got, want)
	}
}

func TestSecureLogPath_Default(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := SecureLogPath("")
	if err != nil {
		t.Fatalf("SecureLogPath(\"\") error = %v", err)
	}

	want := filepath.Join(home, ".newslens", "newslens.log")
	if got != want {
		t.Errorf("SecureLogPath(\"\") = %q, want %q", got, want)
	}
}
