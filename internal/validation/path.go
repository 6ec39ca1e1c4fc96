package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FilePathValidator provides secure file path validation and sanitization
// for the few paths newslens writes: the config file and the debug log.
type FilePathValidator struct {
	// AllowedBaseDirs restricts file operations to specific base directories
	AllowedBaseDirs []string
	// MaxPathLength is the maximum allowed path length
	MaxPathLength int
}

// NewFilePathValidator creates a new validator with secure defaults
func NewFilePathValidator() *FilePathValidator {
	homeDir, _ := os.UserHomeDir()
	return &FilePathValidator{
		AllowedBaseDirs: []string{
			filepath.Join(homeDir, ".newslens"),
			filepath.Join(homeDir, ".config", "newslens"),
			os.TempDir(),
		},
		MaxPathLength: 4096,
	}
}

// NewPermissiveFilePathValidator creates a validator for development/testing
func NewPermissiveFilePathValidator() *FilePathValidator {
	return &FilePathValidator{
		AllowedBaseDirs: []string{}, // Empty means allow all directories
		MaxPathLength:   4096,
	}
}

// ValidateAndSanitize validates and normalizes a file path
func (v *FilePathValidator) ValidateAndSanitize(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}
	if len(path) > v.MaxPathLength {
		return "", fmt.Errorf("path too long (max %d characters)", v.MaxPathLength)
	}
	if strings.Contains(path, "\x00") {
		return "", fmt.Errorf("path contains null bytes")
	}

	// Check the raw input; Join, Abs and Clean all resolve ".." silently.
	for _, component := range strings.Split(filepath.ToSlash(path), "/") {
		if component == ".." {
			return "", fmt.Errorf("directory traversal not allowed")
		}
	}

	// Tilde expansion before cleaning
	if len(path) >= 2 && path[:2] == "~/" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	} else if strings.HasPrefix(path, "~") {
		return "", fmt.Errorf("invalid tilde usage")
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("cannot make path absolute: %w", err)
		}
		path = absPath
	}

	cleanPath := filepath.Clean(path)

	if err := v.validateBaseDirs(cleanPath); err != nil {
		return "", err
	}

	return cleanPath, nil
}

// validateBaseDirs ensures the path is within allowed base directories
func (v *FilePathValidator) validateBaseDirs(path string) error {
	if len(v.AllowedBaseDirs) == 0 {
		return nil
	}

	for _, baseDir := range v.AllowedBaseDirs {
		absBaseDir, err := filepath.Abs(baseDir)
		if err != nil {
			continue
		}

		relPath, err := filepath.Rel(absBaseDir, path)
		if err != nil {
			continue
		}

		if !strings.HasPrefix(relPath, "..") {
			return nil
		}
	}

	return fmt.Errorf("path not within allowed directories: %v", v.AllowedBaseDirs)
}

// ValidateFile ensures a file path is safe for read/write operations
func (v *FilePathValidator) ValidateFile(path string) (string, error) {
	validatedPath, err := v.ValidateAndSanitize(path)
	if err != nil {
		return "", err
	}

	if info, err := os.Stat(validatedPath); err == nil {
		if info.IsDir() {
			return "", fmt.Errorf("path is a directory, not a file: %s", validatedPath)
		}
	}

	return validatedPath, nil
}

// SecureConfigPath validates a config file path, defaulting to
// ~/.config/newslens/config.toml when the input is empty.
func SecureConfigPath(userPath string) (string, error) {
	if userPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		userPath = filepath.Join(homeDir, ".config", "newslens", "config.toml")
	}

	return NewFilePathValidator().ValidateFile(userPath)
}

// SecureLogPath validates a debug log path, defaulting to
// ~/.newslens/newslens.log when the input is empty.
func SecureLogPath(userPath string) (string, error) {
	if userPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		userPath = filepath.Join(homeDir, ".newslens", "newslens.log")
	}

	return NewFilePathValidator().ValidateFile(userPath)
}
