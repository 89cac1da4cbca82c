// Package validation provides input validation for values that end up in
// command lines or filesystem paths.
package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var (
	// packageNamePattern matches Debian and PyPI package names.
	packageNamePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9+._-]*$`)

	// alsaDevicePattern matches ALSA device specifiers like
	// "plughw:CARD=UACDemoV10,DEV=0" or "default".
	alsaDevicePattern = regexp.MustCompile(`^[a-zA-Z0-9:=,._-]+$`)

	// Characters that must never reach a shell or command argument.
	dangerousChars = []string{";", "&", "|", "$", "`", "(", ")", "{", "}", "<", ">", "\n", "\r"}
)

// ValidatePackageName validates an apt or pip package name.
func ValidatePackageName(name string) error {
	if name == "" {
		return fmt.Errorf("package name cannot be empty")
	}
	if len(name) > 214 {
		return fmt.Errorf("package name too long")
	}
	if strings.ContainsRune(name, '\x00') {
		return fmt.Errorf("package name contains null byte")
	}
	for _, char := range dangerousChars {
		if strings.Contains(name, char) {
			return fmt.Errorf("package name contains invalid character: %q", char)
		}
	}
	if !packageNamePattern.MatchString(name) {
		return fmt.Errorf("invalid package name format: %q", name)
	}
	return nil
}

// ValidatePath rejects empty paths, null bytes, and parent traversal.
func ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}
	if strings.ContainsRune(path, '\x00') {
		return fmt.Errorf("path contains null byte")
	}
	if strings.Contains(path, "..") {
		return fmt.Errorf("path cannot contain '..'")
	}
	return nil
}

// ValidateURL accepts absolute http/https URLs only.
func ValidateURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("URL cannot be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL must have a host")
	}
	return nil
}

// ValidateAlsaDevice validates an ALSA device specifier.
func ValidateAlsaDevice(device string) error {
	if device == "" {
		return fmt.Errorf("audio device cannot be empty")
	}
	if !alsaDevicePattern.MatchString(device) {
		return fmt.Errorf("invalid audio device format: %q", device)
	}
	return nil
}
