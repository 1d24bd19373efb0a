package homedir

import (
	"fmt"
	"os"
	"path/filepath"

	gohomedir "github.com/mitchellh/go-homedir"
)

const appName = "clockslider"

// Get returns the configuration directory, honouring XDG_CONFIG_HOME.
func Get() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}

	home, err := gohomedir.Dir()

	if err != nil {
		return "", fmt.Errorf("homedir: could not resolve user home: %w", err)
	}

	return filepath.Join(home, ".config", appName), nil
}

// Expand replaces a leading ~ in path with the user home.
func Expand(path string) (string, error) {
	expanded, err := gohomedir.Expand(path)

	if err != nil {
		return "", fmt.Errorf("homedir: could not expand %q: %w", path, err)
	}

	return expanded, nil
}
