package cryptox

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Configuration for Argon2id hashing. The cost is deliberately high: every
// login attempt pays it, which is what makes online guessing expensive.
const (
	memory      = 19 * 1024 // Memory usage in KiB (19 MiB)
	iterations  = 2         // Iteration count
	parallelism = 1         // Number of threads
	keyLength   = 32        // Length of the generated hash
	saltLength  = 16        // Length of the salt
)

var (
	pepperMu sync.RWMutex
	pepper   string
)

// SetPepper sets the process-wide secret appended to every password before
// hashing. An empty pepper is allowed and simply disables peppering.
func SetPepper(p string) {
	pepperMu.Lock()
	defer pepperMu.Unlock()
	pepper = p
}

// GetPepper returns the current pepper.
func GetPepper() string {
	pepperMu.RLock()
	defer pepperMu.RUnlock()
	return pepper
}

// LoadPepperFile reads the pepper from a file and installs it. Surrounding
// whitespace is stripped so files written by editors still work.
func LoadPepperFile(path string) error {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("cryptox: read pepper file: %w", err)
	}

	p := strings.TrimSpace(string(data))
	if p == "" {
		return fmt.Errorf("cryptox: pepper file %q is empty", path)
	}

	SetPepper(p)
	return nil
}
