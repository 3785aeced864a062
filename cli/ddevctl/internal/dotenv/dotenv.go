// Package dotenv reads and writes the .ddev/.env file whose variables DDEV
// loads into the web container. Keys are addressed in the `ddev dotenv set`
// flag spelling (drush-allow-xdebug); the file stores them as
// DRUSH_ALLOW_XDEBUG.
package dotenv

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/ddev"
)

// Store reads the env file directly and writes through ddev so quoting
// follows DDEV's own rules.
type Store struct {
	Root   string
	Client *ddev.Client
}

// Key converts a flag-style key to the variable name written to the file.
func Key(name string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(name), "-", "_"))
}

func (s Store) path() string {
	return filepath.Join(s.Root, filepath.FromSlash(ddev.DotenvFile))
}

// Get returns the current value of name, or "" when the file or key is missing.
func (s Store) Get(name string) (string, error) {
	values, err := godotenv.Read(s.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return values[Key(name)], nil
}

// Set stores value under name.
func (s Store) Set(ctx context.Context, name, value string) error {
	return s.Client.DotenvSet(ctx, name, value)
}
