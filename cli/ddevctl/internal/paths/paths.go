// Package paths names the directories a duplicated project lands in.
package paths

import (
	"path/filepath"
	"strings"
)

// SiblingDir is name placed next to root, after resolving symlinks in root.
func SiblingDir(root, name string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		abs = real
	}
	return filepath.Join(filepath.Dir(abs), name), nil
}

// DuplicateSuffix strips the original directory name, and the separators
// an operator might type after it, from input.
func DuplicateSuffix(input, original string) string {
	if original != "" {
		input = strings.ReplaceAll(input, original+"_", "")
		input = strings.ReplaceAll(input, original+"-", "")
		input = strings.ReplaceAll(input, original, "")
	}
	return strings.ReplaceAll(input, " ", "")
}

// DuplicateDir is the directory name for a copy: always based on the original
// install so copies of copies do not stack suffixes.
func DuplicateDir(original, suffix string) string {
	return original + "-" + suffix
}
