// Package settingsphp undoes the include block `ddev config` appends to
// Drupal's settings.php. Drupal Env projects load DDEV settings from their
// own scaffolded file instead.
package settingsphp

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
)

// ddevInclude matches the generated block across the variants DDEV has
// written over time.
var ddevInclude = regexp.MustCompile(`(?m)\n*^// Automatically generated include for settings managed by ddev\.\n` +
	`^\$ddev_settings = (?:__DIR__ \. '/settings\.ddev\.php'|dirname\(__FILE__\) \. '/settings\.ddev\.php');\n` +
	`^if \((?:getenv\('IS_DDEV_PROJECT'\) == 'true' && )?is_readable\(\$ddev_settings\)\) \{\n` +
	`^[ \t]*require(?:_once)? \$ddev_settings;\n` +
	`^\}\n?`)

// Path is settings.php for the default site under docroot.
func Path(root, docroot string) string {
	if docroot == "" {
		docroot = "web"
	}
	return filepath.Join(root, docroot, "sites", "default", "settings.php")
}

// Strip removes the DDEV include block from src.
func Strip(src []byte) ([]byte, bool) {
	if !ddevInclude.Match(src) {
		return src, false
	}
	out := ddevInclude.ReplaceAll(src, []byte("\n"))
	return out, true
}

// RemoveDdevInclude strips the block from the file at path. A missing file
// is not an error.
func RemoveDdevInclude(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	out, changed := Strip(data)
	if !changed {
		return false, nil
	}
	st, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	// DDEV and Drupal both tend to leave settings.php read-only.
	mode := st.Mode().Perm()
	if mode&0o200 == 0 {
		if err := os.Chmod(path, mode|0o200); err != nil {
			return false, err
		}
		defer os.Chmod(path, mode)
	}
	return true, os.WriteFile(path, out, mode|0o200)
}
