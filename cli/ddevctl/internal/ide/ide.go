// Package ide fixes up PhpStorm project files after a checkout is copied to a
// directory with a different name.
package ide

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
)

const Dir = ".idea"

// RenameProject drops the per-user workspace, renames <from>.iml to <to>.iml,
// and points modules.xml at the new module file. Missing files are skipped.
func RenameProject(root, from, to string) error {
	dir := filepath.Join(root, Dir)
	if err := os.Remove(filepath.Join(dir, "workspace.xml")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if from == to {
		return nil
	}
	oldIml := filepath.Join(dir, from+".iml")
	if _, err := os.Stat(oldIml); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.Rename(oldIml, filepath.Join(dir, to+".iml")); err != nil {
		return err
	}

	modules := filepath.Join(dir, "modules.xml")
	data, err := os.ReadFile(modules)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	updated := bytes.ReplaceAll(data, []byte(Dir+"/"+from+".iml"), []byte(Dir+"/"+to+".iml"))
	if bytes.Equal(updated, data) {
		return nil
	}
	return os.WriteFile(modules, updated, 0o644)
}
