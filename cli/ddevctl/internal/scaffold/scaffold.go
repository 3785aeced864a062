// Package scaffold writes the DDEV flavoured Drupal Env files into a project.
package scaffold

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

//go:embed files
var embedded embed.FS

const (
	// Marker records that a project has been scaffolded at least once.
	Marker = ".drupal-env-ddev-scaffolded"
	// Backup is where an unmanaged .ddev directory is moved aside.
	Backup = ".ddev.old"

	overwriteQuestion = "You already seem to have DDEV configured locally. Continuing with this scaffolding will overwrite your current DDEV configuration. If you continue, ensure your .ddev files are committed so you can compare after. Continue?"
)

// Confirmer asks a yes/no question.
type Confirmer interface {
	Confirm(question string, def bool) bool
}

// NeedsBackup reports whether root has a .ddev directory not created by us.
func NeedsBackup(root string) bool {
	if st, err := os.Stat(filepath.Join(root, ".ddev")); err != nil || !st.IsDir() {
		return false
	}
	_, err := os.Stat(filepath.Join(root, Marker))
	return errors.Is(err, os.ErrNotExist)
}

// PreScaffold moves an existing unmanaged .ddev directory to .ddev.old once
// the operator agrees. An earlier backup is kept and the new one gets a
// numbered name instead. It returns the backup directory, or "" when nothing
// was moved.
func PreScaffold(root string, c Confirmer) (string, error) {
	if !NeedsBackup(root) {
		return "", nil
	}
	if !c.Confirm(overwriteQuestion, false) {
		return "", nil
	}
	backup, err := BackupPath(root)
	if err != nil {
		return "", err
	}
	if err := os.Rename(filepath.Join(root, ".ddev"), backup); err != nil {
		return "", err
	}
	log.WithField("path", backup).Info("moved existing DDEV configuration aside")
	return backup, nil
}

// BackupPath is the first of .ddev.old, .ddev.old.1, .ddev.old.2, ... under
// root that does not exist yet.
func BackupPath(root string) (string, error) {
	for i := 0; ; i++ {
		name := Backup
		if i > 0 {
			name = fmt.Sprintf("%s.%d", Backup, i)
		}
		p := filepath.Join(root, name)
		_, err := os.Lstat(p)
		if errors.Is(err, os.ErrNotExist) {
			return p, nil
		}
		if err != nil {
			return "", err
		}
	}
}

// Write copies every embedded file under root and drops the marker. It
// returns the relative paths written.
func Write(root string) ([]string, error) {
	var written []string
	err := fs.WalkDir(embedded, "files", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel("files", filepath.FromSlash(p))
		if err != nil {
			return err
		}
		target := filepath.Join(root, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := embedded.ReadFile(p)
		if err != nil {
			return err
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return err
		}
		written = append(written, rel)
		return nil
	})
	if err != nil {
		return written, err
	}
	if err := os.WriteFile(filepath.Join(root, Marker), nil, 0o644); err != nil {
		return written, err
	}
	return written, nil
}
