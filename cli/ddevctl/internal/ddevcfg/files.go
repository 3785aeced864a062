package ddevcfg

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	Dir        = ".ddev"
	SharedFile = ".ddev/config.yaml"
	LocalFile  = ".ddev/config.local.yaml"
)

var (
	// ErrNotConfigured means .ddev/config.yaml does not exist yet.
	ErrNotConfigured = errors.New("ddev config file does not exist, please run ddev-admin:init instead")
	// ErrNoProjectName means config.yaml exists but has no name.
	ErrNoProjectName = errors.New("project name has not been set yet, please run ddev-admin:init instead")
)

// SharedSavedNotice is shown after config.yaml is rewritten.
const SharedSavedNotice = SharedFile + " has been written. Please commit this file so that ddev:init can be run and the environment can be started by yourself and others. If the project has already been started, you will need to run ddev restart."

// Files locates the DDEV config files of the project rooted at Root.
type Files struct {
	Root string
}

func (f Files) SharedPath() string { return filepath.Join(f.Root, filepath.FromSlash(SharedFile)) }
func (f Files) LocalPath() string  { return filepath.Join(f.Root, filepath.FromSlash(LocalFile)) }

// Exists reports whether config.yaml is present.
func (f Files) Exists() bool {
	st, err := os.Stat(f.SharedPath())
	return err == nil && !st.IsDir()
}

// RequireInit returns nil when config.yaml exists and names the project.
func (f Files) RequireInit() error {
	if !f.Exists() {
		return ErrNotConfigured
	}
	doc, err := f.LoadShared()
	if err != nil {
		return err
	}
	if doc.Name() == "" {
		return fmt.Errorf("%s: %w", SharedFile, ErrNoProjectName)
	}
	return nil
}

func (f Files) IsInit() bool { return f.RequireInit() == nil }

// LoadShared reads config.yaml; a missing file yields an empty document.
func (f Files) LoadShared() (*Document, error) {
	return load(f.SharedPath())
}

// LoadLocal reads config.local.yaml, creating an empty one first if needed.
func (f Files) LoadLocal() (*Document, error) {
	path := f.LocalPath()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			return nil, err
		}
	}
	return load(path)
}

func (f Files) SaveShared(d *Document) error { return save(f.SharedPath(), d) }
func (f Files) SaveLocal(d *Document) error  { return save(f.LocalPath(), d) }

func load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewDocument(), nil
		}
		return nil, err
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

func save(path string, d *Document) error {
	data, err := d.Bytes()
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
