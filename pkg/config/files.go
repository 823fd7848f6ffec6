package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// writableDir creates dir when missing and reports whether a file can be
// created inside it.
func writableDir(dir string) bool {
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Warnf("Cannot create directory %s: %v", dir, err)
		return false
	}
	f, err := os.CreateTemp(dir, ".wordmatch-*")
	if err != nil {
		log.Warnf("Cannot write to directory %s: %v", dir, err)
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}

// executableDir is the directory of the running binary with symlinks resolved.
func executableDir() (string, error) {
	path, err := os.Executable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	return filepath.Dir(path), nil
}

// saveTOML encodes v next to path and renames it into place, so a failed
// encode never leaves a truncated config behind.
func saveTOML(v any, path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		log.Errorf("Failed to create file: %v", err)
		return err
	}
	if err := toml.NewEncoder(tmp).Encode(v); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		log.Warnf("Could not set permissions on %s: %v", path, err)
	}
	return os.Rename(tmp.Name(), path)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
