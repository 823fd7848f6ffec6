package utils

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
)

// PathResolver locates the dictionary relative to the running binary.
type PathResolver struct {
	executablePath string
	executableDir  string
	homeDir        string
	configDir      string
}

// NewPathResolver creates a new path resolver that determines the executable location
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	// Resolve any symlinks to get the actual binary location
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}
	pr := &PathResolver{
		executablePath: execPath,
		executableDir:  filepath.Dir(execPath),
		homeDir:        homeDir,
		configDir:      platformConfigDir(homeDir),
	}
	log.Debugf("PathResolver initialized: exec=%s, execDir=%s, configDir=%s",
		pr.executablePath, pr.executableDir, pr.configDir)
	return pr, nil
}

func platformConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, "wordmatch")
		}
		return filepath.Join(homeDir, ".config", "wordmatch")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "wordmatch")
		}
		return filepath.Join(homeDir, "AppData", "Roaming", "wordmatch")
	default:
		return filepath.Join(homeDir, ".config", "wordmatch")
	}
}

// GetDataDir resolves a dictionary path. It tries, in order:
// 1. the path itself when absolute
// 2. relative to the executable directory
// 3. relative to the working directory
// 4. data/ next to the executable, its parent and the config dir
//
// A candidate is a word file or a directory holding dict_*.bin chunks. When
// nothing matches the executable-relative path is returned for error reporting.
func (pr *PathResolver) GetDataDir(userSpecifiedPath string) string {
	candidates := pr.dataDirCandidates(userSpecifiedPath)
	for _, path := range candidates {
		if isValidDataPath(path) {
			log.Debugf("Found dictionary at: %s", path)
			return path
		}
		log.Debugf("Dictionary candidate not valid: %s", path)
	}
	return filepath.Join(pr.executableDir, userSpecifiedPath)
}

func (pr *PathResolver) dataDirCandidates(userSpecifiedPath string) []string {
	var candidates []string
	if filepath.IsAbs(userSpecifiedPath) {
		candidates = append(candidates, userSpecifiedPath)
	} else if userSpecifiedPath != "" {
		candidates = append(candidates, filepath.Join(pr.executableDir, userSpecifiedPath))
		if cwd, err := os.Getwd(); err == nil {
			candidates = append(candidates, filepath.Join(cwd, userSpecifiedPath))
		}
	}
	return append(candidates,
		filepath.Join(pr.executableDir, "data"),
		filepath.Join(filepath.Dir(pr.executableDir), "data"),
		filepath.Join(pr.configDir, "data"),
	)
}

// isValidDataPath accepts a regular file or a directory with at least one chunk.
func isValidDataPath(path string) bool {
	stat, err := os.Stat(path)
	if err != nil {
		return false
	}
	if !stat.IsDir() {
		return stat.Mode().IsRegular()
	}
	matches, err := filepath.Glob(filepath.Join(path, "dict_*.bin"))
	return err == nil && len(matches) > 0
}

// GetExecutableDir returns the directory containing the executable
func (pr *PathResolver) GetExecutableDir() string {
	return pr.executableDir
}

// GetConfigDir returns the config directory
func (pr *PathResolver) GetConfigDir() string {
	return pr.configDir
}

// GetRuntimeInfo returns debug information about the current runtime environment
func (pr *PathResolver) GetRuntimeInfo() map[string]string {
	cwd, _ := os.Getwd()
	info := map[string]string{
		"executable_path": pr.executablePath,
		"executable_dir":  pr.executableDir,
		"current_dir":     cwd,
		"home_dir":        pr.homeDir,
		"config_dir":      pr.configDir,
		"os":              runtime.GOOS,
		"arch":            runtime.GOARCH,
	}
	for _, envVar := range []string{"HOME", "XDG_CONFIG_HOME", "APPDATA"} {
		if value := os.Getenv(envVar); value != "" {
			info["env_"+strings.ToLower(envVar)] = value
		}
	}
	return info
}
