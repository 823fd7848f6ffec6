/*
Package config manages TOML config for wordmatch.
*/
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/wordmatch/internal/utils"
	"github.com/bastiangx/wordmatch/pkg/matcher"
	"github.com/bastiangx/wordmatch/pkg/query"
	"github.com/bastiangx/wordmatch/pkg/retrieve"
)

// Config holds the entire config structure
type Config struct {
	Index  IndexConfig  `toml:"index"`
	Query  QueryConfig  `toml:"query"`
	Server ServerConfig `toml:"server"`
	Dict   DictConfig   `toml:"dict"`
	CLI    CliConfig    `toml:"cli"`
}

// IndexConfig selects the index structures and their shape.
type IndexConfig struct {
	UseWordIndex       bool `toml:"use_word_index"`
	UseLengthMatcher   bool `toml:"use_length_matcher"`
	UseSubstringTrie   bool `toml:"use_substring_trie"`
	UseLTRTrie         bool `toml:"use_ltr_trie"`
	UseRTLTrie         bool `toml:"use_rtl_trie"`
	MaxDepth           int  `toml:"max_depth"`
	MinSplit           int  `toml:"min_split"`
	PositionalMaxDepth int  `toml:"positional_max_depth"`
	PositionalMinSplit int  `toml:"positional_min_split"`
	Parallelism        int  `toml:"parallelism"` // 0 uses every CPU
}

// QueryConfig tunes the planner.
type QueryConfig struct {
	WordIndexThreshold int     `toml:"word_index_threshold"`
	SelectionRatio     float64 `toml:"selection_ratio"`
	Syntax             string  `toml:"syntax"` // "standard" or "netspeak"
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxLimit     int `toml:"max_limit"`
	DefaultLimit int `toml:"default_limit"`
	MaxPattern   int `toml:"max_pattern"`
}

// DictConfig holds dictionary options.
type DictConfig struct {
	MaxWords int `toml:"max_words"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit int `toml:"default_limit"`
	Preview      int `toml:"preview"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/
// 2. ~/Library/Application Support/ (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return executableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", "wordmatch")
	if writableDir(primaryPath) {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "wordmatch")
	if writableDir(macOSPath) {
		return macOSPath, nil
	}
	execDir, err := executableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from -config flag
// 2. Default path: [UserConfigDir]/wordmatch/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	trie := matcher.DefaultTrieOptions()
	return &Config{
		Index: IndexConfig{
			UseWordIndex:       true,
			UseLengthMatcher:   true,
			UseSubstringTrie:   true,
			UseLTRTrie:         true,
			UseRTLTrie:         true,
			MaxDepth:           trie.MaxDepth,
			MinSplit:           trie.MinSplit,
			PositionalMaxDepth: trie.MaxDepth,
			PositionalMinSplit: trie.MinSplit,
		},
		Query: QueryConfig{
			WordIndexThreshold: retrieve.DefaultWordIndexThreshold,
			SelectionRatio:     retrieve.DefaultSelectionRatio,
			Syntax:             query.SyntaxStandard.String(),
		},
		Server: ServerConfig{
			MaxLimit:     1000,
			DefaultLimit: 50,
			MaxPattern:   256,
		},
		Dict: DictConfig{
			MaxWords: 0,
		},
		CLI: CliConfig{
			DefaultLimit: 24,
			Preview:      10,
		},
	}
}

// RetrieverOptions maps the [index] and [query] sections onto retriever
// options. Logger and metrics are left for the caller.
func (c *Config) RetrieverOptions() retrieve.Options {
	opts := retrieve.DefaultOptions()
	opts.UseWordIndex = c.Index.UseWordIndex
	opts.UseLengthMatcher = c.Index.UseLengthMatcher
	opts.UseSubstringTrie = c.Index.UseSubstringTrie
	opts.UseLTRTrie = c.Index.UseLTRTrie
	opts.UseRTLTrie = c.Index.UseRTLTrie
	opts.Substring = matcher.TrieOptions{MaxDepth: c.Index.MaxDepth, MinSplit: c.Index.MinSplit}
	positional := matcher.TrieOptions{MaxDepth: c.Index.PositionalMaxDepth, MinSplit: c.Index.PositionalMinSplit}
	opts.LTR, opts.RTL = positional, positional
	opts.Parallelism = c.Index.Parallelism
	if opts.Parallelism <= 0 {
		opts.Parallelism = runtime.GOMAXPROCS(0)
	}
	opts.WordIndexThreshold = c.Query.WordIndexThreshold
	opts.SelectionRatio = c.Query.SelectionRatio
	return opts
}

// PatternSyntax returns the configured pattern dialect. An unknown name falls
// back to the standard syntax with a warning.
func (c *Config) PatternSyntax() query.Syntax {
	syntax, err := query.ParseSyntax(c.Query.Syntax)
	if err != nil {
		log.Warnf("%v in [query] section, using %s", err, syntax)
	}
	return syntax
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !fileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file. A file that does not decode into Config
// is read key by key, keeping defaults for whatever cannot be used.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "index"); ok {
		extractIndexConfig(section, &config.Index)
	}
	if section, ok := utils.ExtractSection(tempConfig, "query"); ok {
		extractQueryConfig(section, &config.Query)
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "dict"); ok {
		if val, ok := utils.ExtractInt64(section, "max_words"); ok {
			config.Dict.MaxWords = val
		}
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	return config, nil
}

func extractIndexConfig(data map[string]any, index *IndexConfig) {
	for key, dst := range map[string]*bool{
		"use_word_index":     &index.UseWordIndex,
		"use_length_matcher": &index.UseLengthMatcher,
		"use_substring_trie": &index.UseSubstringTrie,
		"use_ltr_trie":       &index.UseLTRTrie,
		"use_rtl_trie":       &index.UseRTLTrie,
	} {
		if val, ok := utils.ExtractBool(data, key); ok {
			*dst = val
		}
	}
	for key, dst := range map[string]*int{
		"max_depth":            &index.MaxDepth,
		"min_split":            &index.MinSplit,
		"positional_max_depth": &index.PositionalMaxDepth,
		"positional_min_split": &index.PositionalMinSplit,
		"parallelism":          &index.Parallelism,
	} {
		if val, ok := utils.ExtractInt64(data, key); ok {
			*dst = val
		}
	}
}

func extractQueryConfig(data map[string]any, query *QueryConfig) {
	if val, ok := utils.ExtractInt64(data, "word_index_threshold"); ok {
		query.WordIndexThreshold = val
	}
	if val, ok := utils.ExtractFloat64(data, "selection_ratio"); ok {
		query.SelectionRatio = val
	}
	if val, ok := utils.ExtractString(data, "syntax"); ok {
		query.Syntax = val
	}
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		server.DefaultLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "max_pattern"); ok {
		server.MaxPattern = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "preview"); ok {
		cli.Preview = val
	}
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	if abs, err := filepath.Abs(configPath); err == nil {
		return abs
	}
	return configPath
}

// SaveConfig saves into a TOML file, replacing any previous file whole.
func SaveConfig(config *Config, configPath string) error {
	return saveTOML(config, configPath)
}
