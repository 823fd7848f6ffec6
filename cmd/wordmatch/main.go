// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the wordmatch retrieval server and CLI [DBG] application.

wordmatch answers wildcard pattern queries against a static dictionary held
in memory. Patterns use ? for any one character, * for any run, [abc] for one
character out of a set and {abc} for an optional literal. The first N
matching words are returned in dictionary order.

The dictionary is indexed once at startup: an exact word hash, a length
index, a substring trie and position anchored tries from both ends. Each
query is planned over those indexes and the remaining candidates are checked
against the compiled pattern.

# Usage

Start the server with default settings:

	wordmatch

Use a plain word list and enable debug mode:

	wordmatch -dict /path/to/words.txt -d

Run in CLI mode for interactive testing:

	wordmatch -c -limit 10

Compare against a brute force scan and expose prometheus metrics:

	wordmatch -c -scan -metrics :9090

The dictionary path may be a directory of chunked binary files named
dict_0001.bin, dict_0002.bin, etc., a single chunk file or a text file with
one word per line.

# Configuration

Runtime configuration is managed through a TOML file:

	[index]
	use_word_index = true
	max_depth = 2
	min_split = 1000
	parallelism = 0

	[query]
	word_index_threshold = 100
	selection_ratio = 25.0

	[server]
	max_limit = 1000
	default_limit = 50
	max_pattern = 256

	[dict]
	max_words = 0

	[cli]
	default_limit = 24
	preview = 10

The config file is automatically created with defaults if it doesn't exist.
Keys that cannot be read keep their defaults.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout:

	{"id": "req1", "p": "c?n*", "l": 20}

and replies with the matches, the planner method and microsecond timing:

	{"id": "req1", "w": ["can", "cane"], "c": 2, "m": "Selection", "t": 145}

See package server for the other actions.

# Command Line Flags

	-dict string
	    Dictionary: chunk directory, chunk file or text file (default "data/")
	-words int
	    Maximum words to load (0 for all)
	-config string
	    Config file path
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-limit int
	    Number of matches to return
	-depth int
	    Maximum trie depth
	-minsplit int
	    Minimum words in a trie node before it is split
	-scan
	    Skip indexing and scan every word
	-metrics string
	    Address to serve prometheus metrics on, e.g. :9090
	-syntax string
	    Pattern syntax, "standard" or "netspeak" (default from config)
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/bastiangx/wordmatch/internal/cli"
	"github.com/bastiangx/wordmatch/internal/utils"
	"github.com/bastiangx/wordmatch/pkg/config"
	"github.com/bastiangx/wordmatch/pkg/dictionary"
	"github.com/bastiangx/wordmatch/pkg/metrics"
	"github.com/bastiangx/wordmatch/pkg/query"
	"github.com/bastiangx/wordmatch/pkg/retrieve"
	"github.com/bastiangx/wordmatch/pkg/server"
)

const (
	Version = "0.1.0-beta"
	AppName = "wordmatch"
	gh      = "https://github.com/bastiangx/wordmatch"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main only manages the flow: config, dictionary, engines, then the server
// or the CLI.
func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	dictPath := flag.String("dict", "data/", "Dictionary: chunk directory, dict_NNNN.bin file or .txt word list")
	wordLimit := flag.Int("words", defaultConfig.Dict.MaxWords, "Maximum number of words to load (use 0 for all words)")
	configFile := flag.String("config", "", "Path to a config file")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", defaultConfig.CLI.DefaultLimit, "Number of matches to return")
	depth := flag.Int("depth", defaultConfig.Index.MaxDepth, "Maximum trie depth (0 disables the tries)")
	minSplit := flag.Int("minsplit", defaultConfig.Index.MinSplit, "Minimum words in a trie node before it is split")
	scanOnly := flag.Bool("scan", false, "Skip indexing and scan every word")
	metricsAddr := flag.String("metrics", "", "Serve prometheus metrics on this address")
	syntaxName := flag.String("syntax", defaultConfig.Query.Syntax, "Pattern syntax: standard or netspeak")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	// flags given explicitly win over the config file
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg, cfgPath, err := config.LoadConfigWithPriority(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(cfgPath))
	if set["words"] {
		cfg.Dict.MaxWords = *wordLimit
	}
	if set["depth"] {
		cfg.Index.MaxDepth, cfg.Index.PositionalMaxDepth = *depth, *depth
	}
	if set["minsplit"] {
		cfg.Index.MinSplit, cfg.Index.PositionalMinSplit = *minSplit, *minSplit
	}
	if set["syntax"] {
		if _, err := query.ParseSyntax(*syntaxName); err != nil {
			log.Fatalf("Invalid -syntax: %v", err)
		}
		cfg.Query.Syntax = *syntaxName
	}
	syntax := cfg.PatternSyntax()

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Print("Either env is not set or system is not supported")
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}
	log.Debug("runtime", "info", pathResolver.GetRuntimeInfo())

	resolvedDict := pathResolver.GetDataDir(*dictPath)
	log.Debugf("Using dictionary at: %s", resolvedDict)

	loadStart := time.Now()
	words, err := dictionary.Load(resolvedDict, cfg.Dict.MaxWords)
	if err != nil {
		log.Fatalf("Failed to load dictionary: %v", err)
	}
	log.Debugf("Loaded %s words in %v", utils.FormatWithCommas(len(words)), time.Since(loadStart))

	m := metrics.New(nil)
	m.SetDictionaryWords(len(words))
	if *metricsAddr != "" {
		serveMetrics(*metricsAddr, m)
	}

	scanner := retrieve.NewScanner(words, m)
	var index retrieve.Engine
	if !*scanOnly {
		opts := cfg.RetrieverOptions()
		opts.Metrics = m
		buildStart := time.Now()
		r, err := retrieve.New(words, opts)
		if err != nil {
			log.Fatalf("Failed to build index: %v", err)
		}
		log.Debugf("Index built in %v", time.Since(buildStart))
		index = r
	}

	if *cliMode {
		log.SetReportTimestamp(false)
		cliLimit := cfg.CLI.DefaultLimit
		if set["limit"] {
			cliLimit = *limit
		}
		log.Debug("Input info:", "limit", cliLimit, "preview", cfg.CLI.Preview, "scan", *scanOnly, "syntax", syntax)

		inputHandler := cli.NewInputHandler(index, scanner, cliLimit, cfg.CLI.Preview)
		inputHandler.SetSyntax(syntax)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srvOpts := server.Options{
		MaxLimit:     cfg.Server.MaxLimit,
		DefaultLimit: cfg.Server.DefaultLimit,
		MaxPattern:   cfg.Server.MaxPattern,
		Syntax:       syntax,
	}
	if set["limit"] {
		srvOpts.DefaultLimit = *limit
	}
	var engine retrieve.Engine = scanner
	if index != nil {
		engine = index
	}
	srv := server.NewServer(engine, srvOpts)

	showStartupInfo(resolvedDict, len(words))

	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

func serveMetrics(addr string, m *metrics.Metrics) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("Metrics server: %v", err)
		}
	}()
	log.Debugf("Serving metrics on %s/metrics", addr)
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ wordmatch ] Finds words matching wildcard patterns, fast!")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(dictPath string, words int) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("===========")
	println(" wordmatch ")
	println("===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("dictionary: ( %s )", dictPath)
	log.Infof("words: %s", utils.FormatWithCommas(words))
	log.Info("status: ready")
	println("===========")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
