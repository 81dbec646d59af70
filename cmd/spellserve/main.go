// Copyright 2025 The SpellServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the spellserve daemon and debug CLI.

spellserve is the fuzzy spelling-suggestion engine of a full-text search
service. It keeps an in-memory inverted index and a set of named
supplementary dictionaries, and answers spell-check requests over a
MessagePack IPC protocol on stdin/stdout: for every query term missing from
the indexed vocabulary it returns alternative spellings within a bounded
edit distance, ranked by index-derived relevance.

# Usage

Start the server with default settings:

	spellserve

Use a custom dictionary directory and enable debug logging:

	spellserve -dicts /path/to/dicts -d

Run in CLI mode for interactive testing:

	spellserve -c -corpus corpus.txt -dist 2

The dictionary directory may contain binary .bin dictionaries and plain
.txt word lists; each file becomes a named dictionary usable in the
include/exclude lists of spell-check requests. A corpus file seeds the
index with one document per line.

# Configuration

Runtime configuration is a TOML file, created with defaults when missing:

	[server]
	max_terms = 64
	max_term_len = 128

	[spell]
	max_distance = 1
	full_score_info = false
	dict_dir = "dicts/"

	[index]
	fields = ["title", "body"]

# IPC Protocol

Requests and responses are msgpack-encoded; see pkg/server for the message
shapes. Spell-check responses stream the suggestion envelope the search
cluster protocol expects: a term block per misspelled term, each holding
score-ascending (score, term) pairs, preceded by the corpus document count
when full scoring is requested for cluster aggregation.
*/
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/searchkit/spellserve/internal/cli"
	"github.com/searchkit/spellserve/internal/utils"
	"github.com/searchkit/spellserve/pkg/config"
	"github.com/searchkit/spellserve/pkg/dictionary"
	"github.com/searchkit/spellserve/pkg/index"
	"github.com/searchkit/spellserve/pkg/server"
)

const (
	Version = "0.3.0"
	AppName = "spellserve"
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

// main calls other packages to initialize the server or CLI inputs.
// main() does not implement logic for them and only manages the flow.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	configPath := flag.String("config", "spellserve.toml", "Path to the TOML config file")
	dictDir := flag.String("dicts", "", "Directory containing dictionary files (overrides config)")
	corpusPath := flag.String("corpus", "", "Seed corpus file, one document per line")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	distance := flag.Int("dist", 0, "Maximum edit distance for suggestions (overrides config)")
	include := flag.String("incl", "", "Comma-separated include dictionaries (CLI mode)")
	exclude := flag.String("excl", "", "Comma-separated exclude dictionaries (CLI mode)")

	flag.Parse()

	if *showVersion {
		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportCaller:    false,
			ReportTimestamp: false,
		})
		styles := log.DefaultStyles()
		styles.Values["version"] = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
		logger.SetStyles(styles)

		logger.Print("[ spellserve ] Fuzzy spelling suggestions for search queries")
		logger.Print("", "version", Version)
		logger.Print("use -h or --help to see available options")
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	appConfig, err := config.InitConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", utils.GetAbsolutePath(*configPath))

	ix, err := index.NewIndex(appConfig.Index.Fields)
	if err != nil {
		log.Fatalf("Failed to build index: %v", err)
	}

	if *corpusPath != "" {
		n, err := seedCorpus(ix, appConfig.Index.Fields[0], *corpusPath)
		if err != nil {
			log.Fatalf("Failed to seed corpus: %v", err)
		}
		log.Debugf("Seeded %d documents from %s", n, *corpusPath)
	}

	dicts := dictionary.NewStore()
	dir := appConfig.Spell.DictDir
	if *dictDir != "" {
		dir = *dictDir
	}
	if dir != "" && utils.FileExists(dir) {
		n, err := dictionary.LoadDir(dicts, dir)
		if err != nil {
			log.Fatalf("Failed to load dictionaries: %v", err)
		}
		log.Debugf("Loaded %d dictionary terms from %s", n, dir)
	} else {
		log.Warn("No dictionary dir found, running without supplementary dictionaries...")
	}

	dist := appConfig.Spell.MaxDistance
	if *distance > 0 {
		dist = *distance
	}

	if *cliMode {
		log.SetReportTimestamp(false)
		handler := cli.NewInputHandler(ix, dicts, dist, appConfig.Server.MaxTermLen,
			splitList(*include), splitList(*exclude))
		if err := handler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	showStartupInfo(ix, dicts)

	srv := server.NewServer(ix, dicts, appConfig)
	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// seedCorpus indexes one document per non-empty line of the file, under the
// given field.
func seedCorpus(ix *index.Index, field, path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening corpus %s: %w", path, err)
	}
	defer file.Close()

	n := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		ix.AddDocument(map[string]string{field: line})
		n++
	}
	if err := scanner.Err(); err != nil {
		return n, fmt.Errorf("scanning corpus %s: %w", path, err)
	}
	return n, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(ix *index.Index, dicts *dictionary.Store) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Infof("vocabulary terms: %d, documents: %d", ix.Terms().Len(), ix.TotalDocs()-1)
	log.Infof("dictionaries: %v", dicts.Names())
	log.Info("status: ready")

	log.SetLevel(currentLevel)
}
