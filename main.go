package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/LFroesch/trek/internal/browser"
	"github.com/LFroesch/trek/internal/config"
	"github.com/LFroesch/trek/internal/fileops"
	"github.com/LFroesch/trek/internal/lister"
	"github.com/LFroesch/trek/internal/logger"
)

// Version is set at build time via ldflags
var Version = ""

var (
	configPath  = flag.String("config", "", "path to config file")
	startDir    = flag.String("dir", "", "directory to start in")
	debugFlag   = flag.Bool("debug", false, "enable debug logging")
	versionFlag = flag.Bool("version", false, "print version and exit")
)

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Printf("trek version %s\n", effectiveVersion(Version))
		os.Exit(0)
	}

	if err := logger.Init(config.Dir()); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	defer logger.Close()
	logger.SetDebug(*debugFlag)

	var cfg *config.Config
	if *configPath != "" {
		cfg = config.LoadFrom(*configPath)
	} else {
		cfg = config.Load()
	}

	start, err := resolveStartDir(*startDir, cfg.StartDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("Starting trek in %s", start)

	fs := lister.New(lister.Options{
		ShowHidden:      cfg.ShowHidden,
		SkipDirectories: cfg.SkipDirectories,
		MaxResults:      cfg.MaxResults,
		MaxDepth:        cfg.MaxDepth,
		MaxFilesScanned: cfg.MaxFilesScanned,
	})
	ctrl := browser.New(start, fs, fileops.New(), browser.WithHistoryLimit(cfg.HistoryLimit))

	p := tea.NewProgram(newModel(cfg, ctrl), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		logger.Error("Program exited: %v", err)
		fmt.Fprintf(os.Stderr, "Error running trek: %v\n", err)
		os.Exit(1)
	}
}

// resolveStartDir picks the flag, then the config, then the working directory
func resolveStartDir(flagDir, configDir string) (string, error) {
	dir := flagDir
	if dir == "" {
		dir = configDir
	}
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("cannot determine working directory: %w", err)
		}
		dir = wd
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("start directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("start directory %s is not a directory", abs)
	}
	return abs, nil
}

func effectiveVersion(v string) string {
	if v != "" {
		return v
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "devel"
}
