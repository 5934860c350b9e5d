package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yuya-fujimoto/fomu.cli/internal/audio"
	"github.com/yuya-fujimoto/fomu.cli/internal/cli"
	"github.com/yuya-fujimoto/fomu.cli/internal/presets"
	"github.com/yuya-fujimoto/fomu.cli/internal/tracks"
	"github.com/yuya-fujimoto/fomu.cli/internal/ui"
)

// version is set via ldflags at build time
// Local dev builds: "dev"
// Release builds: git tag (e.g. "v0.1.0")
var version = "dev"

var CLI struct {
	Preset      string `help:"Preset to play" default:"focus"`
	ListPresets bool   `help:"List available presets"`
	LogLevel    string `help:"Log level: debug, info, warn, error" default:"info"`
	Version     bool   `help:"Show version information"`
}

func main() {
	kong.Parse(&CLI,
		kong.Name("fomu"),
		kong.Description("Terminal focus-music player with live spectrum visualization."),
		kong.UsageOnError(),
	)

	if CLI.Version {
		cli.PrintVersion(version)
		os.Exit(0)
	}

	if CLI.ListPresets {
		fmt.Println(cli.TitleStyle.Render("Presets"))
		for _, p := range presets.All {
			pools := make([]string, len(p.Pools))
			for i, pool := range p.Pools {
				pools[i] = pool.String()
			}
			cli.PrintInfo(p.Name, strings.Join(pools, ", "))
		}
		os.Exit(0)
	}

	preset := presets.Get(CLI.Preset)
	if preset == nil {
		cli.PrintError(fmt.Sprintf("unknown preset %q (try --list-presets)", CLI.Preset))
		os.Exit(1)
	}

	closeLog := setupLogging(CLI.LogLevel)
	defer closeLog()

	if err := run(preset); err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}
}

func run(preset *presets.Preset) error {
	player, err := audio.NewPlayer()
	if err != nil {
		return fmt.Errorf("open audio device: %w", err)
	}

	loader := tracks.NewLoader()
	downloader := tracks.NewDownloader(loader)
	decoder := audio.NewDecoder()
	analyzer := audio.NewAnalyzer()

	model := ui.NewModel(player, decoder, analyzer, loader, downloader, preset)
	if err := model.Start(); err != nil {
		return err
	}
	defer model.Shutdown()

	slog.Info("session started", "preset", preset.Name, "version", version)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// setupLogging routes slog to a file under the data dir. The terminal
// belongs to the TUI, so on any failure logs are discarded rather than
// printed.
func setupLogging(level string) func() {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	path := filepath.Join(tracks.DataDir(), "fomu.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return func() {}
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: lvl})))
	return func() { f.Close() }
}
