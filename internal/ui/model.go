// Package ui implements the terminal player: a Bubbletea model ticking at
// the analysis cadence, bar visualization, and preset selection.
package ui

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yuya-fujimoto/fomu.cli/internal/audio"
	"github.com/yuya-fujimoto/fomu.cli/internal/config"
	"github.com/yuya-fujimoto/fomu.cli/internal/presets"
	"github.com/yuya-fujimoto/fomu.cli/internal/tracks"
)

const supportURL = "https://www.scottbuckley.com.au/"

// tickMsg drives analysis updates and track-end detection.
type tickMsg time.Time

// Model is the Bubbletea model for a listening session.
type Model struct {
	player     *audio.Player
	decoder    *audio.Decoder
	analyzer   *audio.Analyzer
	loader     *tracks.Loader
	downloader *tracks.Downloader

	preset        *presets.Preset
	playlist      []*tracks.Track
	playlistIndex int
	current       *tracks.Track

	selectingPreset bool
	selectedPreset  int
	pendingPreset   string
	downloadBar     progress.Model

	startTime time.Time
	width     int
	height    int
	quitting  bool
}

// NewModel wires a session together. Start must be called before the
// model is handed to Bubbletea.
func NewModel(player *audio.Player, decoder *audio.Decoder, analyzer *audio.Analyzer,
	loader *tracks.Loader, downloader *tracks.Downloader, preset *presets.Preset) *Model {
	selected := 0
	for i := range presets.All {
		if presets.All[i].Name == preset.Name {
			selected = i
			break
		}
	}
	return &Model{
		player:         player,
		decoder:        decoder,
		analyzer:       analyzer,
		loader:         loader,
		downloader:     downloader,
		preset:         preset,
		selectedPreset: selected,
		downloadBar: progress.New(
			progress.WithGradient("#006666", "#00CED1"),
			progress.WithWidth(20),
			progress.WithoutPercentage(),
		),
		startTime: time.Now(),
	}
}

// Start makes sure at least one track is on disk, kicks off the
// background download for the rest, and begins the first track.
func (m *Model) Start() error {
	if len(m.loader.Available(m.preset.Pools)) == 0 {
		fmt.Println("First run: downloading a track (only happens once)...")
		if _, err := m.downloader.DownloadOne(m.preset.Pools); err != nil {
			return fmt.Errorf("download first track: %w", err)
		}
	}
	m.downloader.StartBackground(m.preset.Pools)

	m.buildPlaylist()
	if !m.loadNextTrack() {
		return fmt.Errorf("no playable tracks for preset %q", m.preset.Name)
	}
	return nil
}

// Shutdown stops the decode session, the device, and any background
// download. Safe to call after the program exits.
func (m *Model) Shutdown() {
	m.decoder.Stop()
	m.player.Stop()
	m.downloader.StopBackground()
}

func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(config.TickRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.analyzer.Update()

		// Track over: the session goroutine exited and playback drained.
		if m.player.IsFinished() && !m.decoder.IsRunning() {
			if !m.loadNextTrack() {
				m.buildPlaylist()
				m.loadNextTrack()
			}
		}

		m.checkPendingPreset()
		return m, tick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.selectingPreset {
		switch msg.String() {
		case "esc", "q":
			m.selectingPreset = false
			for i := range presets.All {
				if presets.All[i].Name == m.preset.Name {
					m.selectedPreset = i
				}
			}
		case "enter":
			m.confirmPreset()
		case "j", "left":
			m.selectedPreset--
			if m.selectedPreset < 0 {
				m.selectedPreset = len(presets.All) - 1
			}
		case "k", "right", "p":
			m.selectedPreset = (m.selectedPreset + 1) % len(presets.All)
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case " ":
		m.player.TogglePause()
	case "p":
		m.selectingPreset = true
	case "n":
		m.skipTrack()
	case "s":
		openSupportURL()
	case "+", "=", "]", "up":
		m.player.VolumeUp()
	case "-", "_", "[", "down":
		m.player.VolumeDown()
	}
	return m, nil
}

func (m *Model) buildPlaylist() {
	m.playlist = m.loader.Playlist(m.preset.Pools, true)
	m.playlistIndex = 0
}

// loadNextTrack begins the next playlist entry. The playlist reshuffles
// once it wraps so long sessions do not repeat the same order.
func (m *Model) loadNextTrack() bool {
	if len(m.playlist) == 0 {
		m.buildPlaylist()
	}
	if len(m.playlist) == 0 {
		return false
	}

	track := m.playlist[m.playlistIndex]
	m.playlistIndex = (m.playlistIndex + 1) % len(m.playlist)
	if m.playlistIndex == 0 {
		m.buildPlaylist()
	}
	m.current = track

	playback := m.player.BeginTrack()
	analysis := m.analyzer.Attach()
	path := m.loader.TrackPath(track)
	if err := m.decoder.Start(path, playback, m.player.FinishedFlag(), analysis); err != nil {
		slog.Error("failed to start track", "track", track.Name, "err", err)
		return false
	}
	slog.Info("now playing", "track", track.Name, "preset", m.preset.Name)
	return true
}

func (m *Model) skipTrack() {
	m.decoder.Stop()
	m.loadNextTrack()
}

// confirmPreset applies the highlighted preset. When the preset has no
// tracks on disk yet, the switch goes pending until the background
// download delivers one.
func (m *Model) confirmPreset() {
	m.selectingPreset = false
	next := &presets.All[m.selectedPreset]
	if next.Name == m.preset.Name {
		return
	}

	if len(m.loader.Available(next.Pools)) == 0 {
		m.pendingPreset = next.Name
		m.downloader.StartBackground(next.Pools)
		return
	}

	m.preset = next
	m.pendingPreset = ""
	m.buildPlaylist()
	m.decoder.Stop()
	m.loadNextTrack()
	m.downloader.StartBackground(m.preset.Pools)
}

func (m *Model) checkPendingPreset() {
	if m.pendingPreset == "" {
		return
	}
	pending := presets.Get(m.pendingPreset)
	if pending == nil || len(m.loader.Available(pending.Pools)) == 0 {
		return
	}

	m.preset = pending
	m.pendingPreset = ""
	for i := range presets.All {
		if presets.All[i].Name == m.preset.Name {
			m.selectedPreset = i
		}
	}
	m.buildPlaylist()
	m.decoder.Stop()
	m.loadNextTrack()
}

func (m *Model) elapsed() string {
	secs := int(time.Since(m.startTime).Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
}

func openSupportURL() {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", supportURL)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", supportURL)
	default:
		cmd = exec.Command("xdg-open", supportURL)
	}
	if err := cmd.Start(); err != nil {
		slog.Warn("could not open browser", "err", err)
	}
}
