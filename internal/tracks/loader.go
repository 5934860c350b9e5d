package tracks

import (
	"math/rand"
	"os"
	"path/filepath"
)

// DataDir returns the fomu data directory, creating it if needed.
// XDG_DATA_HOME wins, then ~/.local/share, then the working directory.
func DataDir() string {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		if home, err := os.UserHomeDir(); err == nil {
			base = filepath.Join(home, ".local", "share")
		} else {
			base = "."
		}
	}
	dir := filepath.Join(base, "fomu")
	os.MkdirAll(dir, 0o755)
	return dir
}

// TracksDir returns the directory holding downloaded tracks, creating it
// if needed.
func TracksDir() string {
	dir := filepath.Join(DataDir(), "tracks", "scott-buckley")
	os.MkdirAll(dir, 0o755)
	return dir
}

// Loader resolves catalog tracks against files on disk.
type Loader struct {
	dir string
}

// NewLoader creates a loader over the default tracks directory.
func NewLoader() *Loader {
	return &Loader{dir: TracksDir()}
}

// NewLoaderAt creates a loader over a specific directory.
func NewLoaderAt(dir string) *Loader {
	return &Loader{dir: dir}
}

// TrackPath returns where the track lives on disk.
func (l *Loader) TrackPath(t *Track) string {
	return filepath.Join(l.dir, t.Filename())
}

// TrackExists reports whether the track has been downloaded.
func (l *Loader) TrackExists(t *Track) bool {
	_, err := os.Stat(l.TrackPath(t))
	return err == nil
}

// Available returns the tracks from pools that are present on disk.
func (l *Loader) Available(pools []Pool) []*Track {
	var out []*Track
	for _, t := range ByPools(pools) {
		if l.TrackExists(t) {
			out = append(out, t)
		}
	}
	return out
}

// Missing returns the tracks from pools not yet on disk.
func (l *Loader) Missing(pools []Pool) []*Track {
	var out []*Track
	for _, t := range ByPools(pools) {
		if !l.TrackExists(t) {
			out = append(out, t)
		}
	}
	return out
}

// Playlist returns the available tracks from pools, shuffled when asked.
func (l *Loader) Playlist(pools []Pool, shuffle bool) []*Track {
	out := l.Available(pools)
	if shuffle {
		rand.Shuffle(len(out), func(i, j int) {
			out[i], out[j] = out[j], out[i]
		})
	}
	return out
}
