package tracks

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Progress is a snapshot of the background download state.
type Progress struct {
	TrackName string
	Fraction  float32
	Completed bool
}

// Downloader fetches missing catalog tracks into the tracks directory,
// either one at a time or on a background goroutine.
type Downloader struct {
	loader *Loader
	client *http.Client

	mu       sync.Mutex
	progress Progress

	stop *atomic.Bool
	done chan struct{}
}

// NewDownloader creates a downloader backed by loader's directory.
func NewDownloader(loader *Loader) *Downloader {
	return &Downloader{
		loader: loader,
		client: &http.Client{Timeout: 5 * time.Minute},
	}
}

// Download fetches one track to disk. Already-present tracks are left
// alone. The file is written to a temp name and renamed so a partial
// download never looks like a finished track.
func (d *Downloader) Download(t *Track) (string, error) {
	path := d.loader.TrackPath(t)
	if d.loader.TrackExists(t) {
		return path, nil
	}

	resp, err := d.client.Get(t.DownloadURL)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", t.DownloadURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: unexpected status %s", t.DownloadURL, resp.Status)
	}

	tmp := path + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", tmp, err)
	}
	if err := d.copyWithProgress(f, resp.Body, resp.ContentLength); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("rename %s: %w", tmp, err)
	}
	return path, nil
}

// copyWithProgress streams the body to disk, publishing the byte fraction
// when the response carries a length.
func (d *Downloader) copyWithProgress(dst io.Writer, src io.Reader, total int64) error {
	buf := make([]byte, 64*1024)
	var written int64
	for {
		n, err := src.Read(buf)
		if n > 0 {
			if _, werr := dst.Write(buf[:n]); werr != nil {
				return werr
			}
			written += int64(n)
			if total > 0 {
				d.setFraction(float32(written) / float32(total))
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (d *Downloader) setFraction(frac float32) {
	d.mu.Lock()
	d.progress.Fraction = frac
	d.mu.Unlock()
}

// DownloadOne fetches the first missing track from pools, so playback can
// begin without waiting for the whole catalog. Returns nil when nothing
// is missing.
func (d *Downloader) DownloadOne(pools []Pool) (*Track, error) {
	missing := d.loader.Missing(pools)
	if len(missing) == 0 {
		return nil, nil
	}
	t := missing[0]
	if _, err := d.Download(t); err != nil {
		return nil, err
	}
	return t, nil
}

// StartBackground fetches every track still missing from pools on a new
// goroutine. Any earlier background run is stopped first.
func (d *Downloader) StartBackground(pools []Pool) {
	d.StopBackground()

	missing := d.loader.Missing(pools)
	if len(missing) == 0 {
		return
	}

	stop := &atomic.Bool{}
	done := make(chan struct{})
	d.stop = stop
	d.done = done

	go func() {
		defer close(done)
		for _, t := range missing {
			if stop.Load() {
				return
			}
			d.setProgress(Progress{TrackName: t.Name})
			if _, err := d.Download(t); err != nil {
				slog.Warn("background download failed", "track", t.Name, "err", err)
			}
			d.setProgress(Progress{TrackName: t.Name, Fraction: 1, Completed: true})
		}
	}()
}

// StopBackground asks the background run to end and waits briefly. A run
// stuck inside an HTTP request is detached rather than joined.
func (d *Downloader) StopBackground() {
	if d.stop == nil {
		return
	}
	d.stop.Store(true)

	deadline := time.Now().Add(500 * time.Millisecond)
	for {
		select {
		case <-d.done:
			d.stop = nil
			d.done = nil
			return
		default:
		}
		if time.Now().After(deadline) {
			slog.Warn("background download did not stop in time, detaching")
			d.stop = nil
			d.done = nil
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
}

// Progress returns the latest background download snapshot.
func (d *Downloader) Progress() Progress {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.progress
}

func (d *Downloader) setProgress(p Progress) {
	d.mu.Lock()
	d.progress = p
	d.mu.Unlock()
}
