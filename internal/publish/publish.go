// Package publish writes the run's artifacts into the publish directory:
// the merged playlist, the gzip guide artifact, a landing page, and the run
// metrics file. Writes are plain overwrites; there is no versioning.
package publish

import (
	"fmt"
	"os"
	"path/filepath"
)

// Writer persists artifacts under Dir. A Dir that cannot be created is the
// one fatal error of the pipeline.
type Writer struct {
	Dir          string
	PlaylistFile string
	GuideFile    string
}

// EnsureDir creates the publish directory if missing.
func (w *Writer) EnsureDir() error {
	if w.Dir == "" {
		return fmt.Errorf("publish: empty directory")
	}
	return os.MkdirAll(w.Dir, 0o755)
}

// WritePlaylist writes the merged playlist document.
func (w *Writer) WritePlaylist(doc string) error {
	return os.WriteFile(w.playlistPath(), []byte(doc), 0o644)
}

// WriteGuide writes the gzip guide artifact.
func (w *Writer) WriteGuide(data []byte) error {
	return os.WriteFile(w.guidePath(), data, 0o644)
}

// Path returns the location of name inside the publish directory.
func (w *Writer) Path(name string) string { return filepath.Join(w.Dir, name) }

func (w *Writer) playlistPath() string { return filepath.Join(w.Dir, w.PlaylistFile) }
func (w *Writer) guidePath() string    { return filepath.Join(w.Dir, w.GuideFile) }
