package publish

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testWriter(t *testing.T) *Writer {
	t.Helper()
	return &Writer{
		Dir:          filepath.Join(t.TempDir(), "docs"),
		PlaylistFile: "playlist.m3u8",
		GuideFile:    "epg.xml.gz",
	}
}

func TestEnsureDir(t *testing.T) {
	w := testWriter(t)
	if err := w.EnsureDir(); err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}
	info, err := os.Stat(w.Dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("publish dir missing after EnsureDir: %v", err)
	}
	// Idempotent.
	if err := w.EnsureDir(); err != nil {
		t.Fatalf("second EnsureDir: %v", err)
	}
}

func TestEnsureDir_Empty(t *testing.T) {
	w := &Writer{}
	if err := w.EnsureDir(); err == nil {
		t.Fatal("expected error for empty dir")
	}
}

func TestWritePlaylistAndGuide(t *testing.T) {
	w := testWriter(t)
	if err := w.EnsureDir(); err != nil {
		t.Fatal(err)
	}
	if err := w.WritePlaylist("#EXTM3U\n"); err != nil {
		t.Fatalf("WritePlaylist: %v", err)
	}
	if err := w.WriteGuide([]byte{0x1f, 0x8b, 0x08}); err != nil {
		t.Fatalf("WriteGuide: %v", err)
	}

	got, err := os.ReadFile(w.Path("playlist.m3u8"))
	if err != nil {
		t.Fatalf("read playlist: %v", err)
	}
	if string(got) != "#EXTM3U\n" {
		t.Errorf("playlist = %q", got)
	}
	if _, err := os.Stat(w.Path("epg.xml.gz")); err != nil {
		t.Errorf("guide artifact missing: %v", err)
	}
}

func TestWriteLandingPage(t *testing.T) {
	w := testWriter(t)
	if err := w.EnsureDir(); err != nil {
		t.Fatal(err)
	}
	p := Page{
		CountryLabel: "Canada",
		Channels:     120,
		UniqueIDs:    95,
		GuideMatched: 60,
		PlaylistURL:  "playlist.m3u8",
		GuideURL:     "epg.xml.gz",
		HasGuide:     true,
		GeneratedAt:  time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC),
	}
	if err := w.WriteLandingPage(p); err != nil {
		t.Fatalf("WriteLandingPage: %v", err)
	}
	got, err := os.ReadFile(w.Path("index.html"))
	if err != nil {
		t.Fatalf("read index.html: %v", err)
	}
	html := string(got)
	for _, want := range []string{"Canada", "120 channels", "playlist.m3u8", "epg.xml.gz", "2026-08-24 12:00 UTC"} {
		if !strings.Contains(html, want) {
			t.Errorf("landing page missing %q", want)
		}
	}
}

func TestWriteLandingPage_NoGuide(t *testing.T) {
	w := testWriter(t)
	if err := w.EnsureDir(); err != nil {
		t.Fatal(err)
	}
	p := Page{CountryLabel: "US", PlaylistURL: "playlist.m3u8", GeneratedAt: time.Now()}
	if err := w.WriteLandingPage(p); err != nil {
		t.Fatalf("WriteLandingPage: %v", err)
	}
	got, err := os.ReadFile(w.Path("index.html"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(got), "Guide:") {
		t.Error("guide link rendered without a guide artifact")
	}
}
