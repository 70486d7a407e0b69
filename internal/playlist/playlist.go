// Package playlist merges the fetched category bodies into the single
// combined playlist document.
package playlist

import (
	"strings"

	"github.com/tvmix/tv-mix/internal/feed"
)

// Marker is the playlist file marker. It appears exactly once, at the start
// of the merged document; markers embedded in category bodies are stripped.
const Marker = "#EXTM3U"

const bannerRule = "# ======================================"

// Merge concatenates the category bodies in feed.Order into one document.
// Each non-empty category gets a three-line banner followed by its body with
// embedded marker lines removed and surrounding whitespace trimmed. Empty
// categories are skipped entirely. The country category is labelled
// "LOCAL - <countryLabel>"; the rest use their upper-cased name.
func Merge(feeds map[feed.Category]feed.Feed, countryLabel string) string {
	var b strings.Builder
	b.WriteString(Marker + "\n\n")
	for _, cat := range feed.Order {
		fd, ok := feeds[cat]
		if !ok {
			continue
		}
		body := stripMarkerLines(fd.Body)
		if body == "" {
			continue
		}
		label := strings.ToUpper(string(cat))
		if cat == feed.CategoryCountry {
			label = "LOCAL - " + countryLabel
		}
		b.WriteString(bannerRule + "\n# " + label + "\n" + bannerRule + "\n")
		b.WriteString(body + "\n\n")
	}
	return b.String()
}

// stripMarkerLines removes any #EXTM3U lines (the header line may carry
// attributes such as url-tvg) and trims the result.
func stripMarkerLines(body string) string {
	if body == "" {
		return ""
	}
	lines := strings.Split(body, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), Marker) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
