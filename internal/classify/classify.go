// Package classify extracts structured signals from free-text post titles.
//
// Titles are untrusted input: classification is total and never fails.
// A title that matches nothing simply classifies as "no episode, not a
// trailer".
package classify

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Episode token patterns, tried in priority order. The 1x02 form wins over
// S01E02 when both appear in the same title.
var episodePatterns = []*regexp.Regexp{
	// 1x01, 1X02, 10x3
	regexp.MustCompile(`\b(\d{1,2})\s*[xX]\s*(\d{1,2})\b`),
	// S01E01, s1e2
	regexp.MustCompile(`\b[Ss](\d{1,2})\s*[Ee](\d{1,2})\b`),
}

// Result is the classifier's output for one title.
type Result struct {
	EpisodeCode string // normalized "<season>x<episode:02d>", "" if absent
	IsTrailer   bool
}

// EpisodeCode extracts and normalizes an episode token from a title.
// It returns "" when no pattern matches. Zero-padding the episode number
// makes lexicographic order equal numeric order for seasons 1-99 and
// episodes 0-99, which the selection layer relies on.
func EpisodeCode(title string) string {
	for _, pat := range episodePatterns {
		m := pat.FindStringSubmatch(title)
		if m == nil {
			continue
		}
		season, _ := strconv.Atoi(m[1])
		episode, _ := strconv.Atoi(m[2])
		return fmt.Sprintf("%dx%02d", season, episode)
	}
	return ""
}

// IsOfficialTrailer reports whether a title names the official trailer for
// the tracked topic: it must contain "trailer", "official" and the topic
// phrase, all case-insensitively.
func IsOfficialTrailer(title, topic string) bool {
	t := strings.ToLower(title)
	return strings.Contains(t, "trailer") &&
		strings.Contains(t, "official") &&
		strings.Contains(t, strings.ToLower(topic))
}

// Classify runs both detections over one title. The two signals are not
// mutually exclusive by construction; downstream selection excludes episode
// posts from the "other" pool explicitly.
func Classify(title, topic string) Result {
	return Result{
		EpisodeCode: EpisodeCode(title),
		IsTrailer:   IsOfficialTrailer(title, topic),
	}
}
