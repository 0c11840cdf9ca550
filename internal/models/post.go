// Package models holds the core entities the tracker works with.
package models

import "time"

// Post is one search-result item as observed at fetch time. It is built
// once per fetched record per run and never mutated afterwards.
type Post struct {
	ID          string
	Name        string // fully-qualified name (t3_<id>); time-series grouping key
	CreatedUTC  int64
	CreatedAt   time.Time
	CreatedISO  string // empty when the source omits the creation timestamp
	Title       string
	Permalink   string
	URL         string
	Author      string
	Score       int
	NumComments int

	// Derived from the title at build time.
	EpisodeCode string // "" when no episode token was found
	IsTrailer   bool
}

// NewPost builds a Post from one raw record plus classifier output.
// A zero createdUTC means the source did not report a creation time; the
// display string stays empty and CreatedAt stays the zero value's epoch.
func NewPost(id, name, title, permalink, url, author string, createdUTC int64, score, numComments int, episodeCode string, isTrailer bool) Post {
	p := Post{
		ID:          id,
		Name:        name,
		CreatedUTC:  createdUTC,
		Title:       title,
		Permalink:   permalink,
		URL:         url,
		Author:      author,
		Score:       score,
		NumComments: numComments,
		EpisodeCode: episodeCode,
		IsTrailer:   isTrailer,
	}

	if name == "" {
		p.Name = "t3_" + id
	}

	if createdUTC != 0 {
		p.CreatedAt = time.Unix(createdUTC, 0).UTC()
		p.CreatedISO = p.CreatedAt.Format(time.RFC3339)
	} else {
		p.CreatedAt = time.Unix(0, 0).UTC()
	}

	return p
}

// IsEpisode reports whether an episode token was extracted from the title.
func (p Post) IsEpisode() bool {
	return p.EpisodeCode != ""
}
