// Package report renders the per-run outputs: snapshot CSV tables, comment
// growth charts and the static dashboard page.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jjf3/heated-rivalry-tracker/internal/models"
)

// Output file names inside the report directory.
const (
	AllPostsFile      = "all_posts.csv"
	EpisodePostsFile  = "episode_posts.csv"
	SelectedPostsFile = "selected_posts.csv"
	EpisodeChartFile  = "episode_comment_growth.html"
	OtherChartFile    = "non_episode_comment_growth.html"
	DashboardFile     = "dashboard.html"
)

// Writer renders all report artifacts into one output directory.
type Writer struct {
	dir string
}

// NewWriter creates a report writer rooted at dir. The directory is created
// on first use.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// WriteAllPosts writes the full snapshot table, one row per fetched post.
func (w *Writer) WriteAllPosts(posts []models.Post) error {
	header := []string{"id", "created_utc", "created_iso", "title", "episode_code", "is_trailer", "num_comments", "score", "author", "permalink", "url"}

	rows := make([][]string, 0, len(posts))
	for _, p := range posts {
		rows = append(rows, []string{
			p.ID,
			strconv.FormatInt(p.CreatedUTC, 10),
			p.CreatedISO,
			p.Title,
			p.EpisodeCode,
			boolFlag(p.IsTrailer),
			strconv.Itoa(p.NumComments),
			strconv.Itoa(p.Score),
			p.Author,
			p.Permalink,
			p.URL,
		})
	}

	return w.writeCSV(AllPostsFile, header, rows)
}

// WriteEpisodePosts writes the episode-thread table. Callers pass posts
// already sorted by the selection layer.
func (w *Writer) WriteEpisodePosts(eps []models.Post) error {
	header := []string{"episode_code", "id", "created_iso", "title", "num_comments", "score", "permalink"}

	rows := make([][]string, 0, len(eps))
	for _, p := range eps {
		rows = append(rows, []string{
			p.EpisodeCode,
			p.ID,
			p.CreatedISO,
			p.Title,
			strconv.Itoa(p.NumComments),
			strconv.Itoa(p.Score),
			p.Permalink,
		})
	}

	return w.writeCSV(EpisodePostsFile, header, rows)
}

// WriteSelectedPosts writes the notable-post table: the trailer pick (if
// any) first, then the selected other posts.
func (w *Writer) WriteSelectedPosts(trailer *models.Post, others []models.Post) error {
	header := []string{"type", "episode_code", "id", "created_iso", "title", "num_comments", "score", "permalink"}

	var selected []models.Post
	if trailer != nil {
		selected = append(selected, *trailer)
	}
	selected = append(selected, others...)

	rows := make([][]string, 0, len(selected))
	for _, p := range selected {
		rows = append(rows, []string{
			postKind(p),
			p.EpisodeCode,
			p.ID,
			p.CreatedISO,
			p.Title,
			strconv.Itoa(p.NumComments),
			strconv.Itoa(p.Score),
			p.Permalink,
		})
	}

	return w.writeCSV(SelectedPostsFile, header, rows)
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	f, err := os.Create(filepath.Join(w.dir, name))
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write %s header: %w", name, err)
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write %s row: %w", name, err)
		}
	}
	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", name, err)
	}
	return nil
}

// postKind labels a selected post the way the dashboard displays it.
func postKind(p models.Post) string {
	switch {
	case p.IsTrailer:
		return "Trailer"
	case p.IsEpisode():
		return "Episode"
	default:
		return "Other"
	}
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
