package history

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jjf3/heated-rivalry-tracker/internal/models"
)

// CSVStore appends snapshot rows to a UTF-8 CSV file. The header row is
// written exactly once, when the file is first created.
type CSVStore struct {
	path string
}

// NewCSVStore creates a CSV-backed history store at path. Nothing is
// touched on disk until the first Append.
func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

// Append implements Store.
func (s *CSVStore) Append(ctx context.Context, snapshot time.Time, posts []models.Post) error {
	if err := s.ensureHeader(); err != nil {
		return err
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open history log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, p := range posts {
		row := rowFromPost(snapshot, p)
		if err := w.Write(encodeRow(row)); err != nil {
			return fmt.Errorf("write history row: %w", err)
		}
	}
	w.Flush()

	if err := w.Error(); err != nil {
		return fmt.Errorf("flush history log: %w", err)
	}
	return nil
}

// Load implements Store. A missing log is not an error; it loads empty.
func (s *CSVStore) Load(ctx context.Context) ([]Row, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open history log: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read history log: %w", err)
	}

	var rows []Row
	for i, rec := range records {
		if i == 0 {
			continue // header
		}
		if len(rec) != len(Columns) {
			continue
		}
		rows = append(rows, decodeRow(rec))
	}
	return rows, nil
}

func (s *CSVStore) ensureHeader() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat history log: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create history dir: %w", err)
		}
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create history log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Columns); err != nil {
		return fmt.Errorf("write history header: %w", err)
	}
	w.Flush()
	return w.Error()
}

func encodeRow(r Row) []string {
	return []string{
		r.SnapshotUTC,
		r.PostID,
		r.PostName,
		r.EpisodeCode,
		encodeBool(r.IsEpisode),
		encodeBool(r.IsTrailer),
		r.Title,
		r.Permalink,
		strconv.Itoa(r.NumComments),
	}
}

func decodeRow(rec []string) Row {
	return Row{
		SnapshotUTC: rec[0],
		PostID:      rec[1],
		PostName:    rec[2],
		EpisodeCode: rec[3],
		IsEpisode:   rec[4] == "1",
		IsTrailer:   rec[5] == "1",
		Title:       rec[6],
		Permalink:   rec[7],
		NumComments: safeInt(rec[8]),
	}
}

func encodeBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// safeInt coerces with a zero default; the log tolerates hand-edited rows.
func safeInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
