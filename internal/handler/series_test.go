package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jjf3/heated-rivalry-tracker/internal/history"
	"github.com/jjf3/heated-rivalry-tracker/internal/models"
)

type stubStore struct {
	rows []history.Row
	err  error
}

func (s *stubStore) Append(ctx context.Context, snapshot time.Time, posts []models.Post) error {
	return errors.New("read-only")
}

func (s *stubStore) Load(ctx context.Context) ([]history.Row, error) {
	return s.rows, s.err
}

func setupRouter(store history.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewSeriesHandler(store)
	r.GET("/api/v1/series/episodes", h.Episodes)
	r.GET("/api/v1/series/others", h.Others)
	return r
}

func TestSeriesEpisodes(t *testing.T) {
	store := &stubStore{rows: []history.Row{
		{SnapshotUTC: "2026-08-01T00:00:00Z", PostName: "t3_ep", EpisodeCode: "1x01", IsEpisode: true, Title: "1x01 discussion", NumComments: 10},
		{SnapshotUTC: "2026-08-02T00:00:00Z", PostName: "t3_ep", EpisodeCode: "1x01", IsEpisode: true, Title: "1x01 discussion", NumComments: 25},
		{SnapshotUTC: "2026-08-01T00:00:00Z", PostName: "t3_other", Title: "Casting news", NumComments: 3},
	}}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/series/episodes", nil)
	setupRouter(store).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Series []struct {
			PostName    string `json:"post_name"`
			EpisodeCode string `json:"episode_code"`
			Points      []struct {
				NumComments int `json:"num_comments"`
			} `json:"points"`
		} `json:"series"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	require.Len(t, body.Series, 1)
	assert.Equal(t, "t3_ep", body.Series[0].PostName)
	assert.Equal(t, "1x01", body.Series[0].EpisodeCode)
	require.Len(t, body.Series[0].Points, 2)
	assert.Equal(t, 10, body.Series[0].Points[0].NumComments)
}

func TestSeriesOthers(t *testing.T) {
	store := &stubStore{rows: []history.Row{
		{SnapshotUTC: "2026-08-01T00:00:00Z", PostName: "t3_other", Title: "Casting news", NumComments: 3},
	}}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/series/others", nil)
	setupRouter(store).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "t3_other")
}

func TestSeriesLoadFailure(t *testing.T) {
	store := &stubStore{err: errors.New("disk gone")}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/series/episodes", nil)
	setupRouter(store).ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSeriesEmptyHistory(t *testing.T) {
	store := &stubStore{}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/series/others", nil)
	setupRouter(store).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"series":[]}`, w.Body.String())
}
