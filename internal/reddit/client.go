// Package reddit fetches search results from a subreddit's public JSON
// search endpoint, with polite backoff on rate limiting.
package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jjf3/heated-rivalry-tracker/internal/classify"
	"github.com/jjf3/heated-rivalry-tracker/internal/metrics"
	"github.com/jjf3/heated-rivalry-tracker/internal/models"
	"github.com/jjf3/heated-rivalry-tracker/pkg/logger"
)

const maxBackoff = 60 * time.Second

// listing mirrors the slice of the search response the tracker consumes.
type listing struct {
	Data struct {
		Children []struct {
			Data childData `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type childData struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	CreatedUTC  float64 `json:"created_utc"`
	Title       string  `json:"title"`
	Permalink   string  `json:"permalink"`
	URL         string  `json:"url"`
	Author      string  `json:"author"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
}

// Client issues bounded search requests against one community.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	community   string
	userAgent   string
	maxAttempts int

	// sleep is time.Sleep in production; tests replace it to observe waits.
	sleep func(time.Duration)
}

// Options configures a Client.
type Options struct {
	BaseURL     string
	Community   string
	UserAgent   string
	Timeout     time.Duration
	MaxAttempts int
}

// NewClient creates a search client. The per-attempt timeout lives on the
// embedded http.Client; there is no cancellation across attempts beyond the
// caller's context.
func NewClient(opts Options) *Client {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 5
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	return &Client{
		httpClient:  &http.Client{Timeout: opts.Timeout},
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		community:   opts.Community,
		userAgent:   opts.UserAgent,
		maxAttempts: opts.MaxAttempts,
		sleep:       time.Sleep,
	}
}

// Query describes one search request.
type Query struct {
	Text       string
	Sort       string
	TimeFilter string
	Limit      int
}

// SearchPosts runs one search and maps every result record into a Post,
// classifying each title against topic. Records without an id are skipped.
func (c *Client) SearchPosts(ctx context.Context, q Query, topic string) ([]models.Post, error) {
	params := url.Values{}
	params.Set("q", q.Text)
	params.Set("restrict_sr", "1")
	params.Set("sort", q.Sort)
	params.Set("t", q.TimeFilter)
	params.Set("limit", strconv.Itoa(q.Limit))
	params.Set("raw_json", "1")

	searchURL := fmt.Sprintf("%s/r/%s/search.json", c.baseURL, c.community)

	logger.L().Info("searching community",
		zap.String("community", c.community),
		zap.String("query", q.Text),
		zap.Int("limit", q.Limit),
		zap.String("sort", q.Sort),
		zap.String("time_filter", q.TimeFilter),
	)

	var lst listing
	if err := c.getJSON(ctx, searchURL, params, &lst); err != nil {
		return nil, err
	}

	posts := make([]models.Post, 0, len(lst.Data.Children))
	for _, ch := range lst.Data.Children {
		d := ch.Data
		if d.ID == "" {
			continue
		}

		cls := classify.Classify(d.Title, topic)
		permalink := ""
		if d.Permalink != "" {
			permalink = c.baseURL + d.Permalink
		}

		posts = append(posts, models.NewPost(
			d.ID, d.Name, d.Title, permalink, d.URL, d.Author,
			int64(d.CreatedUTC), d.Score, d.NumComments,
			cls.EpisodeCode, cls.IsTrailer,
		))
	}

	logger.L().Info("search complete", zap.Int("posts", len(posts)))
	return posts, nil
}

// getJSON performs one GET with retry/backoff and decodes the JSON body.
// Each 429 or 5xx consumes one attempt; any other non-2xx fails
// immediately, as does a 2xx response without a JSON content type.
func (c *Client) getJSON(ctx context.Context, rawURL string, params url.Values, out any) error {
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL+"?"+params.Encode(), nil)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json,text/plain,*/*")
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		req.Header.Set("Cache-Control", "no-cache")
		req.Header.Set("Pragma", "no-cache")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("execute request: %w", err)
		}

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			wait := retryAfter(resp.Header.Get("Retry-After"), attempt)
			resp.Body.Close()
			logger.L().Warn("rate limited",
				zap.Duration("wait", wait),
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", c.maxAttempts),
			)
			metrics.RedditFetchRetries.Inc()
			c.sleep(wait)
			continue

		case resp.StatusCode >= 500 && resp.StatusCode < 600:
			wait := backoff(attempt)
			resp.Body.Close()
			logger.L().Warn("server error",
				zap.Int("status", resp.StatusCode),
				zap.Duration("wait", wait),
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", c.maxAttempts),
			)
			metrics.RedditFetchRetries.Inc()
			c.sleep(wait)
			continue

		case resp.StatusCode < 200 || resp.StatusCode >= 300:
			resp.Body.Close()
			return &StatusError{StatusCode: resp.StatusCode, URL: rawURL}
		}

		ct := strings.ToLower(resp.Header.Get("Content-Type"))
		if !strings.Contains(ct, "json") {
			resp.Body.Close()
			return &ProtocolError{ContentType: ct, URL: rawURL}
		}

		err = json.NewDecoder(resp.Body).Decode(out)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}

	return ErrRetryExhausted
}

// retryAfter honors a numeric Retry-After header, falling back to
// exponential backoff.
func retryAfter(header string, attempt int) time.Duration {
	if header != "" {
		if secs, err := strconv.Atoi(header); err == nil && secs >= 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return backoff(attempt)
}

// backoff returns min(60s, 2^attempt seconds).
func backoff(attempt int) time.Duration {
	d := time.Duration(1<<uint(attempt)) * time.Second
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}
