package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/jjf3/heated-rivalry-tracker/internal/series"
)

const (
	chartAxisFormat = "2006-01-02 15:04"
	maxTitleLabel   = 40
)

// WriteEpisodeChart renders the comment growth chart for episode threads.
// Series are labeled by episode code.
func (w *Writer) WriteEpisodeChart(episodes []*series.Group) error {
	return w.writeChart(EpisodeChartFile, "Episode discussion comment growth", episodes, episodeLabel)
}

// WriteOtherChart renders the comment growth chart for everything else,
// labeled by truncated post title.
func (w *Writer) WriteOtherChart(others []*series.Group) error {
	return w.writeChart(OtherChartFile, "Non-episode post comment growth", others, titleLabel)
}

func (w *Writer) writeChart(name, title string, groups []*series.Group, label func(*series.Group) string) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     "1100px",
			Height:    "550px",
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Type: "scroll", Bottom: "0"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "snapshot (UTC)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "comments"}),
	)

	axis := sharedAxis(groups)
	labels := make([]string, len(axis))
	for i, at := range axis {
		labels[i] = at.Format(chartAxisFormat)
	}
	line.SetXAxis(labels)

	for _, g := range groups {
		line.AddSeries(label(g), alignPoints(g, axis),
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}),
		)
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	f, err := os.Create(filepath.Join(w.dir, name))
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer f.Close()

	if err := line.Render(f); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}

// sharedAxis collects the distinct snapshot times across all groups, sorted
// ascending. Every series is plotted against this one axis.
func sharedAxis(groups []*series.Group) []time.Time {
	seen := make(map[time.Time]struct{})
	for _, g := range groups {
		for _, p := range g.Points {
			seen[p.At.UTC()] = struct{}{}
		}
	}

	axis := make([]time.Time, 0, len(seen))
	for at := range seen {
		axis = append(axis, at)
	}
	sort.Slice(axis, func(i, j int) bool { return axis[i].Before(axis[j]) })
	return axis
}

// alignPoints places a group's observations onto the shared axis. Snapshots
// where the post was not observed become gaps rather than zeros.
func alignPoints(g *series.Group, axis []time.Time) []opts.LineData {
	byTime := make(map[time.Time]int, len(g.Points))
	for _, p := range g.Points {
		byTime[p.At.UTC()] = p.NumComments
	}

	data := make([]opts.LineData, len(axis))
	for i, at := range axis {
		if v, ok := byTime[at]; ok {
			data[i] = opts.LineData{Value: v}
		} else {
			data[i] = opts.LineData{Value: nil}
		}
	}
	return data
}

func episodeLabel(g *series.Group) string {
	if g.EpisodeCode != "" {
		return g.EpisodeCode
	}
	return g.PostName
}

func titleLabel(g *series.Group) string {
	runes := []rune(g.Title)
	if len(runes) <= maxTitleLabel {
		return g.Title
	}
	return string(runes[:maxTitleLabel]) + "…"
}
