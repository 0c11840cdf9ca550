package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEpisodeCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "lowercase x separator",
			title: "Heated Rivalry 1x01 discussion thread",
			want:  "1x01",
		},
		{
			name:  "uppercase X with spaces",
			title: "Heated Rivalry 2 X 3 live thread",
			want:  "2x03",
		},
		{
			name:  "single digit episode is zero padded",
			title: "thoughts on 3x7?",
			want:  "3x07",
		},
		{
			name:  "SxxExx form",
			title: "Heated Rivalry S01E04 post-episode discussion",
			want:  "1x04",
		},
		{
			name:  "lowercase s and e",
			title: "just finished s2e11",
			want:  "2x11",
		},
		{
			name:  "NxM wins over SxE when both present",
			title: "1x02 aka S01E02 discussion",
			want:  "1x02",
		},
		{
			name:  "two digit season",
			title: "10x3 was wild",
			want:  "10x03",
		},
		{
			name:  "three digit number is not an episode token",
			title: "watched 100x200 times",
			want:  "",
		},
		{
			name:  "no token",
			title: "Heated Rivalry renewed for season 2!",
			want:  "",
		},
		{
			name:  "empty title",
			title: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, EpisodeCode(tt.title))
		})
	}
}

func TestIsOfficialTrailer(t *testing.T) {
	t.Parallel()

	const topic = "Heated Rivalry"

	tests := []struct {
		name  string
		title string
		want  bool
	}{
		{
			name:  "all three keywords present",
			title: "Heated Rivalry | Official Trailer | HBO",
			want:  true,
		},
		{
			name:  "case insensitive",
			title: "HEATED RIVALRY official trailer",
			want:  true,
		},
		{
			name:  "missing official",
			title: "Heated Rivalry teaser trailer",
			want:  false,
		},
		{
			name:  "missing trailer",
			title: "Heated Rivalry official poster",
			want:  false,
		},
		{
			name:  "missing topic phrase",
			title: "Official Trailer for some other show",
			want:  false,
		},
		{
			name:  "em dash breaks the topic phrase",
			title: "Heated — Rivalry Official Trailer",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsOfficialTrailer(tt.title, topic))
		})
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	got := Classify("Heated Rivalry 1x02 Official Trailer", "Heated Rivalry")
	assert.Equal(t, "1x02", got.EpisodeCode)
	assert.True(t, got.IsTrailer)

	got = Classify("random post", "Heated Rivalry")
	assert.Empty(t, got.EpisodeCode)
	assert.False(t, got.IsTrailer)
}
