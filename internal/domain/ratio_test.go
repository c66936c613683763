package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRatio(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"16:9", 16.0 / 9.0, true},
		{"2:1", 2, true},
		{"1.5:1", 1.5, true},
		{" 4 : 3 ", 4.0 / 3.0, true},
		{"1:0", 0, false},
		{"0:1", 0, false},
		{"-1:1", 0, false},
		{"16x9", 0, false},
		{"16:9:1", 0, false},
		{":9", 0, false},
		{"a:b", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseRatio(tt.in)

			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestLinkRecord_MatchesRatio(t *testing.T) {
	wide := LinkRecord{URL: "https://a/1.png", Width: 100, Height: 50, Ratio: 2}
	almost := LinkRecord{URL: "https://a/2.png", Width: 104, Height: 50, Ratio: 2.08}
	unknown := LinkRecord{URL: "https://a/3.png", Ratio: 2}

	assert.True(t, wide.MatchesRatio(2))
	assert.True(t, wide.MatchesRatio(2.04))
	assert.False(t, almost.MatchesRatio(2))
	assert.False(t, unknown.MatchesRatio(2), "records without dimensions never match")
}
