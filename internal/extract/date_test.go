package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDateFormats(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"slash full year", "Date: 15/09/2025", "15/09/2025"},
		{"dash full year", "billed 3-12-2024 thanks", "3-12-2024"},
		{"two digit year", "on 5/9/25 at noon", "5/9/25"},
		{"month name", "Issued 02 Sep 2025", "02 Sep 2025"},
		{"iso order", "timestamp 2025-09-15 10:00", "2025-09-15"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractDate(tt.text)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestExtractDatePatternPriority(t *testing.T) {
	// The ISO form appears first in the text, but the day-first pattern has
	// higher priority.
	got := extractDate("created 2024-01-31, invoiced 15/09/2025")
	require.NotNil(t, got)
	assert.Equal(t, "15/09/2025", *got)
}

func TestExtractDateLabeledFallback(t *testing.T) {
	// Digits glued to the label defeat the boundary patterns; the label rescue
	// still finds the date.
	got := extractDate("Date15/09/2025")
	require.NotNil(t, got)
	assert.Equal(t, "15/09/2025", *got)
}

func TestExtractDateNone(t *testing.T) {
	assert.Nil(t, extractDate("no date here"))
	assert.Nil(t, extractDate(""))
	assert.Nil(t, extractDate("version 1.2.3"))
}
