package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSort(t *testing.T) {
	tests := []struct {
		sortBy    string
		sortOrder string
		column    string
		direction string
	}{
		{"name", "asc", "name", "asc"},
		{"rating", "desc", "rating", "desc"},
		{"created_at", "", "created_at", "asc"},
		{"", "", "sequence_order", "asc"},
		{"hashed_password", "asc", "sequence_order", "asc"},
		{"name; DROP TABLE games", "desc", "sequence_order", "desc"},
		{"weight", "sideways", "weight", "asc"},
	}

	for _, tt := range tests {
		column, direction := normalizeSort(tt.sortBy, tt.sortOrder)
		assert.Equal(t, tt.column, column, "sortBy=%q", tt.sortBy)
		assert.Equal(t, tt.direction, direction, "sortOrder=%q", tt.sortOrder)
	}
}

func TestOrderClauseNullPlacement(t *testing.T) {
	// Ascending reads push missing values to the end, descending reads
	// pull them to the front.
	assert.Equal(t, "(rating IS NULL) ASC, rating ASC", orderClause("rating", "asc"))
	assert.Equal(t, "(rating IS NULL) DESC, rating DESC", orderClause("rating", "desc"))
}
