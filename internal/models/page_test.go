package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPageInfo(t *testing.T) {
	tests := []struct {
		name        string
		total       int
		limit       int
		skip        int
		wantHasMore bool
	}{
		{"records behind the page", 25, 10, 0, true},
		{"exactly one page", 10, 10, 0, false},
		{"last page", 25, 10, 20, false},
		{"one record behind", 21, 10, 10, true},
		{"empty", 0, 10, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := NewPageInfo(tt.total, tt.limit, tt.skip)
			assert.Equal(t, tt.total, info.Total)
			assert.Equal(t, tt.limit, info.Limit)
			assert.Equal(t, tt.skip, info.Skip)
			assert.Equal(t, tt.wantHasMore, info.HasMore)
		})
	}
}
