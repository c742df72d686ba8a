package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSnapshot_Empty(t *testing.T) {
	s := NewSnapshot()
	assert.NotNil(t, s.Goals)
	assert.NotNil(t, s.History)
	assert.True(t, s.IsEmpty())
}

func TestSnapshot_CloneIsDeep(t *testing.T) {
	s := &Snapshot{
		Goals:           []string{"Run 5k"},
		History:         []HistoryEntry{{Timestamp: "t", Count: 1}},
		ViewCount:       1,
		RemainingMillis: 500,
	}
	c := s.Clone()
	c.Goals[0] = "changed"
	c.History[0].Count = 99

	assert.Equal(t, "Run 5k", s.Goals[0])
	assert.Equal(t, 1, s.History[0].Count)
	assert.Equal(t, 1, c.ViewCount)
	assert.Equal(t, int64(500), c.RemainingMillis)
	assert.False(t, s.IsEmpty())
}
