package models

// Snapshot is the persisted tracker state. All fields are saved together;
// SavedAtMillis is the wall-clock time of the save, zero when unknown.
type Snapshot struct {
	Goals           []string       `json:"goals"`
	History         []HistoryEntry `json:"history"`
	ViewCount       int            `json:"view_count"`
	RemainingMillis int64          `json:"remaining_millis"`
	SavedAtMillis   int64          `json:"saved_at_millis"`
}

func NewSnapshot() *Snapshot {
	return &Snapshot{
		Goals:   make([]string, 0),
		History: make([]HistoryEntry, 0),
	}
}

// Clone returns a deep copy so callers can't alias the tracker's slices.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		Goals:           make([]string, len(s.Goals)),
		History:         make([]HistoryEntry, len(s.History)),
		ViewCount:       s.ViewCount,
		RemainingMillis: s.RemainingMillis,
		SavedAtMillis:   s.SavedAtMillis,
	}
	copy(out.Goals, s.Goals)
	copy(out.History, s.History)
	return out
}

// IsEmpty reports whether there is nothing to restore. SavedAtMillis is ignored.
func (s *Snapshot) IsEmpty() bool {
	return len(s.Goals) == 0 && len(s.History) == 0 && s.ViewCount == 0 && s.RemainingMillis == 0
}
