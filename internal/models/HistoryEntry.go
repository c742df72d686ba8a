package models

import (
	"fmt"
	"strconv"
	"strings"
)

const HistorySeparator = "|"

// HistoryEntry is a single check-in: when it happened and the view count it produced.
type HistoryEntry struct {
	Timestamp string `json:"timestamp"`
	Count     int    `json:"count"`
}

func (h HistoryEntry) String() string {
	return h.Timestamp + HistorySeparator + strconv.Itoa(h.Count)
}

// ParseHistoryEntry splits on the last separator so timestamps may contain '|'.
func ParseHistoryEntry(raw string) (HistoryEntry, error) {
	idx := strings.LastIndex(raw, HistorySeparator)
	if idx <= 0 || idx == len(raw)-1 {
		return HistoryEntry{}, fmt.Errorf("malformed history entry %q", raw)
	}
	count, err := strconv.Atoi(raw[idx+1:])
	if err != nil || count < 0 {
		return HistoryEntry{}, fmt.Errorf("malformed history count in %q", raw)
	}
	return HistoryEntry{Timestamp: raw[:idx], Count: count}, nil
}
