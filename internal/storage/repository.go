package storage

import (
	"fmt"
	json "github.com/goccy/go-json"
	"github.com/spf13/cast"
	"goaltracker/internal/models"
	"goaltracker/internal/providers"
	"goaltracker/internal/storage/interfaces"
	"strconv"
)

const (
	GoalsKey        = "goals"
	ViewCountKey    = "viewCount"
	TimerKey        = "timerRemaining"
	CheckHistoryKey = "checkHistory"
	SavedAtKey      = "savedAt"
)

type RepositoryInterface interface {
	Load() (*models.Snapshot, error)
	Save(snapshot *models.Snapshot) error
}

// Repository maps a tracker snapshot onto preference keys. savedAt is optional
// so data written before it existed still loads.
type Repository struct {
	store  interfaces.PreferenceStoreInterface
	logger providers.Logger
}

func NewRepository(store interfaces.PreferenceStoreInterface, logger providers.Logger) RepositoryInterface {
	return &Repository{store: store, logger: logger}
}

// Load never fails on bad data: unreadable keys fall back to empty/zero.
// Only store errors are returned, together with an empty snapshot.
func (r *Repository) Load() (*models.Snapshot, error) {
	snapshot := models.NewSnapshot()

	raw, err := r.read(GoalsKey, CheckHistoryKey, ViewCountKey, TimerKey, SavedAtKey)
	if err != nil {
		return snapshot, err
	}

	if v, ok := raw[GoalsKey]; ok {
		var goals []string
		if err := json.Unmarshal([]byte(v), &goals); err != nil {
			r.logger.Warnf(providers.TypeTracker, "Ignoring malformed %s: %s", GoalsKey, err)
		} else if goals != nil {
			snapshot.Goals = goals
		}
	}

	if v, ok := raw[CheckHistoryKey]; ok {
		var entries []string
		if err := json.Unmarshal([]byte(v), &entries); err != nil {
			r.logger.Warnf(providers.TypeTracker, "Ignoring malformed %s: %s", CheckHistoryKey, err)
		}
		for _, e := range entries {
			entry, err := models.ParseHistoryEntry(e)
			if err != nil {
				r.logger.Warnf(providers.TypeTracker, "Skipping history entry: %s", err)
				continue
			}
			snapshot.History = append(snapshot.History, entry)
		}
	}

	if v, ok := raw[ViewCountKey]; ok {
		count, err := cast.ToIntE(v)
		if err != nil || count < 0 {
			r.logger.Warnf(providers.TypeTracker, "Ignoring malformed %s %q", ViewCountKey, v)
		} else {
			snapshot.ViewCount = count
		}
	}

	if v, ok := raw[TimerKey]; ok {
		millis, err := cast.ToInt64E(v)
		if err != nil || millis < 0 {
			r.logger.Warnf(providers.TypeTracker, "Ignoring malformed %s %q", TimerKey, v)
		} else {
			snapshot.RemainingMillis = millis
		}
	}

	if v, ok := raw[SavedAtKey]; ok {
		millis, err := cast.ToInt64E(v)
		if err != nil || millis < 0 {
			r.logger.Warnf(providers.TypeTracker, "Ignoring malformed %s %q", SavedAtKey, v)
		} else {
			snapshot.SavedAtMillis = millis
		}
	}

	return snapshot, nil
}

func (r *Repository) read(keys ...string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		v, ok, err := r.store.Get(k)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", k, err)
		}
		if ok {
			out[k] = v
		}
	}
	return out, nil
}

func (r *Repository) Save(snapshot *models.Snapshot) error {
	goals := snapshot.Goals
	if goals == nil {
		goals = []string{}
	}
	jsonGoals, err := json.Marshal(goals)
	if err != nil {
		return err
	}

	entries := make([]string, 0, len(snapshot.History))
	for _, h := range snapshot.History {
		entries = append(entries, h.String())
	}
	jsonHistory, err := json.Marshal(entries)
	if err != nil {
		return err
	}

	return r.store.Commit(map[string]string{
		GoalsKey:        string(jsonGoals),
		CheckHistoryKey: string(jsonHistory),
		ViewCountKey:    strconv.Itoa(snapshot.ViewCount),
		TimerKey:        strconv.FormatInt(snapshot.RemainingMillis, 10),
		SavedAtKey:      strconv.FormatInt(snapshot.SavedAtMillis, 10),
	})
}
