package services

import (
	"errors"
	"fmt"
	"goaltracker/internal/export"
	"goaltracker/internal/models"
	"goaltracker/internal/providers"
	"goaltracker/internal/storage"
	"goaltracker/internal/structures"
	"goaltracker/internal/timer"
	"io"
	"strings"
	"sync"
	"time"
)

type TrackerServiceInterface interface {
	Restore() error
	Persist() error
	AddGoal(text string) bool
	CheckGoals() bool
	Tick(elapsed time.Duration)
	Reset(confirmer Confirmer) bool
	ExportHistory(sharer export.SharerInterface) (string, error)
	WriteHistory(w io.Writer) error
	View() TrackerView
	Revision() uint64
	SetPresenter(p Presenter)
	Close()

	GoalCount() int
	ViewCount() int
	RemainingCooldown() time.Duration
	SinceLastSave() time.Duration
}

// ErrStateNotLoaded is returned by saves after a failed Restore, so an empty
// in-memory state never overwrites stored data it could not read.
var ErrStateNotLoaded = errors.New("tracker state was not loaded")

// TrackerService owns the tracker state. Every operation runs under opsMu, so
// commands and timer ticks are applied one at a time in arrival order.
type TrackerService struct {
	opsMu      sync.Mutex
	conf       *structures.Config
	logger     providers.Logger
	repository storage.RepositoryInterface
	exporter   export.ExporterInterface
	countdown  *timer.Countdown
	presenter  Presenter
	now        func() time.Time

	goals     []string
	history   []models.HistoryEntry
	viewCount int
	displayed []string
	revision  uint64
	finished  bool

	savedAt    time.Time
	loadFailed bool
}

func NewTrackerService(conf *structures.Config, logger providers.Logger, repository storage.RepositoryInterface, exporter export.ExporterInterface) TrackerServiceInterface {
	return newTrackerService(conf, logger, repository, exporter, time.Now)
}

func newTrackerService(conf *structures.Config, logger providers.Logger, repository storage.RepositoryInterface, exporter export.ExporterInterface, now func() time.Time) *TrackerService {
	s := &TrackerService{
		conf:       conf,
		logger:     logger,
		repository: repository,
		exporter:   exporter,
		presenter:  noopPresenter{},
		now:        now,
		goals:      make([]string, 0),
		history:    make([]models.HistoryEntry, 0),
	}
	s.countdown = timer.NewCountdown(s.onCountdownTick, s.onCountdownFinish)
	return s
}

func (s *TrackerService) SetPresenter(p Presenter) {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()
	if p == nil {
		p = noopPresenter{}
	}
	s.presenter = p
}

// Restore loads the persisted snapshot and resumes an interrupted cooldown
// from the saved remaining time. A store error leaves the current state in
// place and blocks saves until a later Restore succeeds.
func (s *TrackerService) Restore() error {
	s.opsMu.Lock()
	snapshot, err := s.repository.Load()
	if err != nil {
		s.loadFailed = true
		view, presenter := s.viewLocked(), s.presenter
		s.opsMu.Unlock()

		presenter.Render(view)
		s.logger.Errorf(providers.TypeTracker, "Restore error, saving disabled: %s", err)
		return err
	}

	s.loadFailed = false
	s.goals = snapshot.Goals
	s.history = snapshot.History
	s.viewCount = snapshot.ViewCount
	s.displayed = nil
	s.savedAt = time.Time{}
	if snapshot.SavedAtMillis > 0 {
		s.savedAt = time.UnixMilli(snapshot.SavedAtMillis)
	}
	s.countdown.Cancel()
	if snapshot.RemainingMillis > 0 {
		s.countdown.Start(time.Duration(snapshot.RemainingMillis) * time.Millisecond)
		s.logger.Infof(providers.TypeTracker, "Resuming cooldown with %s left", s.countdown.Remaining())
	}
	s.revision++
	view, presenter := s.viewLocked(), s.presenter
	s.opsMu.Unlock()

	presenter.Render(view)
	if snapshot.IsEmpty() {
		s.logger.Infof(providers.TypeTracker, "No saved state, starting fresh")
		return nil
	}
	s.logger.Infof(providers.TypeTracker, "Restored %d goals, %d history entries, view count %d", len(view.Goals), len(view.History), view.ViewCount)
	return nil
}

func (s *TrackerService) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()
	return s.saveLocked()
}

func (s *TrackerService) AddGoal(text string) bool {
	goal := strings.TrimSpace(text)
	if goal == "" {
		return false
	}

	s.opsMu.Lock()
	s.goals = append(s.goals, goal)
	s.revision++
	s.saveQuietlyLocked()
	view, presenter := s.viewLocked(), s.presenter
	s.opsMu.Unlock()

	s.logger.Debugf(providers.TypeTracker, "Goal added: %q", goal)
	presenter.Render(view)
	presenter.Notify(MsgGoalAdded)
	return true
}

// CheckGoals records a check-in and starts the cooldown. It is denied, without
// touching state, while a cooldown is running.
func (s *TrackerService) CheckGoals() bool {
	s.opsMu.Lock()
	if s.countdown.Running() {
		presenter := s.presenter
		s.opsMu.Unlock()
		presenter.Notify(MsgWaitBeforeNext)
		return false
	}

	s.viewCount++
	s.history = append(s.history, models.HistoryEntry{
		Timestamp: s.now().Format(s.conf.Tracker.TimestampLayout),
		Count:     s.viewCount,
	})
	s.displayed = make([]string, len(s.goals))
	copy(s.displayed, s.goals)
	s.countdown.Start(s.conf.Tracker.Cooldown)
	s.revision++
	s.saveQuietlyLocked()
	view, presenter := s.viewLocked(), s.presenter
	s.opsMu.Unlock()

	s.logger.Infof(providers.TypeTracker, "Check-in #%d, cooldown %s", view.ViewCount, s.conf.Tracker.Cooldown)
	presenter.Render(view)
	return true
}

func (s *TrackerService) Tick(elapsed time.Duration) {
	s.opsMu.Lock()
	if !s.countdown.Running() {
		s.opsMu.Unlock()
		return
	}
	s.countdown.Tick(elapsed)
	s.revision++
	finished := s.finished
	s.finished = false
	view, presenter := s.viewLocked(), s.presenter
	s.opsMu.Unlock()

	if finished {
		s.logger.Infof(providers.TypeTracker, "Cooldown finished, ready to check goals")
	}
	presenter.Render(view)
}

// onCountdownTick and onCountdownFinish run inside Countdown.Tick, with opsMu
// already held.
func (s *TrackerService) onCountdownTick(remaining time.Duration) {
	if remaining%time.Minute == 0 {
		s.logger.Debugf(providers.TypeTracker, "Cooldown: %s left", remaining)
	}
}

func (s *TrackerService) onCountdownFinish() {
	s.finished = true
	s.saveQuietlyLocked()
}

// Reset asks confirmer first; nothing changes unless it agrees.
func (s *TrackerService) Reset(confirmer Confirmer) bool {
	if confirmer == nil || !confirmer.Confirm(ResetTitle, ResetMessage) {
		return false
	}

	s.opsMu.Lock()
	s.goals = make([]string, 0)
	s.history = make([]models.HistoryEntry, 0)
	s.viewCount = 0
	s.displayed = nil
	s.countdown.Cancel()
	s.revision++
	s.saveQuietlyLocked()
	view, presenter := s.viewLocked(), s.presenter
	s.opsMu.Unlock()

	s.logger.Infof(providers.TypeTracker, "Goals and history reset")
	presenter.Render(view)
	presenter.Notify(MsgGoalsReset)
	return true
}

func (s *TrackerService) ExportHistory(sharer export.SharerInterface) (string, error) {
	s.opsMu.Lock()
	history := s.historyCopyLocked()
	presenter := s.presenter
	s.opsMu.Unlock()

	path, err := s.exporter.Export(history, sharer)
	if err != nil {
		s.logger.Errorf(providers.TypeTracker, "Export failed: %s", err)
		presenter.Notify(MsgExportFailed)
		return "", err
	}
	return path, nil
}

func (s *TrackerService) WriteHistory(w io.Writer) error {
	s.opsMu.Lock()
	history := s.historyCopyLocked()
	s.opsMu.Unlock()
	return s.exporter.WriteTo(w, history)
}

func (s *TrackerService) View() TrackerView {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()
	return s.viewLocked()
}

func (s *TrackerService) Revision() uint64 {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()
	return s.revision
}

// Close cancels the countdown so no further ticks take effect.
func (s *TrackerService) Close() {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()
	s.countdown.Cancel()
}

func (s *TrackerService) GoalCount() int {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()
	return len(s.goals)
}

func (s *TrackerService) ViewCount() int {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()
	return s.viewCount
}

func (s *TrackerService) RemainingCooldown() time.Duration {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()
	return s.countdown.Remaining()
}

// SinceLastSave is the wall-clock time since the state was last saved or, right
// after Restore, since the restored snapshot was saved. Zero when unknown.
func (s *TrackerService) SinceLastSave() time.Duration {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()
	if s.savedAt.IsZero() {
		return 0
	}
	return max(s.now().Sub(s.savedAt), 0)
}

func (s *TrackerService) snapshotLocked() *models.Snapshot {
	return (&models.Snapshot{
		Goals:           s.goals,
		History:         s.history,
		ViewCount:       s.viewCount,
		RemainingMillis: s.countdown.Remaining().Milliseconds(),
	}).Clone()
}

func (s *TrackerService) saveLocked() error {
	if s.loadFailed {
		return fmt.Errorf("save tracker state: %w", ErrStateNotLoaded)
	}
	now := s.now()
	snapshot := s.snapshotLocked()
	snapshot.SavedAtMillis = now.UnixMilli()
	if err := s.repository.Save(snapshot); err != nil {
		return fmt.Errorf("save tracker state: %w", err)
	}
	s.savedAt = now
	return nil
}

// saveQuietlyLocked is the best-effort save used after user actions: a failed
// write is logged and the in-memory state stays authoritative.
func (s *TrackerService) saveQuietlyLocked() {
	if err := s.saveLocked(); err != nil {
		s.logger.Errorf(providers.TypeTracker, "%s", err)
	}
}

func (s *TrackerService) historyCopyLocked() []models.HistoryEntry {
	out := make([]models.HistoryEntry, len(s.history))
	copy(out, s.history)
	return out
}

func (s *TrackerService) viewLocked() TrackerView {
	snap := s.snapshotLocked()
	view := TrackerView{
		Goals:           snap.Goals,
		ViewCount:       s.viewCount,
		CounterText:     fmt.Sprintf("Total Goal Views: %d", s.viewCount),
		TimerRunning:    s.countdown.Running(),
		RemainingMillis: snap.RemainingMillis,
		CountdownText:   s.countdown.Text(),
		CanCheck:        !s.countdown.Running(),
		History:         snap.History,
		Revision:        s.revision,
	}
	if s.displayed != nil {
		view.DisplayedGoals = make([]string, len(s.displayed))
		copy(view.DisplayedGoals, s.displayed)
		if len(s.displayed) == 0 {
			view.Placeholder = NoGoalsText
		}
	}
	return view
}
