package services

import "goaltracker/internal/models"

const (
	MsgGoalAdded      = "Goal Added"
	MsgWaitBeforeNext = "Please wait before checking goals again"
	MsgGoalsReset     = "Goals Reset"
	MsgExportFailed   = "Error exporting CSV"
	NoGoalsText       = "No goals added yet!"
	ResetTitle        = "Reset Goals"
	ResetMessage      = "Are you sure you want to reset all goals and history?"
)

// TrackerView is everything a presentation layer needs to draw the screen.
type TrackerView struct {
	Goals           []string              `json:"goals"`
	DisplayedGoals  []string              `json:"displayed_goals"`
	Placeholder     string                `json:"placeholder,omitempty"`
	ViewCount       int                   `json:"view_count"`
	CounterText     string                `json:"counter_text"`
	TimerRunning    bool                  `json:"timer_running"`
	RemainingMillis int64                 `json:"remaining_millis"`
	CountdownText   string                `json:"countdown_text"`
	CanCheck        bool                  `json:"can_check"`
	History         []models.HistoryEntry `json:"history"`
	Revision        uint64                `json:"revision"`
}

type Presenter interface {
	Render(view TrackerView)
	Notify(message string)
}

type Confirmer interface {
	Confirm(title, message string) bool
}

// ConfirmFunc adapts a plain function to Confirmer.
type ConfirmFunc func(title, message string) bool

func (f ConfirmFunc) Confirm(title, message string) bool { return f(title, message) }

var (
	Confirmed = ConfirmFunc(func(string, string) bool { return true })
	Declined  = ConfirmFunc(func(string, string) bool { return false })
)

type noopPresenter struct{}

func (noopPresenter) Render(TrackerView) {}
func (noopPresenter) Notify(string)      {}
