package services

import "goaltracker/internal/providers"

// LogPresenter is used when no screen is attached: notifications go to the
// tracker log and renders are dropped.
type LogPresenter struct {
	logger providers.Logger
}

func NewLogPresenter(logger providers.Logger) *LogPresenter {
	return &LogPresenter{logger: logger}
}

func (p *LogPresenter) Render(TrackerView) {}

func (p *LogPresenter) Notify(message string) {
	p.logger.Infof(providers.TypeTracker, "Notification: %s", message)
}
