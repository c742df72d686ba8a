package controllers

import (
	"fmt"
	json "github.com/goccy/go-json"
	"goaltracker/internal/services"
	"net/http"
	"time"
)

type HealthController struct {
	service   services.TrackerServiceInterface
	startTime time.Time
}

type healthResponse struct {
	Status           string  `json:"status"`
	Uptime           string  `json:"uptime"`
	UptimeSeconds    float64 `json:"uptime_seconds"`
	Goals            int     `json:"goals"`
	ViewCount        int     `json:"view_count"`
	TimerRunning     bool    `json:"timer_running"`
	RemainingSeconds float64 `json:"remaining_seconds"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	remaining := hc.service.RemainingCooldown()
	resp := healthResponse{
		Status:           "ok",
		Uptime:           formatDuration(uptime),
		UptimeSeconds:    uptime.Seconds(),
		Goals:            hc.service.GoalCount(),
		ViewCount:        hc.service.ViewCount(),
		TimerRunning:     remaining > 0,
		RemainingSeconds: remaining.Seconds(),
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(service services.TrackerServiceInterface) *HealthController {
	return &HealthController{
		service:   service,
		startTime: time.Now(),
	}
}
