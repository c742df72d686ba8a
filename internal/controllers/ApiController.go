package controllers

import (
	"bytes"
	json "github.com/goccy/go-json"
	"github.com/spf13/cast"
	"goaltracker/internal/export"
	"goaltracker/internal/providers"
	"goaltracker/internal/services"
	"goaltracker/internal/structures"
	"net/http"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type ApiController struct {
	conf    *structures.Config
	logger  providers.Logger
	service services.TrackerServiceInterface
	cache   providers.CacheProviderInterface
	metrics providers.MetricsProviderInterface
	sharer  export.SharerInterface
}

type goalRequest struct {
	Goal string `json:"goal"`
}

type goalResponse struct {
	Added bool                  `json:"added"`
	View  *services.TrackerView `json:"view,omitempty"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Title   string `json:"title,omitempty"`
	Message string `json:"message,omitempty"`
}

type exportResponse struct {
	Path string `json:"path"`
}

func NewApiController(conf *structures.Config, logger providers.Logger, service services.TrackerServiceInterface, cache providers.CacheProviderInterface, metrics providers.MetricsProviderInterface, sharer export.SharerInterface) *ApiController {
	return &ApiController{
		conf:    conf,
		logger:  logger,
		service: service,
		cache:   cache,
		metrics: metrics,
		sharer:  sharer,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	gson, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

// serveFromCacheOrCompute answers from the cache entry for the current
// revision, rendering and storing it on a miss.
func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, kind string, compute func(view services.TrackerView) any) {
	if data, ok := ac.cache.Get(providers.RevisionKey(kind, ac.service.Revision())); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	view := ac.service.View()
	gson, err := json.Marshal(compute(view))
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(providers.RevisionKey(kind, view.Revision), gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func (ac *ApiController) GetState(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "state", func(view services.TrackerView) any {
		return view
	})
}

func (ac *ApiController) GetHistory(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "history", func(view services.TrackerView) any {
		return view.History
	})
}

func (ac *ApiController) AddGoal(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload goalRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if !ac.service.AddGoal(payload.Goal) {
		writeJSON(w, http.StatusOK, goalResponse{Added: false})
		return
	}
	view := ac.service.View()
	writeJSON(w, http.StatusCreated, goalResponse{Added: true, View: &view})
}

func (ac *ApiController) CheckGoals(w http.ResponseWriter, r *http.Request) {
	accepted := ac.service.CheckGoals()
	ac.metrics.IncCheckIns(accepted)
	if !accepted {
		writeJSON(w, http.StatusConflict, errorResponse{Error: services.MsgWaitBeforeNext})
		return
	}
	writeJSON(w, http.StatusOK, ac.service.View())
}

// Reset needs ?confirm=true, which stands in for the confirmation dialog.
func (ac *ApiController) Reset(w http.ResponseWriter, r *http.Request) {
	confirmed := cast.ToBool(r.URL.Query().Get("confirm"))
	confirmer := services.Declined
	if confirmed {
		confirmer = services.Confirmed
	}

	if !ac.service.Reset(confirmer) {
		writeJSON(w, http.StatusPreconditionRequired, errorResponse{
			Error:   "confirmation required",
			Title:   services.ResetTitle,
			Message: services.ResetMessage,
		})
		return
	}
	writeJSON(w, http.StatusOK, ac.service.View())
}

func (ac *ApiController) ExportHistory(w http.ResponseWriter, r *http.Request) {
	path, err := ac.service.ExportHistory(ac.sharer)
	ac.metrics.IncExports(err == nil)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: services.MsgExportFailed})
		return
	}
	writeJSON(w, http.StatusOK, exportResponse{Path: path})
}

func (ac *ApiController) DownloadHistory(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := ac.service.WriteHistory(&buf); err != nil {
		ac.logger.Errorf(providers.TypeGet, "Export download failed: %s", err)
		http.Error(w, services.MsgExportFailed, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", export.MimeType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+ac.conf.Export.FileName+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
