package internal

import (
	"goaltracker/internal/controllers"
	"goaltracker/internal/export"
	"goaltracker/internal/providers"
	"goaltracker/internal/scheduler"
	"goaltracker/internal/services"
	"goaltracker/internal/storage"
	"goaltracker/internal/structures"
	"goaltracker/internal/testutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type appFixture struct {
	app     *App
	conf    *structures.Config
	service services.TrackerServiceInterface
	store   *testutil.MockPreferenceStore
	logger  *testutil.MockLogger
}

func testConfig(t *testing.T) *structures.Config {
	return &structures.Config{
		AppName: "GoalTracker",
		Tracker: structures.TrackerConfig{
			Cooldown:        10 * time.Minute,
			TickInterval:    time.Second,
			TimestampLayout: "02/01/2006 03:04 PM",
		},
		Export:    structures.ExportConfig{Dir: t.TempDir(), FileName: "goal_check_history.csv"},
		WebServer: structures.Server{Host: "127.0.0.1", Port: 0},
	}
}

func newAppFixture(t *testing.T, store *testutil.MockPreferenceStore) *appFixture {
	t.Helper()
	conf := testConfig(t)
	logger := &testutil.MockLogger{}
	metrics := &testutil.MockMetrics{}
	repo := storage.NewRepository(store, logger)
	svc := services.NewTrackerService(conf, logger, repo, export.NewExporter(conf, logger))
	cache := providers.NewCacheProvider(conf, logger)
	api := controllers.NewApiController(conf, logger, svc, cache, metrics, &testutil.MockSharer{})
	sched := scheduler.NewScheduler(conf, logger, svc, metrics)
	app := NewApp(controllers.NewHealthController(svc), sched, svc, conf, logger, InitRoutes(api), metrics)
	return &appFixture{app: app, conf: conf, service: svc, store: store, logger: logger}
}

func TestInitRoutes_RegistersEndpoints(t *testing.T) {
	f := newAppFixture(t, testutil.NewMockPreferenceStore())
	srv := httptest.NewServer(f.app.WebServer.Handler)
	defer srv.Close()

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/state", "", http.StatusOK},
		{http.MethodGet, "/history", "", http.StatusOK},
		{http.MethodPost, "/goals", `{"goal":"Run 5k"}`, http.StatusCreated},
		{http.MethodPost, "/check", "", http.StatusOK},
		{http.MethodPost, "/check", "", http.StatusConflict},
		{http.MethodPost, "/export", "", http.StatusOK},
		{http.MethodGet, "/export", "", http.StatusOK},
		{http.MethodPost, "/reset", "", http.StatusPreconditionRequired},
		{http.MethodPost, "/reset?confirm=true", "", http.StatusOK},
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/goals", "", http.StatusMethodNotAllowed},
		{http.MethodDelete, "/export", "", http.StatusMethodNotAllowed},
		{http.MethodGet, "/nope", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		req, err := http.NewRequest(tt.method, srv.URL+tt.path, strings.NewReader(tt.body))
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, tt.want, resp.StatusCode, "%s %s", tt.method, tt.path)
		assert.NotEmpty(t, resp.Header.Get(providers.RequestIDHeader), "%s %s", tt.method, tt.path)
	}
}

func TestInitRoutes_RouteCount(t *testing.T) {
	conf := testConfig(t)
	logger := &testutil.MockLogger{}
	repo := storage.NewRepository(testutil.NewMockPreferenceStore(), logger)
	svc := services.NewTrackerService(conf, logger, repo, export.NewExporter(conf, logger))
	api := controllers.NewApiController(conf, logger, svc, providers.NewCacheProvider(conf, logger), &testutil.MockMetrics{}, &testutil.MockSharer{})

	routes := InitRoutes(api).GetRoutes()
	urls := make([]string, 0, len(routes))
	for _, r := range routes {
		urls = append(urls, r.Url)
	}
	assert.Equal(t, []string{"/state", "/history", "/goals", "/check", "/reset", "/export"}, urls)
}
