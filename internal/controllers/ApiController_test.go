package controllers

import (
	"encoding/json"
	"errors"
	"goaltracker/internal/export"
	"goaltracker/internal/providers"
	"goaltracker/internal/services"
	"goaltracker/internal/storage"
	"goaltracker/internal/structures"
	"goaltracker/internal/testutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCache struct {
	data map[string][]byte
}

func newMockCache() *mockCache                     { return &mockCache{data: make(map[string][]byte)} }
func (m *mockCache) Get(key string) ([]byte, bool) { v, ok := m.data[key]; return v, ok }
func (m *mockCache) Set(key string, value []byte)  { m.data[key] = value }

type testDeps struct {
	conf    *structures.Config
	service services.TrackerServiceInterface
	store   *testutil.MockPreferenceStore
	cache   *mockCache
	metrics *testutil.MockMetrics
	sharer  *testutil.MockSharer
}

func testConfig(exportDir string) *structures.Config {
	return &structures.Config{
		Tracker: structures.TrackerConfig{
			Cooldown:        10 * time.Minute,
			TickInterval:    time.Second,
			TimestampLayout: "02/01/2006 03:04 PM",
		},
		Export: structures.ExportConfig{Dir: exportDir, FileName: "goal_check_history.csv"},
	}
}

func newTestController(t *testing.T) (*ApiController, *testDeps) {
	t.Helper()
	return newTestControllerWithConfig(testConfig(t.TempDir()))
}

func newTestControllerWithConfig(conf *structures.Config) (*ApiController, *testDeps) {
	logger := &testutil.MockLogger{}
	store := testutil.NewMockPreferenceStore()
	repo := storage.NewRepository(store, logger)
	svc := services.NewTrackerService(conf, logger, repo, export.NewExporter(conf, logger))
	deps := &testDeps{
		conf:    conf,
		service: svc,
		store:   store,
		cache:   newMockCache(),
		metrics: &testutil.MockMetrics{},
		sharer:  &testutil.MockSharer{},
	}
	return NewApiController(conf, logger, svc, deps.cache, deps.metrics, deps.sharer), deps
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

// --- AddGoal ---

func TestAddGoal_Created(t *testing.T) {
	ac, deps := newTestController(t)

	req := httptest.NewRequest(http.MethodPost, "/goals", strings.NewReader(`{"goal":"  Run 5k "}`))
	rr := httptest.NewRecorder()
	ac.AddGoal(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	resp := decode[goalResponse](t, rr)
	assert.True(t, resp.Added)
	require.NotNil(t, resp.View)
	assert.Equal(t, []string{"Run 5k"}, resp.View.Goals)
	assert.Equal(t, `["Run 5k"]`, deps.store.Value("goals"))
}

func TestAddGoal_WhitespaceNotAdded(t *testing.T) {
	ac, deps := newTestController(t)

	req := httptest.NewRequest(http.MethodPost, "/goals", strings.NewReader(`{"goal":"   "}`))
	rr := httptest.NewRecorder()
	ac.AddGoal(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	resp := decode[goalResponse](t, rr)
	assert.False(t, resp.Added)
	assert.Nil(t, resp.View)
	assert.Equal(t, 0, deps.store.Commits)
}

func TestAddGoal_InvalidJSON(t *testing.T) {
	ac, _ := newTestController(t)

	req := httptest.NewRequest(http.MethodPost, "/goals", strings.NewReader("not json"))
	rr := httptest.NewRecorder()
	ac.AddGoal(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAddGoal_OversizedBody(t *testing.T) {
	ac, _ := newTestController(t)

	body := `{"goal":"` + strings.Repeat("x", maxRequestBodySize) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/goals", strings.NewReader(body))
	rr := httptest.NewRecorder()
	ac.AddGoal(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// --- CheckGoals ---

func TestCheckGoals_AcceptedThenConflict(t *testing.T) {
	ac, deps := newTestController(t)
	deps.service.AddGoal("Read")

	rr := httptest.NewRecorder()
	ac.CheckGoals(rr, httptest.NewRequest(http.MethodPost, "/check", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	view := decode[services.TrackerView](t, rr)
	assert.Equal(t, 1, view.ViewCount)
	assert.Equal(t, []string{"Read"}, view.DisplayedGoals)
	assert.False(t, view.CanCheck)

	rr = httptest.NewRecorder()
	ac.CheckGoals(rr, httptest.NewRequest(http.MethodPost, "/check", nil))
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, services.MsgWaitBeforeNext, decode[errorResponse](t, rr).Error)

	assert.Equal(t, 1, deps.service.ViewCount())
	assert.Equal(t, 1, deps.metrics.CheckIns[true])
	assert.Equal(t, 1, deps.metrics.CheckIns[false])
}

// --- Reset ---

func TestReset_RequiresConfirmation(t *testing.T) {
	ac, deps := newTestController(t)
	deps.service.AddGoal("Read")

	rr := httptest.NewRecorder()
	ac.Reset(rr, httptest.NewRequest(http.MethodPost, "/reset", nil))

	assert.Equal(t, http.StatusPreconditionRequired, rr.Code)
	resp := decode[errorResponse](t, rr)
	assert.Equal(t, services.ResetTitle, resp.Title)
	assert.Equal(t, services.ResetMessage, resp.Message)
	assert.Equal(t, 1, deps.service.GoalCount())
}

func TestReset_Confirmed(t *testing.T) {
	ac, deps := newTestController(t)
	deps.service.AddGoal("Read")
	deps.service.CheckGoals()

	rr := httptest.NewRecorder()
	ac.Reset(rr, httptest.NewRequest(http.MethodPost, "/reset?confirm=true", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	view := decode[services.TrackerView](t, rr)
	assert.Empty(t, view.Goals)
	assert.Empty(t, view.History)
	assert.Equal(t, 0, view.ViewCount)
	assert.True(t, view.CanCheck)
}

func TestReset_ConfirmValues(t *testing.T) {
	for query, want := range map[string]int{
		"confirm=1":     http.StatusOK,
		"confirm=false": http.StatusPreconditionRequired,
		"confirm=maybe": http.StatusPreconditionRequired,
	} {
		t.Run(query, func(t *testing.T) {
			ac, _ := newTestController(t)
			rr := httptest.NewRecorder()
			ac.Reset(rr, httptest.NewRequest(http.MethodPost, "/reset?"+query, nil))
			assert.Equal(t, want, rr.Code)
		})
	}
}

// --- Export ---

func TestExportHistory_WritesAndShares(t *testing.T) {
	ac, deps := newTestController(t)
	deps.service.CheckGoals()

	rr := httptest.NewRecorder()
	ac.ExportHistory(rr, httptest.NewRequest(http.MethodPost, "/export", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	resp := decode[exportResponse](t, rr)
	assert.Equal(t, filepath.Join(deps.conf.Export.Dir, "goal_check_history.csv"), resp.Path)
	assert.Equal(t, []string{resp.Path}, deps.sharer.Shared)

	data, err := os.ReadFile(resp.Path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, export.Header, lines[0])
	assert.Equal(t, 1, deps.metrics.Exports[true])
}

func TestExportHistory_Failure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	ac, deps := newTestControllerWithConfig(testConfig(filepath.Join(blocker, "sub")))

	rr := httptest.NewRecorder()
	ac.ExportHistory(rr, httptest.NewRequest(http.MethodPost, "/export", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, services.MsgExportFailed, decode[errorResponse](t, rr).Error)
	assert.Equal(t, 1, deps.metrics.Exports[false])
}

func TestExportHistory_ShareFailure(t *testing.T) {
	ac, deps := newTestController(t)
	deps.sharer.Err = errors.New("no share target")

	rr := httptest.NewRecorder()
	ac.ExportHistory(rr, httptest.NewRequest(http.MethodPost, "/export", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestDownloadHistory_StreamsCSV(t *testing.T) {
	ac, deps := newTestController(t)
	deps.service.CheckGoals()

	rr := httptest.NewRecorder()
	ac.DownloadHistory(rr, httptest.NewRequest(http.MethodGet, "/export", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, export.MimeType, rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "goal_check_history.csv")
	lines := strings.Split(strings.TrimRight(rr.Body.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, export.Header, lines[0])
	assert.Regexp(t, `^.+\|1$`, lines[1])
}

// --- cached reads ---

func TestGetState_CachedPerRevision(t *testing.T) {
	ac, deps := newTestController(t)
	deps.service.AddGoal("Read")

	rr := httptest.NewRecorder()
	ac.GetState(rr, httptest.NewRequest(http.MethodGet, "/state", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	key := providers.RevisionKey("state", deps.service.Revision())
	cached, ok := deps.cache.data[key]
	require.True(t, ok)
	assert.Equal(t, rr.Body.Bytes(), cached)

	deps.service.AddGoal("Write")
	rr = httptest.NewRecorder()
	ac.GetState(rr, httptest.NewRequest(http.MethodGet, "/state", nil))
	view := decode[services.TrackerView](t, rr)
	assert.Equal(t, []string{"Read", "Write"}, view.Goals)
	assert.Len(t, deps.cache.data, 2)
}

func TestGetState_CacheHitServed(t *testing.T) {
	ac, deps := newTestController(t)
	deps.cache.data[providers.RevisionKey("state", deps.service.Revision())] = []byte(`{"cached":true}`)

	rr := httptest.NewRecorder()
	ac.GetState(rr, httptest.NewRequest(http.MethodGet, "/state", nil))

	assert.Equal(t, `{"cached":true}`, rr.Body.String())
}

func TestGetHistory_ReturnsEntries(t *testing.T) {
	ac, deps := newTestController(t)
	deps.service.CheckGoals()

	rr := httptest.NewRecorder()
	ac.GetHistory(rr, httptest.NewRequest(http.MethodGet, "/history", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	var entries []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
}
