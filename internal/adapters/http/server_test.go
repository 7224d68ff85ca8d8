package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/screenwalk/pkg/adapters/memory"
	"github.com/aretw0/screenwalk/pkg/browser"
	"github.com/aretw0/screenwalk/pkg/domain"
	"github.com/aretw0/screenwalk/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) (http.Handler, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, store.Save(context.Background(), &domain.Report{
		ID:      "r-2",
		Results: []domain.CaseResult{{Name: "Typing", Status: domain.CasePassed}},
	}))
	require.NoError(t, store.Save(context.Background(), &domain.Report{ID: "r-1"}))

	metrics := observability.NewMetrics()
	metrics.ObserveCase(domain.CaseResult{Name: "Typing", Status: domain.CasePassed})

	h := NewHandler(store,
		WithGraph(browser.MustGraph(domain.DeviceInfo{Idiom: domain.IdiomPhone})),
		WithMetrics(metrics.Handler()),
	)
	return h, store
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestGetHealth(t *testing.T) {
	h, _ := newTestHandler(t)
	rr := get(h, "/health")

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestGetInfo(t *testing.T) {
	h, _ := newTestHandler(t)
	rr := get(h, "/info")

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "screenwalk-http", resp["app"])
	assert.NotEmpty(t, resp["version"])
}

func TestReports(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := get(h, "/reports")
	require.Equal(t, http.StatusOK, rr.Code)
	var list map[string][]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Equal(t, []string{"r-1", "r-2"}, list["reports"])

	rr = get(h, "/reports/r-2")
	require.Equal(t, http.StatusOK, rr.Code)
	var report domain.Report
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &report))
	assert.Equal(t, "r-2", report.ID)
	require.Len(t, report.Results, 1)
	assert.Equal(t, domain.CasePassed, report.Results[0].Status)

	rr = get(h, "/reports/missing")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetGraph(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := get(h, "/graph")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.HasPrefix(rr.Body.String(), "graph TD\n"))

	rr = get(h, "/graph?format=json")
	require.Equal(t, http.StatusOK, rr.Code)
	var view struct {
		Launch  string `json:"launch"`
		Screens []struct {
			Name string `json:"name"`
		} `json:"screens"`
		Actions []struct {
			Name  string   `json:"name"`
			Hosts []string `json:"hosts"`
		} `json:"actions"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.Equal(t, "NewTabScreen", view.Launch)
	assert.Len(t, view.Screens, len(domain.Screens()))
	require.NotEmpty(t, view.Actions)
	assert.Equal(t, "LoadURL", view.Actions[0].Name)
	assert.Equal(t, []string{"URLBarOpen"}, view.Actions[0].Hosts)
}

func TestGetGraph_NotConfigured(t *testing.T) {
	h := NewHandler(memory.NewStore())
	assert.Equal(t, http.StatusNotFound, get(h, "/graph").Code)
	assert.Equal(t, http.StatusNotFound, get(h, "/metrics").Code)
}

func TestMetrics(t *testing.T) {
	h, _ := newTestHandler(t)
	rr := get(h, "/metrics")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "screenwalk_cases_total")
}
