package actions

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"github.com/medbridge/edgepipe/logger"
	"github.com/medbridge/edgepipe/pipeline"
)

func newTestRouter(ri *SafeMapRunInfo) *mux.Router {
	log := logger.NewLogger("web test", "error", true)
	r := mux.NewRouter()
	r.Path("/health").HandlerFunc(GetHandlerHealth(log))
	r.Path("/runs").HandlerFunc(GetHandlerRunList(log, ri))
	r.Path("/runs/{runId}/status").HandlerFunc(GetHandlerRunStatus(log, ri))
	r.Path("/runs/{runId}/result").HandlerFunc(GetHandlerRunResult(log, ri))
	r.Path("/launch").Headers("Content-Type", "application/json").HandlerFunc(
		GetHandlerPipelineLaunch(log, ri, &PipelineConfig{}))
	return r
}

func TestHandlerHealth(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter(NewSafeMapRunInfo()).ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatal("expected 200, got ", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok"`) {
		t.Fatal("unexpected health response: ", w.Body.String())
	}
}

func TestHandlerRunListAndStatus(t *testing.T) {
	ri := NewSafeMapRunInfo()
	ri.Store("run1", RunInfo{
		Exchange: pipeline.Exchange{FileNames: []string{"a.csv", "b.csv"}},
		Status:   RunStatus{Status: StatusRunning},
	})
	router := newTestRouter(ri)
	// List.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/runs", nil))
	if w.Code != http.StatusOK {
		t.Fatal("expected 200, got ", w.Code)
	}
	var list ResponseRunList
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatal("unexpected error parsing run list: ", err)
	}
	if len(list.RunList) != 1 || list.RunList[0].RunId != "run1" || list.RunList[0].NumArtifacts != 2 {
		t.Fatal("unexpected run list: ", w.Body.String())
	}
	if list.Status != Okay || list.RunList[0].RunStatus != StatusRunning {
		t.Fatal("unexpected statuses in run list: ", w.Body.String())
	}
	// Status of an existing run.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/runs/run1/status", nil))
	if w.Code != http.StatusOK {
		t.Fatal("expected 200, got ", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"running"`) {
		t.Fatal("unexpected status response: ", w.Body.String())
	}
	// Status of a missing run.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/runs/nope/status", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatal("expected 400 for a missing run, got ", w.Code)
	}
}

func TestHandlerRunResult(t *testing.T) {
	ri := NewSafeMapRunInfo()
	ri.Store("run1", RunInfo{
		Status: RunStatus{Status: StatusComplete},
		Result: &pipeline.RunResult{
			RunId:     "run1",
			Processed: []string{"a.csv"},
			Failed:    map[string]error{},
		},
	})
	w := httptest.NewRecorder()
	newTestRouter(ri).ServeHTTP(w, httptest.NewRequest("GET", "/runs/run1/result", nil))
	if w.Code != http.StatusOK {
		t.Fatal("expected 200, got ", w.Code)
	}
	var result ResponseRunResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatal("unexpected error parsing run result: ", err)
	}
	if len(result.Processed) != 1 || result.Processed[0] != "a.csv" {
		t.Fatal("unexpected run result: ", w.Body.String())
	}
	if result.Status != Okay {
		t.Fatal("unexpected response status: ", w.Body.String())
	}
}

func TestHandlerLaunchRejectsBadJson(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/launch", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	newTestRouter(NewSafeMapRunInfo()).ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatal("expected 400 for bad JSON, got ", w.Code)
	}
	if !strings.Contains(w.Body.String(), "error unmarshalling JSON") {
		t.Fatal("unexpected launch response: ", w.Body.String())
	}
}
