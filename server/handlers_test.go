// Copyright 2025 The specgrade Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/specgrade/specgrade/evaluation"
	"github.com/specgrade/specgrade/model"
	"github.com/specgrade/specgrade/storage"
)

func validDescriptionJSON() string {
	return `{
		"endpoint": "/api/users",
		"endpoints": [
			{
				"method": "GET",
				"summary": "Lists every registered user account",
				"responseSchema": [{"status": 200}]
			}
		],
		"issues": [{"severity": "info"}]
	}`
}

func postJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	return recorder
}

func TestQuickCheckHandler(t *testing.T) {
	store := storage.NewMemoryStore()
	srv := New(Config{Store: store})
	defer srv.Close()
	handler := srv.Handler()

	body := fmt.Sprintf(`{"name": "users-api", "value": %s}`, validDescriptionJSON())
	recorder := postJSON(t, handler, "/v1/quickcheck", body)

	if got, want := recorder.Code, http.StatusOK; got != want {
		t.Fatalf("status = %d, want %d: %s", got, want, recorder.Body.String())
	}

	var resp struct {
		RunID     string              `json:"run_id"`
		Passed    bool                `json:"passed"`
		FailedIDs []string            `json:"failed_ids"`
		Details   []evaluation.Result `json:"details"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Passed {
		t.Errorf("Passed = false, failed: %v", resp.FailedIDs)
	}
	if got, want := len(resp.Details), 8; got != want {
		t.Errorf("len(Details) = %d, want %d", got, want)
	}
	if resp.RunID == "" {
		t.Fatal("run_id is empty")
	}

	run, err := store.GetRun(context.Background(), resp.RunID)
	if err != nil {
		t.Fatalf("GetRun(%s): %v", resp.RunID, err)
	}
	if !run.Passed {
		t.Error("persisted run Passed = false, want true")
	}
}

func TestQuickCheckHandlerFailingValue(t *testing.T) {
	srv := New(Config{Store: storage.NewMemoryStore()})
	defer srv.Close()

	recorder := postJSON(t, srv.Handler(), "/v1/quickcheck",
		`{"value": {"endpoint": "", "endpoints": []}}`)

	if got, want := recorder.Code, http.StatusOK; got != want {
		t.Fatalf("status = %d, want %d", got, want)
	}
	var resp struct {
		Passed    bool     `json:"passed"`
		FailedIDs []string `json:"failed_ids"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Passed {
		t.Error("Passed = true, want false")
	}
	if len(resp.FailedIDs) == 0 {
		t.Error("FailedIDs is empty, want failures")
	}
}

func TestQuickCheckHandlerBackgroundFollowUp(t *testing.T) {
	store := storage.NewMemoryStore()
	completer := model.CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		return "yes\nyes", nil
	})
	srv := New(Config{Store: store, Completer: completer})

	body := fmt.Sprintf(`{"value": %s}`, validDescriptionJSON())
	recorder := postJSON(t, srv.Handler(), "/v1/quickcheck", body)
	if got, want := recorder.Code, http.StatusOK; got != want {
		t.Fatalf("status = %d, want %d", got, want)
	}

	var resp struct {
		RunID   string              `json:"run_id"`
		Details []evaluation.Result `json:"details"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	// The response itself carries only the measurable fast path.
	if got, want := len(resp.Details), 8; got != want {
		t.Errorf("len(Details) = %d, want %d", got, want)
	}

	// Close drains the detached descriptive pass.
	if err := srv.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	run, err := store.GetRun(context.Background(), resp.RunID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got, want := len(run.Results), 10; got != want {
		t.Fatalf("len(run.Results) after follow-up = %d, want %d", got, want)
	}
	if !run.Passed {
		t.Error("follow-up changed the run's Passed verdict")
	}
}

func TestEvaluateHandler(t *testing.T) {
	store := storage.NewMemoryStore()
	completer := model.CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		return "yes\nyes", nil
	})
	srv := New(Config{Store: store, Completer: completer})
	defer srv.Close()

	body := fmt.Sprintf(`{"name": "users-api", "value": %s}`, validDescriptionJSON())
	recorder := postJSON(t, srv.Handler(), "/v1/evaluate", body)
	if got, want := recorder.Code, http.StatusOK; got != want {
		t.Fatalf("status = %d, want %d: %s", got, want, recorder.Body.String())
	}

	var run storage.Run
	if err := json.Unmarshal(recorder.Body.Bytes(), &run); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got, want := len(run.Results), 10; got != want {
		t.Errorf("len(Results) = %d, want %d", got, want)
	}
	if !run.Passed {
		t.Error("Passed = false, want true")
	}
	if got, want := run.Name, "users-api"; got != want {
		t.Errorf("Name = %q, want %q", got, want)
	}

	stored, err := store.GetRun(context.Background(), run.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got, want := len(stored.Results), 10; got != want {
		t.Errorf("persisted len(Results) = %d, want %d", got, want)
	}
}

func TestEvaluateHandlerBadRequests(t *testing.T) {
	srv := New(Config{Store: storage.NewMemoryStore()})
	defer srv.Close()
	handler := srv.Handler()

	for _, path := range []string{"/v1/evaluate", "/v1/quickcheck"} {
		if got := postJSON(t, handler, path, "not json").Code; got != http.StatusBadRequest {
			t.Errorf("POST %s with bad body = %d, want %d", path, got, http.StatusBadRequest)
		}
		if got := postJSON(t, handler, path, `{"name": "x"}`).Code; got != http.StatusBadRequest {
			t.Errorf("POST %s without value = %d, want %d", path, got, http.StatusBadRequest)
		}
	}
}

func TestRunHandlers(t *testing.T) {
	store := storage.NewMemoryStore()
	srv := New(Config{Store: store})
	defer srv.Close()
	handler := srv.Handler()

	body := fmt.Sprintf(`{"value": %s}`, validDescriptionJSON())
	recorder := postJSON(t, handler, "/v1/quickcheck", body)
	var created struct {
		RunID string `json:"run_id"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	// List.
	req := httptest.NewRequest(http.MethodGet, "/v1/runs", nil)
	listRecorder := httptest.NewRecorder()
	handler.ServeHTTP(listRecorder, req)
	if got, want := listRecorder.Code, http.StatusOK; got != want {
		t.Fatalf("GET /v1/runs = %d, want %d", got, want)
	}
	var runs []storage.Run
	if err := json.Unmarshal(listRecorder.Body.Bytes(), &runs); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if got, want := len(runs), 1; got != want {
		t.Fatalf("len(runs) = %d, want %d", got, want)
	}

	// Get.
	req = httptest.NewRequest(http.MethodGet, "/v1/runs/"+created.RunID, nil)
	getRecorder := httptest.NewRecorder()
	handler.ServeHTTP(getRecorder, req)
	if got, want := getRecorder.Code, http.StatusOK; got != want {
		t.Fatalf("GET /v1/runs/{id} = %d, want %d", got, want)
	}

	// Delete.
	req = httptest.NewRequest(http.MethodDelete, "/v1/runs/"+created.RunID, nil)
	deleteRecorder := httptest.NewRecorder()
	handler.ServeHTTP(deleteRecorder, req)
	if got, want := deleteRecorder.Code, http.StatusNoContent; got != want {
		t.Fatalf("DELETE /v1/runs/{id} = %d, want %d", got, want)
	}

	// Gone.
	req = httptest.NewRequest(http.MethodGet, "/v1/runs/"+created.RunID, nil)
	goneRecorder := httptest.NewRecorder()
	handler.ServeHTTP(goneRecorder, req)
	if got, want := goneRecorder.Code, http.StatusNotFound; got != want {
		t.Errorf("GET deleted run = %d, want %d", got, want)
	}
}

func TestRunHandlersNotFound(t *testing.T) {
	srv := New(Config{Store: storage.NewMemoryStore()})
	defer srv.Close()
	handler := srv.Handler()

	req := httptest.NewRequest(http.MethodGet, "/v1/runs/missing", nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	if got, want := recorder.Code, http.StatusNotFound; got != want {
		t.Errorf("GET missing run = %d, want %d", got, want)
	}

	req = httptest.NewRequest(http.MethodDelete, "/v1/runs/missing", nil)
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	if got, want := recorder.Code, http.StatusNotFound; got != want {
		t.Errorf("DELETE missing run = %d, want %d", got, want)
	}
}
