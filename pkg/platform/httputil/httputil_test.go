package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	dErrors "famcard/pkg/domain-errors"
)

func TestWriteError(t *testing.T) {
	t.Run("classified error keeps its code and hides detail", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeNotFound, "family record is null for 900101300123"))

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
		}

		var body map[string]any
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body["error"] != "not_found" {
			t.Fatalf("expected error code not_found, got %q", body["error"])
		}
		if body["error_msg"] != dErrors.UserMessage(dErrors.CodeNotFound) {
			t.Fatalf("unexpected error_msg %q", body["error_msg"])
		}
		if body["success"] != false {
			t.Fatalf("expected success=false")
		}
	})

	t.Run("unclassified error is reported as transport", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, errors.New("dial tcp: refused"))

		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected status %d, got %d", http.StatusServiceUnavailable, w.Code)
		}

		var body map[string]any
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body["error"] != "transport" {
			t.Fatalf("expected error code transport, got %q", body["error"])
		}
	})
}

func TestWriteData(t *testing.T) {
	w := httptest.NewRecorder()
	WriteData(w, map[string]int{"member_cnt": 3})

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var body struct {
		Success bool           `json:"success"`
		Data    map[string]int `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.Success || body.Data["member_cnt"] != 3 {
		t.Fatalf("unexpected body %+v", body)
	}
}
