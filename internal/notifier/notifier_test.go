package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SumitGhughtyal/Suraksha-Setu/internal/model"
)

func TestClientNotify(t *testing.T) {
	var got model.CreateNotificationRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/notifications" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	err := client.Notify(context.Background(), 7, "outside all safe zones")
	if err != nil {
		t.Fatalf("Notify() unexpected error: %v", err)
	}

	if got.UserID == nil || *got.UserID != 7 {
		t.Errorf("posted userId = %v, want 7", got.UserID)
	}
	if got.Message != "outside all safe zones" {
		t.Errorf("posted message = %q", got.Message)
	}
}

func TestClientNotifyServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	if err := client.Notify(context.Background(), 7, "msg"); err == nil {
		t.Error("Notify() expected error on a non-201 response")
	}
}

func TestClientNotifyUnreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1")
	if err := client.Notify(context.Background(), 7, "msg"); err == nil {
		t.Error("Notify() expected error when the service is unreachable")
	}
}

func TestLogOnly(t *testing.T) {
	if err := (LogOnly{}).Notify(context.Background(), 7, "msg"); err != nil {
		t.Errorf("LogOnly.Notify() unexpected error: %v", err)
	}
}
