package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/karthikeyanvk18/Clerro/internal/log"
)

func testLogger() *log.Logger {
	return log.New(log.DefaultConfig())
}

func TestPusherSend(t *testing.T) {
	var got pushRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Basic test-key" {
			t.Errorf("authorization = %s", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := NewPusher(PusherConfig{APIURL: srv.URL, AppID: "app-1", APIKey: "test-key"}, testLogger())
	err := p.Send(context.Background(), "user-1", "Budget alert", "food budget at 85%", "expense_alert")
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if got.AppID != "app-1" {
		t.Errorf("app id = %s", got.AppID)
	}
	if len(got.ExternalUserIDs) != 1 || got.ExternalUserIDs[0] != "user-1" {
		t.Errorf("external user ids = %v", got.ExternalUserIDs)
	}
	if got.Contents["en"] != "food budget at 85%" {
		t.Errorf("contents = %v", got.Contents)
	}
}

func TestPusherSendAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad app id", http.StatusBadRequest)
	}))
	defer srv.Close()

	p := NewPusher(PusherConfig{APIURL: srv.URL, AppID: "app-1", APIKey: "k"}, testLogger())
	if err := p.Send(context.Background(), "user-1", "t", "m", "system"); err == nil {
		t.Fatal("expected error on 4xx response")
	}
}

func TestPusherDisabled(t *testing.T) {
	// No app ID: sends are dropped, never dialed.
	p := NewPusher(PusherConfig{APIURL: "http://127.0.0.1:1"}, testLogger())
	if err := p.Send(context.Background(), "user-1", "t", "m", "system"); err != nil {
		t.Fatalf("disabled pusher must not error: %v", err)
	}
}

func TestMailerDisabled(t *testing.T) {
	m := NewMailer(MailerConfig{}, testLogger())
	if err := m.SendWelcome("a@b.c", "A"); err != nil {
		t.Fatalf("disabled mailer must not error: %v", err)
	}
	if err := m.SendNotification("a@b.c", "t", "m"); err != nil {
		t.Fatalf("disabled mailer must not error: %v", err)
	}
}
