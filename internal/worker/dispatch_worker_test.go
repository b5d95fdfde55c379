package worker

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/karthikeyanvk18/Clerro/internal/amqp"
	"github.com/karthikeyanvk18/Clerro/internal/core"
	"github.com/karthikeyanvk18/Clerro/internal/log"
	"github.com/karthikeyanvk18/Clerro/internal/notify"
	"github.com/karthikeyanvk18/Clerro/internal/storage"
)

func setup(t *testing.T, pushURL string) (*DispatchWorker, *storage.Repository, core.User) {
	t.Helper()
	repo, err := storage.NewRepository(filepath.Join(t.TempDir(), "worker.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	logger := log.New(log.DefaultConfig())
	pusher := notify.NewPusher(notify.PusherConfig{APIURL: pushURL, AppID: "app", APIKey: "key"}, logger)
	mailer := notify.NewMailer(notify.MailerConfig{}, logger)

	now := time.Now().UTC()
	u := core.User{
		ID: uuid.NewString(), Email: "w@example.com", PasswordHash: "x",
		CreatedAt: now, UpdatedAt: now,
	}
	if err := repo.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}

	return NewDispatchWorker(repo, pusher, mailer), repo, u
}

func TestHandleMessageDispatches(t *testing.T) {
	pushed := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pushed++
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if body["app_id"] != "app" {
			t.Errorf("app_id = %v", body["app_id"])
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	w, repo, u := setup(t, srv.URL)
	ctx := context.Background()

	n := core.Notification{
		ID: uuid.NewString(), UserID: u.ID, Type: core.NotifyPaymentDue,
		Title: "Payment due", Message: "EMI due tomorrow", CreatedAt: time.Now().UTC(),
	}
	if err := repo.CreateNotification(ctx, n); err != nil {
		t.Fatalf("create notification: %v", err)
	}

	if err := w.HandleMessage(ctx, amqp.NewNotificationMessage(n.ID, u.ID)); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if pushed != 1 {
		t.Fatalf("pushed = %d", pushed)
	}

	got, err := repo.GetNotification(ctx, n.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Dispatched {
		t.Fatal("notification not marked dispatched")
	}

	// Redelivery is a no-op once dispatched.
	if err := w.HandleMessage(ctx, amqp.NewNotificationMessage(n.ID, u.ID)); err != nil {
		t.Fatalf("redelivery: %v", err)
	}
	if pushed != 1 {
		t.Fatalf("duplicate push: %d", pushed)
	}
}

func TestHandleMessageRespectsSettings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("push sent despite disabled setting")
	}))
	defer srv.Close()

	w, repo, u := setup(t, srv.URL)
	ctx := context.Background()

	settings := core.DefaultSettings(u.ID)
	settings.PushNotifications = false
	settings.EmailNotifications = false
	if err := repo.SaveSettings(ctx, settings); err != nil {
		t.Fatalf("save settings: %v", err)
	}

	n := core.Notification{
		ID: uuid.NewString(), UserID: u.ID, Type: core.NotifySystem,
		Title: "t", Message: "m", CreatedAt: time.Now().UTC(),
	}
	if err := repo.CreateNotification(ctx, n); err != nil {
		t.Fatalf("create notification: %v", err)
	}
	if err := w.HandleMessage(ctx, amqp.NewNotificationMessage(n.ID, u.ID)); err != nil {
		t.Fatalf("handle: %v", err)
	}

	got, _ := repo.GetNotification(ctx, n.ID)
	if !got.Dispatched {
		t.Fatal("notification should still be marked dispatched")
	}
}

func TestHandleMessageMissingNotification(t *testing.T) {
	w, _, u := setup(t, "http://127.0.0.1:1")
	err := w.HandleMessage(context.Background(), amqp.NewNotificationMessage("missing", u.ID))
	if err == nil {
		t.Fatal("expected error for unknown notification")
	}
}
