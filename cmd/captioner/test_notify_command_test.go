package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"captioner/internal/testsupport"
)

func TestTestNotifyWithoutTopic(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithoutHistory())
	out, _, err := runCLI(t, []string{"test-notify"}, env.configPath)
	if err != nil {
		t.Fatalf("test-notify: %v", err)
	}
	requireContains(t, out, "Notification not sent")
}

func TestTestNotifySends(t *testing.T) {
	var title string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		title = r.Header.Get("Title")
	}))
	defer server.Close()

	env := setupCLITestEnv(t, testsupport.WithoutHistory())
	env.cfg.Notifications.NtfyTopic = server.URL
	writeTestConfig(t, env.configPath, env.cfg)

	out, _, err := runCLI(t, []string{"test-notify"}, env.configPath)
	if err != nil {
		t.Fatalf("test-notify: %v", err)
	}
	requireContains(t, out, "Test notification sent")
	if title != "captioner - Test" {
		t.Fatalf("unexpected title %q", title)
	}
}
