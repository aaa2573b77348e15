package config

import "testing"

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("FIREBASE_PROJECT_ID", "portfolio-test")
	t.Setenv("ADMIN_EMAIL", "owner@example.com")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Port)
	}
	if cfg.ContactTimeoutSeconds != 10 {
		t.Errorf("contact timeout = %d, want 10", cfg.ContactTimeoutSeconds)
	}
	if cfg.AMQPQueue != "contact-messages" {
		t.Errorf("queue = %q, want contact-messages", cfg.AMQPQueue)
	}
	if cfg.NotifyTo != "owner@example.com" {
		t.Errorf("notifyTo = %q, want the admin email fallback", cfg.NotifyTo)
	}
}

func TestLoadConfigRequiredFields(t *testing.T) {
	tests := []struct {
		name  string
		unset string
	}{
		{name: "missing project", unset: "FIREBASE_PROJECT_ID"},
		{name: "missing admin email", unset: "ADMIN_EMAIL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.unset, "")

			if _, err := LoadConfig(); err == nil {
				t.Fatal("expected an error for a missing required setting")
			}
		})
	}
}

func TestLoadConfigRejectsNonPositiveTimeout(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CONTACT_TIMEOUT_SECONDS", "0")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected an error for a zero timeout")
	}
}

func TestLoadConfigExplicitNotifyTo(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("NOTIFY_TO", "inbox@example.com")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.NotifyTo != "inbox@example.com" {
		t.Errorf("notifyTo = %q, want the explicit address", cfg.NotifyTo)
	}
}
