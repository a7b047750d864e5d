package cfg

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_NAME", "")

	cfg := LoadConfig()
	if cfg.Port != "8000" {
		t.Errorf("port = %q, want default 8000", cfg.Port)
	}
	if cfg.StoreConfigured() {
		t.Error("store reported configured without DATABASE_URL/DATABASE_NAME")
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "mongodb://localhost:27017")
	t.Setenv("DATABASE_NAME", "provisioning")

	cfg := LoadConfig()
	if cfg.Port != "9000" {
		t.Errorf("port = %q, want 9000", cfg.Port)
	}
	if !cfg.StoreConfigured() {
		t.Error("store not reported configured with both variables set")
	}
}

func TestStoreConfiguredNeedsBothVariables(t *testing.T) {
	t.Setenv("DATABASE_URL", "mongodb://localhost:27017")
	t.Setenv("DATABASE_NAME", "")

	if LoadConfig().StoreConfigured() {
		t.Error("store reported configured with DATABASE_NAME missing")
	}
}
