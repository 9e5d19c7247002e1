package config

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/ShauryaRahlon/Travel-Delite/internal/domain"
)

var configKeys = []string{"PORT", "DATABASE_URL", "CORS_ORIGINS", "APP_ENV", "PROMO_CODES", "SEED_DATA"}

// isolate runs in an empty directory with every config variable cleared.
func isolate(t *testing.T) string {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	buf := &bytes.Buffer{}

	cfg, err := Load(log.New(buf, "", 0))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != defaultPort || cfg.DatabaseURL != defaultDatabaseURL || cfg.Env != "development" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if want := []string{"http://localhost:5173", "http://127.0.0.1:5173"}; !reflect.DeepEqual(cfg.CORSOrigins, want) {
		t.Fatalf("expected origins %v, got %v", want, cfg.CORSOrigins)
	}
	if !cfg.SeedData {
		t.Fatalf("expected seeding enabled in development")
	}
	if cfg.PromoCodes != nil {
		t.Fatalf("expected built-in promo codes, got %v", cfg.PromoCodes)
	}
	if _, ok := cfg.PromoEngine().Resolve("SAVE10"); !ok {
		t.Fatalf("expected default engine to know SAVE10")
	}

	out := buf.String()
	if !strings.Contains(out, "WARN: PORT not set") {
		t.Fatalf("expected default warning, got %q", out)
	}
	if strings.Contains(out, "travel_delite:travel_delite") {
		t.Fatalf("expected DSN redacted in log, got %q", out)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("PORT", "9090")
	t.Setenv("CORS_ORIGINS", " https://bookit.example , ,https://admin.example")
	t.Setenv("APP_ENV", "production")
	t.Setenv("PROMO_CODES", "vip:percentage:30")

	cfg, err := Load(log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "9090" || !cfg.IsProduction() {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if want := []string{"https://bookit.example", "https://admin.example"}; !reflect.DeepEqual(cfg.CORSOrigins, want) {
		t.Fatalf("expected origins %v, got %v", want, cfg.CORSOrigins)
	}
	if cfg.SeedData {
		t.Fatalf("expected seeding off outside development")
	}
	engine := cfg.PromoEngine()
	if d, ok := engine.Resolve("VIP"); !ok || d.Type != domain.DiscountPercentage || d.Value != 30 {
		t.Fatalf("expected VIP 30%%, got %+v (%v)", d, ok)
	}
	if _, ok := engine.Resolve("SAVE10"); ok {
		t.Fatalf("expected configured codes to replace the defaults")
	}
}

func TestLoad_EnvFileFromParent(t *testing.T) {
	dir := isolate(t)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=7070\nSEED_DATA=false\n"), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}
	child := filepath.Join(dir, "cmd", "api")
	if err := os.MkdirAll(child, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.Chdir(child); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	// godotenv does not overwrite variables that are already present.
	for _, key := range []string{"PORT", "SEED_DATA"} {
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("unset %s: %v", key, err)
		}
	}

	cfg, err := Load(log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "7070" || cfg.SeedData {
		t.Fatalf("expected values from .env, got %+v", cfg)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "promo codes", key: "PROMO_CODES", val: "BROKEN"},
		{name: "seed flag", key: "SEED_DATA", val: "sometimes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Setenv(tt.key, tt.val)

			_, err := Load(log.New(io.Discard, "", 0))
			if err == nil || !strings.Contains(err.Error(), tt.key) {
				t.Fatalf("expected %s error, got %v", tt.key, err)
			}
		})
	}
}
