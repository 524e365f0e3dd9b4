package config

import (
	"os"
	"os/exec"
	"testing"
	"time"
)

// TestLoadConfig_Defaults verifies that defaults are loaded when no env is set.
func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"SERVER_PORT", "BACKEND_BASE_URL", "BACKEND_TIMEOUT", "SUGGEST_MIN_CHARS", "REDIS_ADDR", "SEARCH_CACHE_TTL"} {
		_ = os.Unsetenv(k)
	}

	LoadConfig()

	if AppConfig.Server.Port != "8080" {
		t.Fatalf("expected default SERVER_PORT=8080, got %q", AppConfig.Server.Port)
	}
	if AppConfig.Backend.BaseURL != "http://127.0.0.1:8000" || AppConfig.Backend.Timeout != 30*time.Second {
		t.Fatalf("unexpected backend defaults: %+v", AppConfig.Backend)
	}
	if AppConfig.Suggest.MinChars != 2 {
		t.Fatalf("expected min chars 2, got %d", AppConfig.Suggest.MinChars)
	}
	if AppConfig.Redis.Addr != "" || AppConfig.Redis.CacheTTL != 5*time.Minute {
		t.Fatalf("unexpected redis defaults: %+v", AppConfig.Redis)
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "https://valuation.example.com/")
	t.Setenv("BACKEND_TIMEOUT", "0s")

	LoadConfig()

	if AppConfig.Backend.BaseURL != "https://valuation.example.com" {
		t.Fatalf("trailing slash not trimmed: %q", AppConfig.Backend.BaseURL)
	}
	if AppConfig.Backend.Timeout != 0 {
		t.Fatalf("expected timeout disabled, got %v", AppConfig.Backend.Timeout)
	}
}

func TestCheckBaseURL(t *testing.T) {
	cases := []struct {
		in      string
		wantErr bool
	}{
		{"http://127.0.0.1:8000", false},
		{"https://valuation.example.com", false},
		{"https://valuation.example.com/api", false},
		{"http://https://valuation.example.com", true},
		{"ftp://valuation.example.com", true},
		{"valuation.example.com", true},
		{"http://", true},
		{"http://host?x=1", true},
	}
	for _, c := range cases {
		err := CheckBaseURL(c.in)
		if (err != nil) != c.wantErr {
			t.Fatalf("CheckBaseURL(%q) err=%v, wantErr=%v", c.in, err, c.wantErr)
		}
	}
}

func TestProblems(t *testing.T) {
	got := problems(Config{})
	if len(got) != 3 {
		t.Fatalf("expected 3 problems for empty config, got %v", got)
	}
	ok := Config{
		Server:  ServerConfig{Port: "8080"},
		Backend: BackendConfig{BaseURL: "http://localhost:8000"},
		Suggest: SuggestConfig{MinChars: 2},
	}
	if p := problems(ok); len(p) != 0 {
		t.Fatalf("unexpected problems: %v", p)
	}
}

// TestValidateConfig_Fatal uses a subprocess to assert that validateConfig triggers a fatal exit
// when required fields are missing.
func TestValidateConfig_Fatal(t *testing.T) {
	if os.Getenv("RUN_VALIDATE_FATAL") == "1" {
		AppConfig = Config{}
		validateConfig()
		t.Fatalf("validateConfig should have exited the process")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run", "TestValidateConfig_Fatal")
	cmd.Env = append(os.Environ(), "RUN_VALIDATE_FATAL=1")
	err := cmd.Run()
	if err == nil {
		t.Fatalf("expected process to exit with error, got nil")
	}
}
