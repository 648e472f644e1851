package common

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ENV_FILE", "/dev/null")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Upload.MaxFileSize != 10*1024*1024 {
		t.Errorf("MaxFileSize = %d, want 10MiB", cfg.Upload.MaxFileSize)
	}
	if cfg.LLM.OpenAI.Model != "gpt-4o" {
		t.Errorf("OpenAI model = %q, want gpt-4o", cfg.LLM.OpenAI.Model)
	}
	if cfg.LLM.Timeout != 90*time.Second {
		t.Errorf("LLM timeout = %v, want 90s", cfg.LLM.Timeout)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("ENV_FILE", "/dev/null")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("MAX_FILE_SIZE", "1024")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")
	t.Setenv("LLM_TIMEOUT", "30s")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Server.Addr != ":9090" {
		t.Errorf("Addr = %q, want :9090", cfg.Server.Addr)
	}
	if cfg.Upload.MaxFileSize != 1024 {
		t.Errorf("MaxFileSize = %d, want 1024", cfg.Upload.MaxFileSize)
	}
	if cfg.LLM.Anthropic.APIKey != "sk-ant-test" {
		t.Errorf("Anthropic key not picked up")
	}
	if cfg.LLM.Timeout != 30*time.Second {
		t.Errorf("LLM timeout = %v, want 30s", cfg.LLM.Timeout)
	}
}
