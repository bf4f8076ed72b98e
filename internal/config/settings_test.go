package config

import (
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromLookup_Defaults(t *testing.T) {
	s, err := FromLookup(lookupFrom(map[string]string{
		"OPENAI_API_KEY":  "sk-test",
		"SLACK_BOT_TOKEN": "xoxb-test",
		"SLACK_CHANNEL":   "C123",
	}))
	if err != nil {
		t.Fatalf("FromLookup failed: %v", err)
	}

	if s.LLMProvider != ProviderOpenAI {
		t.Errorf("provider got %s, want %s", s.LLMProvider, ProviderOpenAI)
	}
	if s.OpenAIModel != OpenAIModelName {
		t.Errorf("model got %s, want %s", s.OpenAIModel, OpenAIModelName)
	}
	if s.ListenAddr != ServerListenAddr {
		t.Errorf("listen addr got %s, want %s", s.ListenAddr, ServerListenAddr)
	}
	if s.QuestionConcurrency != QuestionConcurrency || s.ExternalCallTimeout != ExternalCallTimeout {
		t.Errorf("unexpected limits: %+v", s)
	}
	if s.IsProd || s.LogLevel != slog.LevelDebug {
		t.Errorf("dev defaults expected, got prod=%v level=%v", s.IsProd, s.LogLevel)
	}
}

func TestFromLookup_MissingRequired(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		missing []string
	}{
		{
			name:    "nothing set",
			env:     map[string]string{},
			missing: []string{"OPENAI_API_KEY", "SLACK_BOT_TOKEN", "SLACK_CHANNEL"},
		},
		{
			name:    "blank values count as missing",
			env:     map[string]string{"OPENAI_API_KEY": "  ", "SLACK_BOT_TOKEN": "x", "SLACK_CHANNEL": "c"},
			missing: []string{"OPENAI_API_KEY"},
		},
		{
			name:    "gemini needs its own key",
			env:     map[string]string{"LLM_PROVIDER": "gemini", "OPENAI_API_KEY": "sk", "SLACK_BOT_TOKEN": "x", "SLACK_CHANNEL": "c"},
			missing: []string{"GEMINI_API_KEY"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromLookup(lookupFrom(tt.env))
			if !errors.Is(err, ErrMissingEnv) {
				t.Fatalf("expected ErrMissingEnv, got %v", err)
			}
			for _, key := range tt.missing {
				if !strings.Contains(err.Error(), key) {
					t.Errorf("error %q does not name %s", err, key)
				}
			}
		})
	}
}

func TestFromLookup_Overrides(t *testing.T) {
	s, err := FromLookup(lookupFrom(map[string]string{
		"APP_ENV":               "prod",
		"LLM_PROVIDER":          "Gemini",
		"GEMINI_API_KEY":        "g-key",
		"SLACK_BOT_TOKEN":       "xoxb",
		"SLACK_CHANNEL":         "C1",
		"QUESTION_CONCURRENCY":  "8",
		"EXTERNAL_CALL_TIMEOUT": "45s",
		"LOG_LEVEL":             "warn",
	}))
	if err != nil {
		t.Fatalf("FromLookup failed: %v", err)
	}
	if !s.IsProd || s.LLMProvider != ProviderGemini {
		t.Errorf("unexpected settings: %+v", s)
	}
	if s.QuestionConcurrency != 8 || s.ExternalCallTimeout != 45*time.Second {
		t.Errorf("limits not applied: %d %v", s.QuestionConcurrency, s.ExternalCallTimeout)
	}
	if s.LogLevel != slog.LevelWarn {
		t.Errorf("log level got %v, want warn", s.LogLevel)
	}
}

func TestFromLookup_InvalidValues(t *testing.T) {
	base := func() map[string]string {
		return map[string]string{"OPENAI_API_KEY": "sk", "SLACK_BOT_TOKEN": "x", "SLACK_CHANNEL": "c"}
	}
	for key, val := range map[string]string{
		"QUESTION_CONCURRENCY":  "0",
		"EXTERNAL_CALL_TIMEOUT": "soon",
		"LLM_PROVIDER":          "llama",
		"LOG_LEVEL":             "chatty",
	} {
		env := base()
		env[key] = val
		if _, err := FromLookup(lookupFrom(env)); err == nil {
			t.Errorf("%s=%s: expected error", key, val)
		}
	}
}
