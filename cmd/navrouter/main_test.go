package main

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/navrouter/internal/config"
	"github.com/vango-dev/navrouter/internal/errors"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cfgPath := filepath.Join(t.TempDir(), config.ConfigFileName)
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestMatchCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want matchOutput
	}{
		{
			name: "exact with param",
			args: []string{"/Users/42", "/users/:id"},
			want: matchOutput{Matched: true, MatchedPath: "/users/42", Params: map[string]string{"id": "42"}, RemainingPath: "/"},
		},
		{
			name: "exact too long",
			args: []string{"/users/42/posts", "/users/:id"},
			want: matchOutput{Matched: false},
		},
		{
			name: "prefix",
			args: []string{"--prefix", "/users/42/posts", "/users/:id"},
			want: matchOutput{Matched: true, MatchedPath: "/users/42", Params: map[string]string{"id": "42"}, RemainingPath: "/posts"},
		},
		{
			name: "preserve case",
			args: []string{"--preserve-case", "/users/AbC", "/users/:id"},
			want: matchOutput{Matched: true, MatchedPath: "/users/AbC", Params: map[string]string{"id": "AbC"}, RemainingPath: "/"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, append([]string{"match"}, tt.args...)...)
			if err != nil {
				t.Fatalf("match error = %v", err)
			}
			var got matchOutput
			if err := json.Unmarshal([]byte(out), &got); err != nil {
				t.Fatalf("bad json %q: %v", out, err)
			}
			if got.Matched != tt.want.Matched || got.MatchedPath != tt.want.MatchedPath || got.RemainingPath != tt.want.RemainingPath {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
			for k, v := range tt.want.Params {
				if got.Params[k] != v {
					t.Errorf("Params[%q] = %q, want %q", k, got.Params[k], v)
				}
			}
		})
	}
}

func TestMatchCommandFirstPatternWins(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantMatch  bool
		wantPat    string
		wantParams map[string]string
	}{
		{
			name:       "second pattern names its own param",
			args:       []string{"/users/alice/posts", "/users/:id", "/users/:name/posts"},
			wantMatch:  true,
			wantPat:    "/users/:name/posts",
			wantParams: map[string]string{"name": "alice"},
		},
		{
			name:       "order decides between literal and param",
			args:       []string{"/users/new", "/users/:id", "/users/new"},
			wantMatch:  true,
			wantPat:    "/users/:id",
			wantParams: map[string]string{"id": "new"},
		},
		{
			name:       "literal listed first",
			args:       []string{"/users/new", "/users/new", "/users/:id"},
			wantMatch:  true,
			wantPat:    "/users/new",
			wantParams: map[string]string{},
		},
		{
			name:      "no pattern matches",
			args:      []string{"/about", "/users/:id", "/users/:name/posts"},
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, append([]string{"match"}, tt.args...)...)
			if err != nil {
				t.Fatal(err)
			}
			var got matchOutput
			if err := json.Unmarshal([]byte(out), &got); err != nil {
				t.Fatal(err)
			}
			if got.Matched != tt.wantMatch || got.Pattern != tt.wantPat {
				t.Errorf("got %+v, want pattern %q", got, tt.wantPat)
			}
			if len(got.Params) != len(tt.wantParams) {
				t.Errorf("Params = %v, want %v", got.Params, tt.wantParams)
			}
			for k, v := range tt.wantParams {
				if got.Params[k] != v {
					t.Errorf("Params[%q] = %q, want %q", k, got.Params[k], v)
				}
			}
		})
	}
}

func TestMatchCommandMalformedURL(t *testing.T) {
	_, err := run(t, "match", "http://[::1", "/")
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Code != "E201" {
		t.Errorf("err = %v, want E201", err)
	}
}

func TestMatchCommandArgs(t *testing.T) {
	if _, err := run(t, "match", "/only-one"); err == nil {
		t.Error("expected error for missing pattern")
	}
}

func TestNormalizeCommand(t *testing.T) {
	out, err := run(t, "normalize", "--origin", "https://app.test", "/Users/ABC?Q=1")
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(out); got != "https://app.test/users/abc?q=1" {
		t.Errorf("normalize = %q", got)
	}
}

func TestInvalidConfigFails(t *testing.T) {
	t.Setenv("NAVROUTER_LOG_LEVEL", "loud")
	_, err := run(t, "match", "/", "/")
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Code != "E104" {
		t.Errorf("err = %v, want E104", err)
	}
}

func TestInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	if _, err := run(t, "init", path); err != nil {
		t.Fatalf("init error = %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Bridge.Addr != config.DefaultAddr {
		t.Errorf("Bridge.Addr = %q", cfg.Bridge.Addr)
	}

	if _, err := run(t, "init", path); err == nil {
		t.Error("expected error when file exists")
	}
	if _, err := run(t, "init", "--force", path); err != nil {
		t.Errorf("init --force error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Error(err)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != version {
		t.Errorf("version = %q", out)
	}
}

func TestBridgeConfig(t *testing.T) {
	cfg := config.New()
	cfg.Bridge.Path = "/nav"
	cfg.Bridge.AllowedOrigins = []string{"http://ui.test"}
	cmd := newRootCmd(&bytes.Buffer{}, &bytes.Buffer{})

	bcfg := bridgeConfig(cfg, cmd)
	if bcfg.Path != "/nav" || len(bcfg.AllowedOrigins) != 1 {
		t.Errorf("bridge config = %+v", bcfg)
	}
	if !bcfg.EnableMetrics {
		t.Error("EnableMetrics should follow metrics.enabled")
	}
	if bcfg.OnSession == nil || bcfg.Logger == nil {
		t.Error("OnSession and Logger should be set")
	}
}
