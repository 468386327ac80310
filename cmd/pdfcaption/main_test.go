package main

import (
    "bytes"
    "strings"
    "testing"

    "github.com/thywilljoshua/pdf-image-captioner/internal/ai"
    "github.com/thywilljoshua/pdf-image-captioner/internal/config"
)

func TestWritePrompts(t *testing.T) {
    var buf bytes.Buffer
    pool := ai.PromptPool{"short prompt", strings.Repeat("word ", 30)}
    if err := writePrompts(&buf, pool); err != nil {
        t.Fatalf("writePrompts() error = %v", err)
    }
    got := buf.String()
    if !strings.HasPrefix(got, "Prompts:\n") {
        t.Errorf("output does not start with header:\n%s", got)
    }
    if n := strings.Count(got, strings.Repeat("-", promptsWidth)+"\n"); n != 2 {
        t.Errorf("rules = %d, want 2", n)
    }
    for _, line := range strings.Split(got, "\n") {
        if len(line) > promptsWidth {
            t.Errorf("line longer than %d: %q", promptsWidth, line)
        }
    }
}

func TestRootFlagDefaults(t *testing.T) {
    cmd := rootCmd()
    tests := []struct {
        name string
        want string
    }{
        {"output", ""},
        {"seconds-to-sleep-between-requests", "1"},
        {"page-numbers", "true"},
        {"env-file", "config/.env"},
    }
    for _, tt := range tests {
        f := cmd.Flags().Lookup(tt.name)
        if f == nil {
            t.Errorf("flag --%s not defined", tt.name)
            continue
        }
        if f.DefValue != tt.want {
            t.Errorf("--%s default = %q, want %q", tt.name, f.DefValue, tt.want)
        }
    }
    if f := cmd.Flags().ShorthandLookup("s"); f == nil || f.Name != "seconds-to-sleep-between-requests" {
        t.Errorf("-s does not map to --seconds-to-sleep-between-requests")
    }
    if f := cmd.Flags().ShorthandLookup("o"); f == nil || f.Name != "output" {
        t.Errorf("-o does not map to --output")
    }
}

func TestRootRequiresPDF(t *testing.T) {
    cmd := rootCmd()
    cmd.SetArgs([]string{})
    var out bytes.Buffer
    cmd.SetOut(&out)
    cmd.SetErr(&out)
    if err := cmd.Execute(); err == nil {
        t.Fatal("Execute() without a pdf argument: want error")
    }
}

func TestRootRejectsNegativeSleep(t *testing.T) {
    cmd := rootCmd()
    cmd.SetArgs([]string{"doc.pdf", "-s", "-1"})
    var out bytes.Buffer
    cmd.SetOut(&out)
    cmd.SetErr(&out)
    err := cmd.Execute()
    if err == nil || !strings.Contains(err.Error(), "must not be negative") {
        t.Fatalf("Execute() error = %v, want negative sleep error", err)
    }
}

func TestNewBackend(t *testing.T) {
    tests := []struct {
        backend string
        want    string
    }{
        {config.BackendNoop, "noop"},
        {config.BackendGemini, "gemini"},
        {config.BackendOpenAI, "openai"},
    }
    for _, tt := range tests {
        b := newBackend(&config.Settings{Backend: tt.backend})
        if b.Name() != tt.want {
            t.Errorf("newBackend(%q).Name() = %q, want %q", tt.backend, b.Name(), tt.want)
        }
    }
    if _, ok := newBackend(&config.Settings{Backend: config.BackendNoop}).(ai.Noop); !ok {
        t.Error("noop backend should not be wrapped in a lazy client")
    }
}
