package ai

import (
    "context"
    "errors"
    "io"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"
)

func newGeminiServer(t *testing.T, status int, body string, gotBody *string) *httptest.Server {
    t.Helper()
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if !strings.Contains(r.URL.Path, ":generateContent") {
            t.Errorf("unexpected path %s", r.URL.Path)
        }
        if gotBody != nil {
            b, _ := io.ReadAll(r.Body)
            *gotBody = string(b)
        }
        w.Header().Set("Content-Type", "application/json")
        w.WriteHeader(status)
        _, _ = io.WriteString(w, body)
    }))
    t.Cleanup(srv.Close)
    return srv
}

func TestNewGemini(t *testing.T) {
    tests := []struct {
        name    string
        apiKey  string
        wantErr bool
    }{
        {"valid key", "test-api-key", false},
        {"empty key", "", true},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            g, err := NewGemini(context.Background(), tt.apiKey, "")
            if (err != nil) != tt.wantErr {
                t.Fatalf("NewGemini() error = %v, wantErr %v", err, tt.wantErr)
            }
            if !tt.wantErr && g.model != DefaultGeminiModel {
                t.Errorf("model = %q, want %q", g.model, DefaultGeminiModel)
            }
        })
    }
}

func TestGeminiGenerate(t *testing.T) {
    tests := []struct {
        name          string
        status        int
        body          string
        want          string
        wantErr       bool
        wantRateLimit bool
    }{
        {
            name:   "caption",
            status: http.StatusOK,
            body:   `{"candidates":[{"content":{"role":"model","parts":[{"text":"This image displays: a cat."}]},"finishReason":"STOP"}]}`,
            want:   "This image displays: a cat.",
        },
        {
            name:   "blocked prompt",
            status: http.StatusOK,
            body:   `{"promptFeedback":{"blockReason":"SAFETY"}}`,
            want:   "",
        },
        {
            name:   "filtered candidate",
            status: http.StatusOK,
            body:   `{"candidates":[{"finishReason":"SAFETY"}]}`,
            want:   "",
        },
        {
            name:          "quota exhausted",
            status:        http.StatusTooManyRequests,
            body:          `{"error":{"code":429,"message":"Resource has been exhausted","status":"RESOURCE_EXHAUSTED"}}`,
            wantErr:       true,
            wantRateLimit: true,
        },
        {
            name:    "bad key",
            status:  http.StatusBadRequest,
            body:    `{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`,
            wantErr: true,
        },
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            var sent string
            srv := newGeminiServer(t, tt.status, tt.body, &sent)
            g, err := NewGemini(context.Background(), "test-key", "gemini-test", WithGeminiBaseURL(srv.URL+"/"))
            if err != nil {
                t.Fatalf("NewGemini() error = %v", err)
            }

            got, err := g.Generate(context.Background(), "Describe it.", Image{MIMEType: "image/png", Data: []byte("png-bytes")})
            if (err != nil) != tt.wantErr {
                t.Fatalf("Generate() error = %v, wantErr %v", err, tt.wantErr)
            }
            if IsRateLimited(err) != tt.wantRateLimit {
                t.Errorf("IsRateLimited(%v) = %v, want %v", err, !tt.wantRateLimit, tt.wantRateLimit)
            }
            if got != tt.want {
                t.Errorf("Generate() = %q, want %q", got, tt.want)
            }
            if !strings.Contains(sent, "Describe it.") || !strings.Contains(sent, `"mimeType":"image/png"`) {
                t.Errorf("request body missing prompt or image: %s", sent)
            }
        })
    }
}

func TestClassifyGeminiErrorPassthrough(t *testing.T) {
    plain := errors.New("dial tcp: connection refused")
    if got := classifyGeminiError(plain); got != plain || IsRateLimited(got) {
        t.Errorf("classifyGeminiError(%v) = %v, want unchanged", plain, got)
    }
}
