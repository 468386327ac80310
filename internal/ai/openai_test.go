package ai

import (
    "context"
    "io"
    "net/http"
    "net/http/httptest"
    "strings"
    "sync/atomic"
    "testing"
)

func TestOpenAIGenerate(t *testing.T) {
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
            body:   `{"id":"c1","object":"chat.completion","created":1,"model":"m","choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"This image displays: a chart.","refusal":""}}]}`,
            want:   "This image displays: a chart.",
        },
        {
            name:   "refusal",
            status: http.StatusOK,
            body:   `{"id":"c2","object":"chat.completion","created":1,"model":"m","choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"","refusal":"I can't help with that."}}]}`,
            want:   "",
        },
        {
            name:   "no choices",
            status: http.StatusOK,
            body:   `{"id":"c3","object":"chat.completion","created":1,"model":"m","choices":[]}`,
            want:   "",
        },
        {
            name:          "rate limited",
            status:        http.StatusTooManyRequests,
            body:          `{"error":{"message":"Rate limit reached","type":"requests","code":"rate_limit_exceeded"}}`,
            wantErr:       true,
            wantRateLimit: true,
        },
        {
            name:    "unauthorized",
            status:  http.StatusUnauthorized,
            body:    `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error","code":"invalid_api_key"}}`,
            wantErr: true,
        },
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            var hits atomic.Int32
            var sent string
            srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
                hits.Add(1)
                b, _ := io.ReadAll(r.Body)
                sent = string(b)
                w.Header().Set("Content-Type", "application/json")
                w.WriteHeader(tt.status)
                _, _ = io.WriteString(w, tt.body)
            }))
            defer srv.Close()

            o, err := NewOpenAI(OpenAIConfig{APIKey: "sk-test", Model: "gpt-test", BaseURL: srv.URL + "/"})
            if err != nil {
                t.Fatalf("NewOpenAI() error = %v", err)
            }
            got, err := o.Generate(context.Background(), "Describe it.", Image{MIMEType: "image/jpeg", Data: []byte{0xff, 0xd8}})
            if (err != nil) != tt.wantErr {
                t.Fatalf("Generate() error = %v, wantErr %v", err, tt.wantErr)
            }
            if IsRateLimited(err) != tt.wantRateLimit {
                t.Errorf("IsRateLimited(%v) = %v, want %v", err, !tt.wantRateLimit, tt.wantRateLimit)
            }
            if got != tt.want {
                t.Errorf("Generate() = %q, want %q", got, tt.want)
            }
            if n := hits.Load(); n != 1 {
                t.Errorf("server hits = %d, want 1 (SDK retries must be off)", n)
            }
            if !strings.Contains(sent, "data:image/jpeg;base64,") {
                t.Errorf("request body missing data URL: %s", sent)
            }
        })
    }
}

func TestNewOpenAIRequiresKey(t *testing.T) {
    if _, err := NewOpenAI(OpenAIConfig{}); err == nil {
        t.Fatal("NewOpenAI() without key: want error")
    }
}
