package config

import (
    "errors"
    "fmt"
    "math"
    "os"
    "strconv"
    "strings"
    "time"

    "github.com/joho/godotenv"
    "github.com/spf13/viper"

    "github.com/thywilljoshua/pdf-image-captioner/internal/ai"
)

const (
    DefaultEnvFile = "config/.env"

    BackendGemini = "gemini"
    BackendOpenAI = "openai"
    BackendNoop   = "noop"
)

// Environment keys.
const (
    KeyGoogleAPIKey  = "GOOGLE_API_KEY"
    KeyModelName     = "GENERATIVE_MODEL_NAME"
    KeyMaxTries      = "BACKOFF_MAX_TRIES"
    KeyMaxTime       = "BACKOFF_MAX_TIME"
    KeyBackend       = "CAPTION_BACKEND"
    KeyOpenAIAPIKey  = "OPENAI_API_KEY"
    KeyOpenAIBaseURL = "OPENAI_BASE_URL"
)

// maxSeconds is the longest BACKOFF_MAX_TIME a time.Duration can hold.
const maxSeconds = float64(math.MaxInt64 / int64(time.Second))

var ErrMissingAPIKey = errors.New("missing API key")

// Settings are the environment-sourced settings of a run.
type Settings struct {
    Backend       string
    GoogleAPIKey  string
    ModelName     string
    OpenAIAPIKey  string
    OpenAIBaseURL string

    // Zero means unbounded.
    BackoffMaxTries int
    BackoffMaxTime  time.Duration
}

// Load reads envFile into the process environment if it exists, then
// resolves settings from the environment. Variables already set in the
// environment win over the file.
func Load(envFile string) (*Settings, error) {
    if envFile == "" {
        envFile = DefaultEnvFile
    }
    if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
        return nil, fmt.Errorf("error reading env file %s: %w", envFile, err)
    }
    return FromViper(newViper())
}

func newViper() *viper.Viper {
    v := viper.New()
    v.SetDefault(KeyBackend, BackendGemini)
    v.AutomaticEnv()
    for _, k := range []string{KeyGoogleAPIKey, KeyModelName, KeyMaxTries, KeyMaxTime, KeyBackend, KeyOpenAIAPIKey, KeyOpenAIBaseURL} {
        _ = v.BindEnv(k)
    }
    return v
}

// FromViper validates and converts the raw values held by v.
func FromViper(v *viper.Viper) (*Settings, error) {
    s := &Settings{
        Backend:       strings.ToLower(strings.TrimSpace(v.GetString(KeyBackend))),
        GoogleAPIKey:  strings.TrimSpace(v.GetString(KeyGoogleAPIKey)),
        ModelName:     strings.TrimSpace(v.GetString(KeyModelName)),
        OpenAIAPIKey:  strings.TrimSpace(v.GetString(KeyOpenAIAPIKey)),
        OpenAIBaseURL: strings.TrimSpace(v.GetString(KeyOpenAIBaseURL)),
    }

    switch s.Backend {
    case BackendGemini:
        if s.GoogleAPIKey == "" {
            return nil, fmt.Errorf("%w: %s is not set", ErrMissingAPIKey, KeyGoogleAPIKey)
        }
        if s.ModelName == "" {
            s.ModelName = ai.DefaultGeminiModel
        }
    case BackendOpenAI:
        if s.OpenAIAPIKey == "" {
            return nil, fmt.Errorf("%w: %s is not set", ErrMissingAPIKey, KeyOpenAIAPIKey)
        }
        if s.ModelName == "" {
            s.ModelName = ai.DefaultOpenAIModel
        }
    case BackendNoop:
    default:
        return nil, fmt.Errorf("invalid %s %q: want %s, %s or %s", KeyBackend, s.Backend, BackendGemini, BackendOpenAI, BackendNoop)
    }

    if raw := strings.TrimSpace(v.GetString(KeyMaxTries)); raw != "" {
        n, err := strconv.Atoi(raw)
        if err != nil || n < 0 {
            return nil, fmt.Errorf("invalid %s %q: want a non-negative integer", KeyMaxTries, raw)
        }
        s.BackoffMaxTries = n
    }
    if raw := strings.TrimSpace(v.GetString(KeyMaxTime)); raw != "" {
        secs, err := strconv.ParseFloat(raw, 64)
        if err != nil || secs < 0 || math.IsNaN(secs) || secs > maxSeconds {
            return nil, fmt.Errorf("invalid %s %q: want non-negative seconds up to %.0f", KeyMaxTime, raw, maxSeconds)
        }
        s.BackoffMaxTime = time.Duration(secs * float64(time.Second))
    }
    return s, nil
}
