package ai

import (
    "context"
    "errors"
    "net/http"

    genai "google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.5-flash"

type Gemini struct {
    client *genai.Client
    model  string
}

// GeminiOption adjusts the client config before the client is built.
type GeminiOption func(*genai.ClientConfig)

// WithGeminiBaseURL points the client at a different endpoint (for testing).
func WithGeminiBaseURL(url string) GeminiOption {
    return func(cc *genai.ClientConfig) { cc.HTTPOptions.BaseURL = url }
}

func NewGemini(ctx context.Context, apiKey, model string, opts ...GeminiOption) (*Gemini, error) {
    if apiKey == "" {
        return nil, errors.New("missing GOOGLE_API_KEY")
    }
    if model == "" {
        model = DefaultGeminiModel
    }
    cc := &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI}
    for _, opt := range opts {
        opt(cc)
    }
    c, err := genai.NewClient(ctx, cc)
    if err != nil {
        return nil, err
    }
    return &Gemini{client: c, model: model}, nil
}

func (g *Gemini) Name() string { return "gemini" }

// Generate sends the instruction and the inline image bytes in one user turn.
func (g *Gemini) Generate(ctx context.Context, prompt string, img Image) (string, error) {
    content := &genai.Content{
        Role: genai.RoleUser,
        Parts: []*genai.Part{
            {Text: prompt},
            {InlineData: &genai.Blob{MIMEType: img.MIMEType, Data: img.Data}},
        },
    }
    res, err := g.client.Models.GenerateContent(ctx, g.model, []*genai.Content{content}, nil)
    if err != nil {
        return "", classifyGeminiError(err)
    }
    // Blocked prompts and safety-filtered candidates come back without parts.
    if len(res.Candidates) == 0 || res.Candidates[0].Content == nil || len(res.Candidates[0].Content.Parts) == 0 {
        return "", nil
    }
    return res.Text(), nil
}

func classifyGeminiError(err error) error {
    var apiErr genai.APIError
    var apiErrPtr *genai.APIError
    switch {
    case errors.As(err, &apiErr):
    case errors.As(err, &apiErrPtr) && apiErrPtr != nil:
        apiErr = *apiErrPtr
    default:
        return err
    }
    if apiErr.Code == http.StatusTooManyRequests || apiErr.Status == "RESOURCE_EXHAUSTED" {
        return &RateLimitError{Backend: "gemini", Err: err}
    }
    return err
}
