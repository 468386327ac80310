package ai

import (
    "context"
    "encoding/base64"
    "errors"
    "net/http"
    "time"

    openai "github.com/openai/openai-go/v3"
    "github.com/openai/openai-go/v3/option"
)

const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAI captions images through any OpenAI-compatible chat completions
// endpoint that accepts image_url content parts.
type OpenAI struct {
    client openai.Client
    model  string
}

type OpenAIConfig struct {
    APIKey     string
    Model      string
    BaseURL    string
    HTTPClient *http.Client
}

func NewOpenAI(cfg OpenAIConfig) (*OpenAI, error) {
    if cfg.APIKey == "" {
        return nil, errors.New("missing OPENAI_API_KEY")
    }
    if cfg.Model == "" {
        cfg.Model = DefaultOpenAIModel
    }
    httpClient := cfg.HTTPClient
    if httpClient == nil {
        httpClient = &http.Client{Timeout: 300 * time.Second}
    }
    // Throttling is retried by Captioner, so the SDK must not retry on its own.
    opts := []option.RequestOption{
        option.WithAPIKey(cfg.APIKey),
        option.WithHTTPClient(httpClient),
        option.WithMaxRetries(0),
    }
    if cfg.BaseURL != "" {
        opts = append(opts, option.WithBaseURL(cfg.BaseURL))
    }
    return &OpenAI{client: openai.NewClient(opts...), model: cfg.Model}, nil
}

func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) Generate(ctx context.Context, prompt string, img Image) (string, error) {
    dataURL := "data:" + img.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
    params := openai.ChatCompletionNewParams{
        Model: openai.ChatModel(o.model),
        Messages: []openai.ChatCompletionMessageParamUnion{
            openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
                openai.TextContentPart(prompt),
                openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{URL: dataURL}),
            }),
        },
    }
    res, err := o.client.Chat.Completions.New(ctx, params)
    if err != nil {
        return "", classifyOpenAIError(err)
    }
    if len(res.Choices) == 0 {
        return "", nil
    }
    msg := res.Choices[0].Message
    if msg.Refusal != "" {
        return "", nil
    }
    return msg.Content, nil
}

func classifyOpenAIError(err error) error {
    var apiErr *openai.Error
    if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
        return &RateLimitError{Backend: "openai", Err: err}
    }
    return err
}
