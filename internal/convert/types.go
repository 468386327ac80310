package convert

import (
    "context"
    "log/slog"
    "time"

    "github.com/thywilljoshua/pdf-image-captioner/internal/ai"
)

// NamedImage is an image embedded in a page. Pixels is nil when the
// embedded resource could not be decoded.
type NamedImage struct {
    Name   string
    Pixels *ai.Image
}

// Page is one page of a document with its zero-based index.
type Page struct {
    Index  int
    Text   string
    Images []NamedImage
}

// Document yields pages in document order.
type Document interface {
    Pages() []Page
}

// CaptionResult is a caption produced for one image.
type CaptionResult struct {
    ImageName string
    Caption   string
}

// PageCaptions maps a page index to its captions in image order. Pages
// without any caption have no key.
type PageCaptions map[int][]CaptionResult

// ImageCaptioner returns "" when no caption could be produced.
type ImageCaptioner interface {
    Caption(ctx context.Context, img ai.Image) (string, error)
}

type Config struct {
    Captioner      ImageCaptioner
    MinInterval    time.Duration
    AddPageNumbers bool
    Formatter      Formatter
    Logger         *slog.Logger
}

// Stats summarizes a run.
type Stats struct {
    Pages     int
    Images    int
    Captioned int
    Skipped   int
    Failed    int
}

type Result struct {
    Report string
    Stats  Stats
}
