package convert

import (
    "context"
    "errors"
    "log/slog"
)

// Run reads the PDF at pdfPath, captions its images and renders the report.
// The document is fully read before the first captioning request.
func Run(ctx context.Context, pdfPath string, cfg Config) (Result, error) {
    doc, err := OpenPDF(pdfPath)
    if err != nil {
        return Result{}, err
    }
    return RunDocument(ctx, doc, cfg)
}

// RunDocument is Run over an already opened document.
func RunDocument(ctx context.Context, doc Document, cfg Config) (Result, error) {
    if cfg.Captioner == nil {
        return Result{}, errors.New("convert: no captioner configured")
    }
    logger := cfg.Logger
    if logger == nil {
        logger = slog.Default()
    }
    formatter := cfg.Formatter
    if formatter == nil {
        formatter = DefaultFormatter{AddPageNumbers: cfg.AddPageNumbers}
    }

    pageImages := ExtractImages(doc, logger)
    texts := PageTexts(doc)

    captions, err := GenerateCaptions(ctx, pageImages, cfg.Captioner, CaptionOptions{
        MinInterval: cfg.MinInterval,
        Logger:      logger,
    })
    if err != nil {
        return Result{}, err
    }

    report, err := formatter.Format(texts, captions)
    if err != nil {
        return Result{}, err
    }
    return Result{Report: report, Stats: summarize(pageImages, captions, len(texts))}, nil
}

func summarize(pageImages map[int][]NamedImage, captions PageCaptions, pages int) Stats {
    s := Stats{Pages: pages}
    for _, imgs := range pageImages {
        for _, img := range imgs {
            s.Images++
            if img.Pixels == nil {
                s.Skipped++
            }
        }
    }
    for _, caps := range captions {
        s.Captioned += len(caps)
    }
    s.Failed = s.Images - s.Skipped - s.Captioned
    return s
}
