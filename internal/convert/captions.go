package convert

import (
    "context"
    "log/slog"
    "time"
)

// CaptionOptions tunes GenerateCaptions.
type CaptionOptions struct {
    // MinInterval is the pause after every backend call. Zero disables it.
    MinInterval time.Duration
    Logger      *slog.Logger
}

// GenerateCaptions captions every decodable image, pages in ascending
// index order and images in page order. Images that cannot be loaded or
// that get no caption are logged and left out; any error returned by the
// captioner aborts the whole run.
func GenerateCaptions(ctx context.Context, pageImages map[int][]NamedImage, captioner ImageCaptioner, opts CaptionOptions) (PageCaptions, error) {
    logger := opts.Logger
    if logger == nil {
        logger = slog.Default()
    }
    captions := PageCaptions{}

    for _, page := range sortedPages(pageImages) {
        for _, img := range pageImages[page] {
            if img.Pixels == nil {
                logger.Warn("image could not be loaded, skipping", "image", img.Name, "page", page)
                continue
            }

            caption, err := captioner.Caption(ctx, *img.Pixels)
            if err != nil {
                return nil, err
            }

            if opts.MinInterval > 0 {
                if err := sleep(ctx, opts.MinInterval); err != nil {
                    return nil, err
                }
            }

            if caption == "" {
                logger.Warn("failed to generate caption", "image", img.Name, "page", page)
                continue
            }
            logger.Debug("captioned image", "image", img.Name, "page", page, "chars", len(caption))
            captions[page] = append(captions[page], CaptionResult{ImageName: img.Name, Caption: caption})
        }
    }
    return captions, nil
}

func sleep(ctx context.Context, d time.Duration) error {
    t := time.NewTimer(d)
    defer t.Stop()
    select {
    case <-ctx.Done():
        return ctx.Err()
    case <-t.C:
        return nil
    }
}
