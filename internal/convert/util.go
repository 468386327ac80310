package convert

import (
    "log/slog"
    "sort"
)

// ExtractImages projects a document onto its images: every page index maps
// to the page's images in document order, possibly none. Images that could
// not be decoded keep their slot with nil Pixels.
func ExtractImages(doc Document, logger *slog.Logger) map[int][]NamedImage {
    if logger == nil {
        logger = slog.Default()
    }
    out := map[int][]NamedImage{}
    for _, p := range doc.Pages() {
        imgs := make([]NamedImage, len(p.Images))
        copy(imgs, p.Images)
        if len(imgs) > 0 {
            logger.Info("found images on page", "page", p.Index, "count", len(imgs))
        } else {
            logger.Info("no images found on page", "page", p.Index)
        }
        out[p.Index] = imgs
    }
    return out
}

// PageTexts returns the extracted text of every page in index order.
func PageTexts(doc Document) []string {
    pages := doc.Pages()
    sort.SliceStable(pages, func(i, j int) bool { return pages[i].Index < pages[j].Index })
    out := make([]string, len(pages))
    for i, p := range pages {
        out[i] = p.Text
    }
    return out
}

func sortedPages[T any](m map[int]T) []int {
    keys := make([]int, 0, len(m))
    for k := range m {
        keys = append(keys, k)
    }
    sort.Ints(keys)
    return keys
}
