package convert

import (
    "errors"
    "fmt"
    "strings"

    "github.com/thywilljoshua/pdf-image-captioner/internal/textwrap"
)

const (
    captionWidth  = 53
    captionIndent = "     "
    blockIndent   = "    "
    pageRuleWidth = 80
)

var ErrPageOutOfRange = errors.New("caption page out of range")

// Formatter renders page texts and their captions into a report.
type Formatter interface {
    Format(pages []string, captions PageCaptions) (string, error)
}

// DefaultFormatter appends an attachment block listing the captions to each
// captioned page and separates pages with an 80-column rule.
type DefaultFormatter struct {
    AddPageNumbers bool
}

func (f DefaultFormatter) Format(pages []string, captions PageCaptions) (string, error) {
    docs, err := attachCaptions(pages, captions)
    if err != nil {
        return "", err
    }
    rule := strings.Repeat("-", pageRuleWidth)
    var b strings.Builder
    for i, doc := range docs {
        if f.AddPageNumbers {
            fmt.Fprintf(&b, "Page %d\n", i+1)
        }
        b.WriteString(doc)
        b.WriteString("\n\n")
        b.WriteString(rule)
        b.WriteString("\n\n")
    }
    return b.String(), nil
}

// attachCaptions returns a copy of pages with an attachment block appended
// to every page that has captions.
func attachCaptions(pages []string, captions PageCaptions) ([]string, error) {
    out := make([]string, len(pages))
    copy(out, pages)
    for _, page := range sortedPages(captions) {
        if page < 0 || page >= len(out) {
            return nil, fmt.Errorf("%w: page %d, document has %d pages", ErrPageOutOfRange, page, len(out))
        }
        out[page] += textwrap.Indent(attachment(captions[page]), blockIndent)
    }
    return out, nil
}

func attachment(caps []CaptionResult) string {
    var b strings.Builder
    b.WriteString("\n\n\n---------------- <start of attachment> ----------------\n\n")
    fmt.Fprintf(&b, "This page contains %d images.\n", len(caps))
    b.WriteString("The following are the name of each image and its caption:\n\n")
    for _, c := range caps {
        fmt.Fprintf(&b, "- %s\n", c.ImageName)
        b.WriteString(textwrap.Indent(textwrap.Fill(c.Caption, captionWidth), captionIndent))
        b.WriteString("\n\n")
    }
    b.WriteString("\n\n----------------- <end of attachment> -----------------\n\n")
    return b.String()
}
