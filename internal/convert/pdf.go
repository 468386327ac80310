package convert

import (
    "fmt"
    "io"
    "math"
    "os"
    "sort"
    "strings"

    "github.com/pdfcpu/pdfcpu/pkg/api"
    "github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
    "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
    "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
    rpdf "rsc.io/pdf"
)

func init() {
    // Keep pdfcpu from creating a config directory under the user's home.
    model.ConfigPath = "disable"
}

// PDFDocument is a PDF read fully into memory: per-page text through
// rsc.io/pdf and embedded images through pdfcpu.
type PDFDocument struct {
    pages []Page
}

// OpenPDF reads every page of the PDF at path. Any failure to read the file
// or parse its structure is returned before captioning can begin. A single
// image that fails to decode is kept with nil Pixels.
func OpenPDF(path string) (*PDFDocument, error) {
    f, err := os.Open(path)
    if err != nil {
        return nil, err
    }
    defer f.Close()
    st, err := f.Stat()
    if err != nil {
        return nil, err
    }

    texts, err := extractTextPerPage(f, st.Size())
    if err != nil {
        return nil, fmt.Errorf("invalid document %s: %w", path, err)
    }
    if _, err := f.Seek(0, io.SeekStart); err != nil {
        return nil, err
    }
    images, err := extractImages(f)
    if err != nil {
        return nil, fmt.Errorf("extract images from %s: %w", path, err)
    }

    pages := make([]Page, len(texts))
    for i, t := range texts {
        pages[i] = Page{Index: i, Text: t, Images: images[i]}
    }
    return &PDFDocument{pages: pages}, nil
}

func (d *PDFDocument) Pages() []Page {
    out := make([]Page, len(d.pages))
    copy(out, d.pages)
    return out
}

func extractTextPerPage(r io.ReaderAt, size int64) (pages []string, err error) {
    // rsc.io/pdf panics on malformed objects instead of returning errors.
    defer func() {
        if p := recover(); p != nil {
            err = fmt.Errorf("malformed pdf: %v", p)
        }
    }()
    doc, err := rpdf.NewReader(r, size)
    if err != nil {
        return nil, err
    }
    n := doc.NumPage()
    pages = make([]string, n)
    for i := 1; i <= n; i++ {
        p := doc.Page(i)
        if p.V.IsNull() {
            continue
        }
        runs := p.Content().Text
        if len(runs) > 0 && !hasWidths(runs) {
            pages[i-1] = streamText(p)
            continue
        }
        pages[i-1] = layoutText(runs)
    }
    return pages, nil
}

// hasWidths reports whether any run carries a glyph width. Fonts without a
// /Widths array (unembedded standard fonts) report zero for every glyph, and
// rsc.io/pdf then places all glyphs of a string at the same X.
func hasWidths(runs []rpdf.Text) bool {
    for _, t := range runs {
        if t.W > 0 {
            return true
        }
    }
    return false
}

// wordGap is the horizontal gap, as a fraction of the font size, from which
// two runs are treated as separate words. Most fonts set the space glyph at
// 0.25 to 0.28 em.
const wordGap = 0.2

// layoutText rebuilds lines from positioned glyph runs: runs sharing a
// baseline form a line, lines go top to bottom, runs left to right.
func layoutText(runs []rpdf.Text) string {
    if len(runs) == 0 {
        return ""
    }
    type line struct {
        y    float64
        runs []rpdf.Text
    }
    var lines []*line
    for _, t := range runs {
        var cur *line
        for _, l := range lines {
            if math.Abs(l.y-t.Y) <= baselineTolerance(t.FontSize) {
                cur = l
                break
            }
        }
        if cur == nil {
            cur = &line{y: t.Y}
            lines = append(lines, cur)
        }
        cur.runs = append(cur.runs, t)
    }
    sort.SliceStable(lines, func(i, j int) bool { return lines[i].y > lines[j].y })

    out := make([]string, 0, len(lines))
    for _, l := range lines {
        sort.SliceStable(l.runs, func(i, j int) bool { return l.runs[i].X < l.runs[j].X })
        var b strings.Builder
        end := math.Inf(-1)
        for _, t := range l.runs {
            if b.Len() > 0 && t.X-end >= t.FontSize*wordGap && !strings.HasPrefix(t.S, " ") {
                b.WriteByte(' ')
            }
            b.WriteString(t.S)
            end = t.X + t.W
        }
        out = append(out, strings.TrimRight(b.String(), " "))
    }
    return strings.Join(out, "\n")
}

func baselineTolerance(fontSize float64) float64 {
    if fontSize <= 0 {
        return 1
    }
    return fontSize * 0.3
}

// streamText reads the text operators of p in content order, keeping the
// spaces inside shown strings. Line moves and text objects start new lines,
// TJ adjustments of a fifth of an em or more become spaces.
func streamText(p rpdf.Page) string {
    var b strings.Builder
    var enc rpdf.TextEncoding
    space := func() {
        s := b.String()
        if s != "" && !strings.HasSuffix(s, " ") && !strings.HasSuffix(s, "\n") {
            b.WriteByte(' ')
        }
    }
    newline := func() {
        s := strings.TrimRight(b.String(), " ")
        if s != "" && !strings.HasSuffix(s, "\n") {
            b.Reset()
            b.WriteString(s)
            b.WriteByte('\n')
        }
    }
    show := func(v rpdf.Value) {
        raw := v.RawString()
        if enc == nil {
            enc = p.Font("").Encoder()
        }
        b.WriteString(enc.Decode(raw))
    }

    rpdf.Interpret(p.V.Key("Contents"), func(stk *rpdf.Stack, op string) {
        args := make([]rpdf.Value, stk.Len())
        for i := len(args) - 1; i >= 0; i-- {
            args[i] = stk.Pop()
        }
        switch op {
        case "Tf":
            if len(args) == 2 {
                enc = p.Font(args[0].Name()).Encoder()
            }
        case "Tj":
            if len(args) == 1 {
                show(args[0])
            }
        case "'", "\"":
            newline()
            if len(args) > 0 {
                show(args[len(args)-1])
            }
        case "TJ":
            if len(args) != 1 {
                return
            }
            for i := 0; i < args[0].Len(); i++ {
                x := args[0].Index(i)
                if x.Kind() == rpdf.String {
                    show(x)
                } else if -x.Float64() >= wordGap*1000 {
                    space()
                }
            }
        case "Td", "TD":
            if len(args) == 2 && args[1].Float64() != 0 {
                newline()
            } else {
                space()
            }
        case "T*", "ET":
            newline()
        }
    })
    return strings.TrimRight(b.String(), " \n")
}

// extractImages returns the embedded images of every page keyed by
// zero-based page index, ordered by object number within a page. Page
// thumbnails are not included.
func extractImages(rs io.ReadSeeker) (map[int][]NamedImage, error) {
    conf := model.NewDefaultConfiguration()
    conf.ValidationMode = model.ValidationRelaxed
    conf.Cmd = model.EXTRACTIMAGES
    ctx, err := api.ReadValidateAndOptimize(rs, conf)
    if err != nil {
        return nil, err
    }

    out := map[int][]NamedImage{}
    for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
        objNrs := pdfcpu.ImageObjNrs(ctx, pageNr)
        sort.Ints(objNrs)
        for _, objNr := range objNrs {
            obj := ctx.Optimize.ImageObjects[objNr]
            if obj == nil || obj.ImageDict == nil {
                continue
            }
            out[pageNr-1] = append(out[pageNr-1], renderImage(ctx, obj, pageNr, objNr))
        }
    }
    return out, nil
}

// renderImage extracts a single image object. Decode and render failures
// leave Pixels nil so the image is skipped later instead of failing the run.
func renderImage(ctx *model.Context, obj *model.ImageObject, pageNr, objNr int) (ni NamedImage) {
    resource := obj.ResourceNames[pageNr-1]
    ni.Name = resource + "." + guessFileType(obj.ImageDict)
    defer func() {
        if recover() != nil {
            ni.Pixels = nil
        }
    }()

    img, err := pdfcpu.ExtractImage(ctx, obj.ImageDict, false, resource, objNr, false)
    if err != nil || img == nil || img.Reader == nil {
        return ni
    }
    if img.FileType != "" {
        ni.Name = resource + "." + img.FileType
    }
    data, err := io.ReadAll(img.Reader)
    if err != nil {
        return ni
    }
    ni.Pixels = decodeImage(data)
    return ni
}

// guessFileType names the format pdfcpu would have written for sd, for
// images that could not be rendered.
func guessFileType(sd *types.StreamDict) string {
    if n := len(sd.FilterPipeline); n > 0 {
        switch sd.FilterPipeline[n-1].Name {
        case "DCTDecode":
            return "jpg"
        case "JPXDecode":
            return "jpx"
        }
    }
    return "png"
}
