// Package textwrap fills and indents plain text for fixed-width reports.
package textwrap

import (
    "strings"

    "github.com/charmbracelet/x/ansi"
)

const tabSize = 8

// Fill wraps s into lines of at most width cells joined by "\n". Every
// whitespace character becomes a single space first, tabs expanding to the
// next multiple of eight columns, so runs of spaces inside a line survive.
// Lines break at spaces and after hyphens. Words longer than width are split.
// Whitespace at the ends of each line is dropped.
func Fill(s string, width int) string {
    s = normalizeWhitespace(s)
    if strings.TrimSpace(s) == "" {
        return ""
    }
    if width < 1 {
        width = 1
    }
    lines := strings.Split(ansi.Wrap(s, width, ""), "\n")
    out := lines[:0]
    for _, l := range lines {
        l = strings.TrimRight(l, " ")
        if len(out) > 0 {
            l = strings.TrimLeft(l, " ")
        }
        if l == "" {
            continue
        }
        out = append(out, l)
    }
    return strings.Join(out, "\n")
}

func normalizeWhitespace(s string) string {
    var b strings.Builder
    col := 0
    for _, r := range s {
        switch r {
        case '\t':
            n := tabSize - col%tabSize
            b.WriteString(strings.Repeat(" ", n))
            col += n
        case '\n', '\r', '\v', '\f':
            b.WriteByte(' ')
            col = 0
        default:
            b.WriteRune(r)
            col++
        }
    }
    return b.String()
}

// Indent prefixes every line of s that contains non-whitespace characters.
// Blank lines are left untouched, line endings are preserved.
func Indent(s, prefix string) string {
    var b strings.Builder
    for _, line := range strings.SplitAfter(s, "\n") {
        if strings.TrimSpace(line) != "" {
            b.WriteString(prefix)
        }
        b.WriteString(line)
    }
    return b.String()
}
