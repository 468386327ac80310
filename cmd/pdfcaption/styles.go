package main

import (
    "fmt"
    "io"
    "time"

    "github.com/charmbracelet/lipgloss"

    "github.com/thywilljoshua/pdf-image-captioner/internal/convert"
)

var (
    colorSuccess = lipgloss.AdaptiveColor{Light: "#10B981", Dark: "#34D399"}
    colorWarning = lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#FBBF24"}
    colorError   = lipgloss.AdaptiveColor{Light: "#EF4444", Dark: "#F87171"}
    colorMuted   = lipgloss.AdaptiveColor{Light: "#94A3B8", Dark: "#64748B"}

    successStyle = lipgloss.NewStyle().Bold(true).Foreground(colorSuccess)
    warningStyle = lipgloss.NewStyle().Foreground(colorWarning)
    errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorError)
    mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
)

func printError(w io.Writer, err error) {
    fmt.Fprintln(w, errorStyle.Render("error:"), err)
}

// printSummary writes a one-line run summary, plus a warning line when some
// images did not get a caption.
func printSummary(w io.Writer, st convert.Stats, out string, elapsed time.Duration) {
    dest := "stdout"
    if out != "" {
        dest = out
    }
    fmt.Fprintf(w, "%s %d pages, %d/%d images captioned %s\n",
        successStyle.Render("done:"),
        st.Pages, st.Captioned, st.Images,
        mutedStyle.Render(fmt.Sprintf("(%s, wrote %s)", elapsed.Round(time.Millisecond), dest)))
    if st.Skipped > 0 || st.Failed > 0 {
        fmt.Fprintln(w, warningStyle.Render(fmt.Sprintf("%d images could not be loaded, %d got no caption", st.Skipped, st.Failed)))
    }
}
