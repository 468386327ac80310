package textwrap

import "testing"

func TestFill(t *testing.T) {
    tests := []struct {
        name  string
        in    string
        width int
        want  string
    }{
        {"short", "A cat.", 53, "A cat."},
        {"empty", "   ", 10, ""},
        {"greedy", "the quick brown fox jumps", 10, "the quick\nbrown fox\njumps"},
        {"exact width", "abcde fghij", 5, "abcde\nfghij"},
        {"long word", "abcdefghijk", 5, "abcde\nfghij\nk"},
        {"long word after text", "ab cdefghij", 5, "ab\ncdefg\nhij"},
        {"breaks after hyphen", "the quick brown fox jumps over the lazy-dog-and-cat", 40, "the quick brown fox jumps over the lazy-\ndog-and-cat"},
        {"keeps inner spaces", "This image displays:  two cats.  One is black.", 53, "This image displays:  two cats.  One is black."},
        {"newlines become spaces", "a\nb\r\nc", 10, "a b  c"},
        {"tabs expand", "a\tb", 20, "a       b"},
        {"spaces dropped at breaks", "aaaa   bbbb", 5, "aaaa\nbbbb"},
        {"trailing space dropped", "a  ", 10, "a"},
        {"multibyte", "ééé ééé", 3, "ééé\nééé"},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            if got := Fill(tt.in, tt.width); got != tt.want {
                t.Errorf("Fill(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
            }
        })
    }
}

func TestIndent(t *testing.T) {
    tests := []struct {
        in, want string
    }{
        {"a\nb", "  a\n  b"},
        {"\n\na\n\n", "\n\n  a\n\n"},
        {"a\n   \nb\n", "  a\n   \n  b\n"},
        {"", ""},
    }
    for _, tt := range tests {
        if got := Indent(tt.in, "  "); got != tt.want {
            t.Errorf("Indent(%q) = %q, want %q", tt.in, got, tt.want)
        }
    }
}
