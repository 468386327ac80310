package main

import (
    "fmt"
    "io"
    "strings"

    "github.com/spf13/cobra"

    "github.com/thywilljoshua/pdf-image-captioner/internal/ai"
    "github.com/thywilljoshua/pdf-image-captioner/internal/textwrap"
)

const promptsWidth = 80

func promptsCmd() *cobra.Command {
    return &cobra.Command{
        Use:   "prompts",
        Short: "Print the prompts used to caption images",
        Args:  cobra.NoArgs,
        RunE: func(cmd *cobra.Command, args []string) error {
            return writePrompts(cmd.OutOrStdout(), ai.DefaultPrompts())
        },
    }
}

func writePrompts(w io.Writer, prompts ai.PromptPool) error {
    var b strings.Builder
    b.WriteString("Prompts:\n")
    for _, p := range prompts {
        b.WriteString(strings.Repeat("-", promptsWidth))
        b.WriteString("\n")
        b.WriteString(textwrap.Fill(p, promptsWidth))
        b.WriteString("\n")
    }
    _, err := fmt.Fprint(w, b.String())
    return err
}
