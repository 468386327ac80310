package main

import (
    "context"
    "os"
    "os/signal"
    "syscall"
)

func main() {
    ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
    defer cancel()

    root := rootCmd()
    root.AddCommand(promptsCmd())

    if err := root.ExecuteContext(ctx); err != nil {
        printError(os.Stderr, err)
        os.Exit(1)
    }
}
