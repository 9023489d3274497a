// Command journalkit is the entry point for the JournalKit CLI.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/journalkit/journalkit/internal/adapters/driving/cli"
)

func main() {
	// Optional .env in the working directory, useful during development
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
