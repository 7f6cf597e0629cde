package main

import (
	"os"

	"github.com/wonny/hqs/backend/cmd/hqs/commands"
)

// main is the entry point for the HQS CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/hqs [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
