package main

import (
	"os"

	"github.com/joho/godotenv"
)

// version is set by goreleaser at build time.
var version = "dev"

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
