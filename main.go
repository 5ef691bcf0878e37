package main

import (
	"os"

	"github.com/jamesboyd/powertimer/cmd"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present (silently ignored if missing).
	godotenv.Load()

	os.Exit(cmd.Execute())
}
