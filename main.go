// Package main provides the entry point for the Print Studio application.
package main

import (
	"log"
	"os"
	"path/filepath"

	"print-studio/internal/app"
	"print-studio/internal/cart"
	"print-studio/internal/version"
	"print-studio/ui/prefs"
	"print-studio/ui/studio"

	fyneapp "fyne.io/fyne/v2/app"
)

const appTitle = "Print Studio"

const (
	viewportWidth  = 560
	viewportHeight = 560
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s %s", appTitle, version.String())

	fyneApp := fyneapp.NewWithID("print-studio")
	appPrefs := prefs.Load()

	store, err := cart.NewStore(cartPath())
	if err != nil {
		log.Fatalf("Failed to open cart store: %v", err)
	}

	state := app.NewState(store, viewportWidth, viewportHeight)

	win := studio.New(fyneApp, state, appPrefs)

	// Handle command line arguments
	if len(os.Args) > 1 {
		sessionPath := os.Args[1]
		if err := state.LoadSession(sessionPath); err != nil {
			log.Printf("Failed to load session %s: %v", sessionPath, err)
		}
	}

	win.ShowAndRun()

	if err := state.Close(); err != nil {
		log.Printf("Shutdown: %v", err)
	}
}

// cartPath returns the on-disk location of the cart database, creating
// the config directory if needed.
func cartPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "cart.db"
	}
	dir = filepath.Join(dir, "print-studio")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("Config dir: %v", err)
		return "cart.db"
	}
	return filepath.Join(dir, "cart.db")
}
