// Command matrix renders the portfolio hero in a terminal: rain, name, typewriter and skill meters.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gdamore/tcell/v2"

	"github.com/Zachkp/cyber-portfolio/internal/config"
	"github.com/Zachkp/cyber-portfolio/internal/content"
	"github.com/Zachkp/cyber-portfolio/internal/effects"
	"github.com/Zachkp/cyber-portfolio/internal/theme"
)

const appName = "cyber_portfolio"

var (
	configFlag  = flag.String("config", os.Getenv("PORTFOLIO_CONFIG"), "YAML config file")
	contentFlag = flag.String("content", "", "portfolio JSON (defaults to the configured path)")
	soundFlag   = flag.Bool("sound", false, "play a click for each typed character")
)

var exit = os.Exit

// fatal restores the terminal and releases the speaker before exiting, since
// os.Exit skips deferred calls.
func fatal(screen tcell.Screen, sound *clicker, format string, args ...any) {
	if screen != nil {
		screen.Fini()
	}
	sound.close()
	fmt.Fprintf(os.Stderr, format, args...)
	exit(1)
}

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	contentPath := cfg.Server.ContentPath
	if *contentFlag != "" {
		contentPath = *contentFlag
	}
	portfolio, err := content.Load(contentPath)
	if err != nil {
		log.Printf("Error loading portfolio content: %v (continuing without it)", err)
	}

	prefs, err := theme.OpenGdataStore(appName)
	if err != nil {
		log.Printf("Theme preference will not persist: %v", err)
	}
	themes, err := theme.NewManager(prefs, theme.Dark)
	if err != nil {
		log.Printf("Error loading theme preference: %v", err)
	}

	sound, err := newClicker(*soundFlag)
	if err != nil {
		// Non-fatal, the client runs without sound
		log.Printf("Audio initialization failed: %v", err)
	}
	defer sound.close()

	screen, err := tcell.NewScreen()
	if err != nil {
		fatal(nil, sound, "Failed to create screen: %v\n", err)
	}
	if err := screen.Init(); err != nil {
		fatal(nil, sound, "Failed to initialize terminal: %v\n", err)
	}

	// Ensure the terminal is restored even if rendering panics
	defer func() {
		if r := recover(); r != nil {
			fatal(screen, sound, "\n\x1b[31mMATRIX CRASHED: %v\x1b[0m\nStack Trace:\n%s\n", r, debug.Stack())
		}
	}()

	c, err := newClient(screen, effects.NewRealClock(), cfg, portfolio, themes, sound)
	if err != nil {
		fatal(screen, sound, "Failed to start: %v\n", err)
	}

	c.run()
	screen.Fini()
}
