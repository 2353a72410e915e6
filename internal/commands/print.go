package commands

import (
	"flag"
	"fmt"
	"os"

	"github.com/klabast/wb-services/listings-view/internal/app"
	"golang.org/x/term"
)

const defaultTextWidth = 80

// Print handles the print subcommand
func Print(args []string) {
	fs := flag.NewFlagSet("print", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config file")
	width := fs.Int("width", 0, "Output width in columns (default: terminal width)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: listings-view print [OPTIONS]\n\n")
		fmt.Fprintf(os.Stderr, "Fetches the listings once and prints them as a card grid.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	cfg, view := mountOnce(*cfgPath)
	cards := app.BuildCards(view.Listings(), cfg.View.DisplayOptions())

	w := *width
	if w <= 0 {
		w = terminalWidth()
	}
	if err := app.RenderText(os.Stdout, cards, w); err != nil {
		fmt.Fprintf(os.Stderr, "Error printing listings: %v\n", err)
		os.Exit(1)
	}
}

// terminalWidth returns the width of stdout, or a fixed width when stdout
// is not a terminal
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultTextWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return defaultTextWidth
	}
	return w
}
