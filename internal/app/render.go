package app

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/listings.html
var templateFiles embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFiles, "templates/listings.html"))

// DisplayOptions controls how listings are turned into cards
type DisplayOptions struct {
	ImageURL string
	Dates    DateOptions
}

// PageData is the data handed to the listings page template
type PageData struct {
	Title  string
	Cards  []Card
	Digest string // empty for live pages
}

// BuildCards maps listings to cards in order. Every card shows the configured
// placeholder image, whatever the listing carries.
func BuildCards(listings []Listing, opts DisplayOptions) []Card {
	cards := make([]Card, 0, len(listings))
	for _, l := range listings {
		cards = append(cards, Card{
			Key:      string(l.ID),
			ImageURL: opts.ImageURL,
			Occasion: string(l.Occasion),
			Review:   string(l.Review),
			Location: l.Location(),
			Date:     FormatEventDate(string(l.EventDate), opts.Dates),
		})
	}
	return cards
}

// RenderPage writes the listings page as HTML
func RenderPage(w io.Writer, data PageData) error {
	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("execute listings template: %w", err)
	}
	pageRenders.WithLabelValues("html").Inc()
	return nil
}
