package app

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Text is a listing field rendered as plain text. Any JSON scalar decodes
// to its textual form; null and missing fields stay empty.
type Text string

// UnmarshalJSON accepts strings, numbers and booleans
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	// Numbers, booleans and nested values keep their JSON spelling
	*t = Text(data)
	return nil
}

func (t Text) String() string { return string(t) }

// Listing represents a single event listing as served by the listings service
type Listing struct {
	ID        Text `json:"id"`
	Occasion  Text `json:"occasion"`
	Review    Text `json:"review"`
	City      Text `json:"city"`
	State     Text `json:"state"`
	Country   Text `json:"country"`
	EventDate Text `json:"event_date"`
}

// Location joins city, state and country with single spaces. Missing parts
// are not trimmed away.
func (l Listing) Location() string {
	return strings.Join([]string{string(l.City), string(l.State), string(l.Country)}, " ")
}

// Card is the display model of one listing in the grid
type Card struct {
	Key      string
	ImageURL string
	Occasion string
	Review   string
	Location string
	Date     string
}
