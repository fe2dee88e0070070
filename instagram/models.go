package instagram

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Typed shapes for the API payloads. Fields the service may omit
// (coordinates, captions, pagination cursors) are pointers or empty strings.

type Meta struct {
	Code int `json:"code"`
}

type Pagination struct {
	NextMaxID string `json:"next_max_id"`
}

type Caption struct {
	Text string `json:"text"`
}

type AccountRef struct {
	ID string `json:"id"`
}

func (a AccountRef) NumericID() (int64, error) {
	return strconv.ParseInt(a.ID, 10, 64)
}

type Location struct {
	ID        json.Number `json:"id"`
	Name      string      `json:"name"`
	Latitude  *float64    `json:"latitude"`
	Longitude *float64    `json:"longitude"`
}

func (l *Location) NumericID() (int64, error) {
	return strconv.ParseInt(l.ID.String(), 10, 64)
}

// HasCoordinates reports whether the location carries a usable geotag.
func (l *Location) HasCoordinates() bool {
	return l != nil && l.Latitude != nil && l.Longitude != nil
}

type Media struct {
	ID          string     `json:"id"`
	CreatedTime string     `json:"created_time"`
	Caption     *Caption   `json:"caption"`
	Tags        []string   `json:"tags"`
	Type        string     `json:"type"`
	User        AccountRef `json:"user"`
	Location    *Location  `json:"location"`
}

// NumericID returns the canonical media id. The service embeds a secondary
// identifier after an underscore in the raw key; only the prefix counts.
func (m *Media) NumericID() (int64, error) {
	raw, _, _ := strings.Cut(m.ID, "_")
	return strconv.ParseInt(raw, 10, 64)
}

// PostedAt parses the unix-seconds creation timestamp.
func (m *Media) PostedAt() (time.Time, error) {
	seconds, err := strconv.ParseInt(m.CreatedTime, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(seconds, 0), nil
}

// CaptionText returns the caption body, empty when absent.
func (m *Media) CaptionText() string {
	if m.Caption == nil {
		return ""
	}
	return m.Caption.Text
}

type recentResponse struct {
	Meta       Meta       `json:"meta"`
	Pagination Pagination `json:"pagination"`
	Data       []Media    `json:"data"`
}

type followersResponse struct {
	Meta Meta         `json:"meta"`
	Data []AccountRef `json:"data"`
}

type searchResponse struct {
	Meta Meta    `json:"meta"`
	Data []Media `json:"data"`
}
