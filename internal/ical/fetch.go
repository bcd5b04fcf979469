package ical

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

// DefaultMaxBytes caps accepted calendar payloads at 512 KiB.
const DefaultMaxBytes = 512 * 1024

// Fetcher reads raw calendar text from uploads or subscription URLs and
// performs the basic acceptance checks before the text reaches the parser.
// It never retries; a failed fetch is reported to the caller as-is.
type Fetcher struct {
	client   *resty.Client
	maxBytes int
}

// NewFetcher creates a Fetcher with the given payload size cap. A cap of
// zero or less falls back to DefaultMaxBytes.
func NewFetcher(maxBytes int) *Fetcher {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	client := resty.New().
		SetTimeout(15 * time.Second).
		SetHeader("Accept", "text/calendar, text/plain")
	return &Fetcher{client: client, maxBytes: maxBytes}
}

// FetchURL downloads calendar text from url and validates it.
func (f *Fetcher) FetchURL(ctx context.Context, url string) (string, error) {
	if url == "" {
		return "", fmt.Errorf("calendar url is empty")
	}

	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		log.Warn().Err(err).Str("url", url).Msg("calendar fetch failed")
		return "", fmt.Errorf("fetching calendar: %w", err)
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("calendar fetch returned status %d", resp.StatusCode())
	}

	content := string(resp.Body())
	if err := f.Validate(content); err != nil {
		return "", err
	}
	return content, nil
}

// Validate applies the acceptance checks to already-read calendar text:
// non-empty, within the size cap, and shaped like calendar data.
func (f *Fetcher) Validate(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("calendar content is empty")
	}
	if len(content) > f.maxBytes {
		return fmt.Errorf("calendar content exceeds %d bytes", f.maxBytes)
	}
	if !LooksLikeCalendar(content) {
		return fmt.Errorf("content does not look like calendar data")
	}
	return nil
}

// LooksLikeCalendar is a cheap sanity check for calendar-shaped text.
func LooksLikeCalendar(content string) bool {
	upper := strings.ToUpper(content)
	return strings.Contains(upper, "BEGIN:VCALENDAR") || strings.Contains(upper, beginEvent)
}
