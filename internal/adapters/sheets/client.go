// internal/adapters/sheets/client.go
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"golang.org/x/time/rate"

	"hotel_voice/internal/adapters/observability"
	"hotel_voice/internal/domain"
)

const (
	DefaultBaseURL = "https://sheets.googleapis.com/v4"
	scopeSheets    = "https://www.googleapis.com/auth/spreadsheets"
)

var (
	ErrUnauthorized = errors.New("sheets: unauthorized")
	ErrForbidden    = errors.New("sheets: forbidden")
)

// Client appends rows to a Google Sheet through the values:append REST call.
type Client struct {
	base    string
	sheetID string
	rng     string
	hc      *http.Client
	rl      *rate.Limiter
}

type Options struct {
	BaseURL string // defaults to DefaultBaseURL
	SheetID string
	Range   string // A1 notation, defaults to Sheet1!A1
	RPS     float64
	Timeout time.Duration
	HTTP    *http.Client // authorized client; NewFromServiceAccount builds one
}

func New(o Options) (*Client, error) {
	if o.SheetID == "" {
		return nil, fmt.Errorf("sheet id is required")
	}
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	if o.Range == "" {
		o.Range = "Sheet1!A1"
	}
	if o.RPS <= 0 {
		o.RPS = 1
	}
	if o.Timeout <= 0 {
		o.Timeout = 10 * time.Second
	}
	hc := &http.Client{}
	if o.HTTP != nil {
		c := *o.HTTP
		hc = &c
	}
	hc.Timeout = o.Timeout
	return &Client{
		base:    strings.TrimRight(o.BaseURL, "/"),
		sheetID: o.SheetID,
		rng:     o.Range,
		hc:      hc,
		rl:      rate.NewLimiter(rate.Limit(o.RPS), 1),
	}, nil
}

// NewFromServiceAccount authorizes with a service-account JSON key file.
func NewFromServiceAccount(ctx context.Context, keyFile string, o Options) (*Client, error) {
	b, err := os.ReadFile(keyFile)
	if err != nil {
		return nil, fmt.Errorf("read service account file: %w", err)
	}
	conf, err := google.JWTConfigFromJSON(b, scopeSheets)
	if err != nil {
		return nil, fmt.Errorf("parse service account file: %w", err)
	}
	o.HTTP = conf.Client(ctx)
	return New(o)
}

type appendBody struct {
	Values [][]any `json:"values"`
}

// Append writes rec as one new row. Single attempt, no retry.
func (c *Client) Append(ctx context.Context, rec domain.CallRecord) error {
	return c.AppendRow(ctx, rec.Row())
}

func (c *Client) AppendRow(ctx context.Context, row []any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	body, err := json.Marshal(appendBody{Values: [][]any{row}})
	if err != nil {
		return err
	}
	u := fmt.Sprintf("%s/spreadsheets/%s/values/%s:append?valueInputOption=RAW&insertDataOption=INSERT_ROWS",
		c.base, url.PathEscape(c.sheetID), url.PathEscape(c.rng))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "hotel-voice/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("sheets", "values.append", 0, time.Since(start))
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("sheets", "values.append", resp.StatusCode, time.Since(start))

	switch resp.StatusCode {
	case http.StatusOK:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	default:
		// read a small error body for diagnostics
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("sheets: bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
}
