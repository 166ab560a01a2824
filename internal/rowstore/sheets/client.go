// Package sheets stores rows in a Google spreadsheet, one worksheet per user,
// through the Sheets v4 API with service-account credentials.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// Options configures the Sheets client. TokenSource, when set, takes
// precedence over CredentialsJSON. Endpoint overrides the API base URL.
type Options struct {
	SpreadsheetID   string
	CredentialsJSON []byte
	TokenSource     oauth2.TokenSource
	Endpoint        string
	Timeout         time.Duration
}

// client binds the Sheets service to one spreadsheet.
type client struct {
	spreadsheetID string
	tokens        oauth2.TokenSource
	svc           *sheetsapi.Service
}

func newClient(ctx context.Context, opts Options) (*client, error) {
	if opts.SpreadsheetID == "" {
		return nil, errors.New("spreadsheet id is required")
	}

	ts := opts.TokenSource
	if ts == nil {
		if len(opts.CredentialsJSON) == 0 {
			return nil, errors.New("service account credentials are required")
		}
		conf, err := google.JWTConfigFromJSON(opts.CredentialsJSON, sheetsapi.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("parsing service account credentials: %w", err)
		}
		ts = conf.TokenSource(ctx)
	}
	ts = oauth2.ReuseTokenSource(nil, ts)

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	httpClient := oauth2.NewClient(ctx, ts)
	httpClient.Timeout = timeout

	clientOpts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if opts.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(strings.TrimRight(opts.Endpoint, "/")+"/"))
	}
	svc, err := sheetsapi.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	return &client{
		spreadsheetID: opts.SpreadsheetID,
		tokens:        ts,
		svc:           svc,
	}, nil
}

// sheetTitles lists the worksheet titles of the spreadsheet.
func (c *client) sheetTitles(ctx context.Context) ([]string, error) {
	doc, err := c.svc.Spreadsheets.Get(c.spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	titles := make([]string, 0, len(doc.Sheets))
	for _, s := range doc.Sheets {
		if s.Properties != nil {
			titles = append(titles, s.Properties.Title)
		}
	}
	return titles, nil
}

func (c *client) getValues(ctx context.Context, a1 string) ([][]string, error) {
	vr, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, a1).
		ValueRenderOption("FORMATTED_VALUE").
		MajorDimension("ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	out := make([][]string, 0, len(vr.Values))
	for _, row := range vr.Values {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = fmt.Sprint(v)
		}
		out = append(out, cells)
	}
	return out, nil
}

// appendValues appends rows after the last row of the table found in a1.
// RAW input keeps values as plain text instead of parsing them as formulas.
func (c *client) appendValues(ctx context.Context, a1 string, rows [][]string) error {
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, a1, &sheetsapi.ValueRange{
		MajorDimension: "ROWS",
		Values:         toCells(rows),
	}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

func (c *client) updateValues(ctx context.Context, a1 string, rows [][]string) error {
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, a1, &sheetsapi.ValueRange{
		Range:          a1,
		MajorDimension: "ROWS",
		Values:         toCells(rows),
	}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	return err
}

func (c *client) addSheet(ctx context.Context, title string) error {
	_, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{
			{AddSheet: &sheetsapi.AddSheetRequest{Properties: &sheetsapi.SheetProperties{Title: title}}},
		},
	}).Context(ctx).Do()
	return err
}

func toCells(rows [][]string) [][]any {
	out := make([][]any, len(rows))
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = v
		}
		out[i] = cells
	}
	return out
}

// a1Range quotes a worksheet title for use in A1 notation.
func a1Range(title, cells string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'!" + cells
}
