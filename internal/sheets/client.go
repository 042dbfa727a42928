// Package sheets publishes leaderboards and registrations to a Google
// Sheets spreadsheet.
package sheets

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"

	"github.com/pmi-competition/portal-api/internal/domain"
)

const (
	SheetOverall = "Overall"
	SheetTeams   = "Teams"
)

type Client struct {
	srv           *sheetsv4.Service
	spreadsheetID string
}

func New(ctx context.Context, serviceAccountJSONPath, spreadsheetID string) (*Client, error) {
	if _, err := os.Stat(serviceAccountJSONPath); err != nil {
		return nil, fmt.Errorf("service account json: %w", err)
	}

	srv, err := sheetsv4.NewService(ctx,
		option.WithCredentialsFile(serviceAccountJSONPath),
		option.WithScopes(sheetsv4.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("sheetsv4.NewService -> %w", err)
	}

	return &Client{srv: srv, spreadsheetID: spreadsheetID}, nil
}

func (c *Client) ExportOverall(ctx context.Context, rankings []domain.OverallRanking) error {
	return c.replaceSheet(ctx, SheetOverall, OverallRows(rankings))
}

func (c *Client) ExportTeams(ctx context.Context, teams []domain.Team, catalog *domain.Catalog) error {
	return c.replaceSheet(ctx, SheetTeams, TeamRows(teams, catalog))
}

// replaceSheet clears every value of sheet and writes rows from A1.
func (c *Client) replaceSheet(ctx context.Context, sheet string, rows [][]interface{}) error {
	_, err := c.srv.Spreadsheets.Values.Clear(c.spreadsheetID, sheet+"!A:Z", &sheetsv4.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("clear %s -> %w", sheet, err)
	}

	vr := &sheetsv4.ValueRange{Values: rows}
	_, err = c.srv.Spreadsheets.Values.Update(c.spreadsheetID, sheet+"!A1", vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("update %s -> %w", sheet, err)
	}

	return nil
}
