package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"slices"

	"github.com/alexanderramin/trax/internal/domain"
	"github.com/alexanderramin/trax/internal/rowstore"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
)

var (
	_ rowstore.Store       = (*Store)(nil)
	_ rowstore.Provisioner = (*Store)(nil)
)

// Store implements rowstore.Store on top of a spreadsheet. The first row of
// every worksheet is the header row; data starts on row 2.
type Store struct {
	c *client
}

// New builds a store. No request is made until Authenticate or a row call.
func New(ctx context.Context, opts Options) (*Store, error) {
	c, err := newClient(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAuth, err)
	}
	return &Store{c: c}, nil
}

// NewFromFile reads service-account credentials from path.
func NewFromFile(ctx context.Context, spreadsheetID, path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading credentials: %v", domain.ErrAuth, err)
	}
	return New(ctx, Options{SpreadsheetID: spreadsheetID, CredentialsJSON: data})
}

// Authenticate fetches a token and checks that the spreadsheet is reachable.
func (s *Store) Authenticate(ctx context.Context) error {
	if _, err := s.c.tokens.Token(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrAuth, err)
	}
	if _, err := s.c.sheetTitles(ctx); err != nil {
		return classify(err, "opening spreadsheet")
	}
	return nil
}

func (s *Store) AddUser(ctx context.Context, user string) error {
	titles, err := s.c.sheetTitles(ctx)
	if err != nil {
		return classify(err, "listing worksheets")
	}
	if !slices.Contains(titles, user) {
		if err := s.c.addSheet(ctx, user); err != nil {
			return classify(err, "adding worksheet")
		}
	}
	if err := s.c.updateValues(ctx, a1Range(user, "A1:E1"), [][]string{domain.Columns}); err != nil {
		return classify(err, "writing header row")
	}
	return nil
}

func (s *Store) ListRows(ctx context.Context, user string) ([]domain.RawRow, error) {
	if err := s.requireSheet(ctx, user); err != nil {
		return nil, err
	}
	values, err := s.c.getValues(ctx, a1Range(user, "A2:E"))
	if err != nil {
		return nil, classify(err, "reading rows")
	}

	rows := make([]domain.RawRow, 0, len(values))
	for _, v := range values {
		if isBlank(v) {
			continue
		}
		rows = append(rows, domain.RawRowFromValues(v))
	}
	return rows, nil
}

func (s *Store) AppendRow(ctx context.Context, user string, row domain.RawRow) error {
	if err := s.requireSheet(ctx, user); err != nil {
		return err
	}
	if err := s.c.appendValues(ctx, a1Range(user, "A1:E1"), [][]string{row.Values()}); err != nil {
		return classify(err, "appending row")
	}
	return nil
}

// Close is a no-op; the service holds no long-lived resources.
func (s *Store) Close() error { return nil }

func (s *Store) requireSheet(ctx context.Context, user string) error {
	titles, err := s.c.sheetTitles(ctx)
	if err != nil {
		return classify(err, "listing worksheets")
	}
	if !slices.Contains(titles, user) {
		return fmt.Errorf("%w: no worksheet named %q", domain.ErrUserNotFound, user)
	}
	return nil
}

// classify maps transport and API failures onto domain error kinds.
func classify(err error, action string) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden {
			return fmt.Errorf("%w: %s: %v", domain.ErrAuth, action, err)
		}
		return fmt.Errorf("%w: %s: %v", domain.ErrIO, action, err)
	}
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return fmt.Errorf("%w: %s: %v", domain.ErrAuth, action, err)
	}
	return fmt.Errorf("%w: %s: %v", domain.ErrIO, action, err)
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
