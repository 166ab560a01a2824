package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/alexanderramin/trax/internal/domain"
	"github.com/alexanderramin/trax/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// fakeSheets serves the subset of the Sheets v4 API the store uses.
type fakeSheets struct {
	mu        sync.Mutex
	sheets    map[string][][]string
	order     []string
	status    int
	lastInput string
}

func newFakeSheets(titles ...string) *fakeSheets {
	f := &fakeSheets{sheets: make(map[string][][]string)}
	for _, title := range titles {
		f.addSheet(title)
	}
	return f
}

func (f *fakeSheets) addSheet(title string) {
	f.sheets[title] = nil
	f.order = append(f.order, title)
}

func sheetTitle(a1 string) string {
	end := strings.LastIndex(a1, "'!")
	return strings.ReplaceAll(a1[1:end], "''", "'")
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if r.Header.Get("Authorization") != "Bearer test-token" {
		http.Error(w, `{"error":{"code":401}}`, http.StatusUnauthorized)
		return
	}
	if f.status != 0 {
		http.Error(w, `{"error":{"message":"boom"}}`, f.status)
		return
	}

	rest, ok := strings.CutPrefix(r.URL.Path, "/v4/spreadsheets/doc")
	if !ok {
		http.NotFound(w, r)
		return
	}

	switch {
	case rest == "" && r.Method == http.MethodGet:
		var doc sheetsapi.Spreadsheet
		for _, title := range f.order {
			doc.Sheets = append(doc.Sheets, &sheetsapi.Sheet{Properties: &sheetsapi.SheetProperties{Title: title}})
		}
		_ = json.NewEncoder(w).Encode(doc)

	case rest == ":batchUpdate" && r.Method == http.MethodPost:
		var body sheetsapi.BatchUpdateSpreadsheetRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.addSheet(body.Requests[0].AddSheet.Properties.Title)
		_, _ = w.Write([]byte(`{}`))

	case strings.HasPrefix(rest, "/values/"):
		a1 := strings.TrimPrefix(rest, "/values/")
		f.lastInput = r.URL.Query().Get("valueInputOption")
		if strings.HasSuffix(a1, ":append") {
			title := sheetTitle(strings.TrimSuffix(a1, ":append"))
			var vr sheetsapi.ValueRange
			_ = json.NewDecoder(r.Body).Decode(&vr)
			for _, row := range vr.Values {
				f.sheets[title] = append(f.sheets[title], cellsToStrings(row))
			}
			_, _ = w.Write([]byte(`{}`))
			return
		}
		title := sheetTitle(a1)
		if r.Method == http.MethodPut {
			var vr sheetsapi.ValueRange
			_ = json.NewDecoder(r.Body).Decode(&vr)
			header := cellsToStrings(vr.Values[0])
			if len(f.sheets[title]) == 0 {
				f.sheets[title] = [][]string{header}
			} else {
				f.sheets[title][0] = header
			}
			_, _ = w.Write([]byte(`{}`))
			return
		}
		var vr sheetsapi.ValueRange
		rows := f.sheets[title]
		for i := 1; i < len(rows); i++ {
			vr.Values = append(vr.Values, toCells([][]string{rows[i]})[0])
		}
		_ = json.NewEncoder(w).Encode(vr)

	default:
		http.NotFound(w, r)
	}
}

func cellsToStrings(cells []any) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i], _ = c.(string)
	}
	return out
}

func newTestStore(t *testing.T, fake *fakeSheets, ts oauth2.TokenSource) *Store {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	if ts == nil {
		ts = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test-token"})
	}
	s, err := New(context.Background(), Options{SpreadsheetID: "doc", TokenSource: ts, Endpoint: srv.URL})
	require.NoError(t, err)
	return s
}

type failingTokenSource struct{}

func (failingTokenSource) Token() (*oauth2.Token, error) {
	return nil, errors.New("invalid_grant")
}

func TestStore_AddUserWritesHeader(t *testing.T) {
	fake := newFakeSheets()
	s := newTestStore(t, fake, nil)

	require.NoError(t, s.AddUser(context.Background(), "Default"))
	assert.Equal(t, [][]string{domain.Columns}, fake.sheets["Default"])
}

func TestStore_AppendThenList(t *testing.T) {
	fake := newFakeSheets("Default")
	s := newTestStore(t, fake, nil)
	ctx := context.Background()
	require.NoError(t, s.AddUser(ctx, "Default"))

	row := testutil.NewTestRawRow(testutil.At(8, 0), testutil.At(10, 0), testutil.WithDescription("Starting off"))
	require.NoError(t, s.AppendRow(ctx, "Default", row))
	assert.Equal(t, "RAW", fake.lastInput, "values are stored as plain text, not formulas")

	rows, err := s.ListRows(ctx, "Default")
	require.NoError(t, err)
	assert.Equal(t, []domain.RawRow{row}, rows)
}

func TestStore_ListSkipsBlankRowsAndPadsShortOnes(t *testing.T) {
	fake := newFakeSheets("Default")
	fake.sheets["Default"] = [][]string{
		domain.Columns,
		{"10/3/2026", "08:00:00", "09:00:00", "01:00:00"},
		{"", "", "", "", ""},
	}
	s := newTestStore(t, fake, nil)

	rows, err := s.ListRows(context.Background(), "Default")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].Description)
}

func TestStore_UnknownWorksheet(t *testing.T) {
	s := newTestStore(t, newFakeSheets("Default"), nil)
	ctx := context.Background()

	_, err := s.ListRows(ctx, "bad_user")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	err = s.AppendRow(ctx, "bad_user", testutil.NewTestRawRow(testutil.At(8, 0), testutil.At(9, 0)))
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestStore_TitleWithQuote(t *testing.T) {
	fake := newFakeSheets()
	s := newTestStore(t, fake, nil)
	ctx := context.Background()
	require.NoError(t, s.AddUser(ctx, "O'Brien"))

	require.NoError(t, s.AppendRow(ctx, "O'Brien", testutil.NewTestRawRow(testutil.At(8, 0), testutil.At(9, 0))))
	rows, err := s.ListRows(ctx, "O'Brien")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestStore_Authenticate(t *testing.T) {
	s := newTestStore(t, newFakeSheets("Default"), nil)
	assert.NoError(t, s.Authenticate(context.Background()))
}

func TestStore_AuthenticateTokenFailure(t *testing.T) {
	s := newTestStore(t, newFakeSheets("Default"), failingTokenSource{})
	err := s.Authenticate(context.Background())
	assert.ErrorIs(t, err, domain.ErrAuth)
}

func TestStore_UnauthorizedIsAuthError(t *testing.T) {
	wrong := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "wrong"})
	s := newTestStore(t, newFakeSheets("Default"), wrong)

	_, err := s.ListRows(context.Background(), "Default")
	assert.ErrorIs(t, err, domain.ErrAuth)
}

func TestStore_ForbiddenIsAuthError(t *testing.T) {
	fake := newFakeSheets("Default")
	fake.status = http.StatusForbidden
	s := newTestStore(t, fake, nil)

	err := s.AppendRow(context.Background(), "Default", testutil.NewTestRawRow(testutil.At(8, 0), testutil.At(9, 0)))
	assert.ErrorIs(t, err, domain.ErrAuth)
}

func TestStore_ServerErrorIsIO(t *testing.T) {
	fake := newFakeSheets("Default")
	fake.status = http.StatusInternalServerError
	s := newTestStore(t, fake, nil)

	_, err := s.ListRows(context.Background(), "Default")
	assert.ErrorIs(t, err, domain.ErrIO)
}

func TestNew_RequiresSpreadsheetAndCredentials(t *testing.T) {
	_, err := New(context.Background(), Options{})
	assert.ErrorIs(t, err, domain.ErrAuth)

	_, err = New(context.Background(), Options{SpreadsheetID: "doc", CredentialsJSON: []byte("bad_credentials")})
	assert.ErrorIs(t, err, domain.ErrAuth)
}

func TestA1Range(t *testing.T) {
	assert.Equal(t, "'Default'!A2:E", a1Range("Default", "A2:E"))
	assert.Equal(t, "'O''Brien'!A1:E1", a1Range("O'Brien", "A1:E1"))
}
