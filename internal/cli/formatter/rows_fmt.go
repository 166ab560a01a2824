package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/trax/internal/app"
	"github.com/alexanderramin/trax/internal/domain"
)

// FormatRows renders rows in store order, one per line, with a date column
// relative to now and a footer total.
func FormatRows(user string, rows []domain.Row, now time.Time) string {
	if len(rows) == 0 {
		return Dim(fmt.Sprintf("No rows tracked for %s yet.", user)) + "\n"
	}

	headers := []string{"#", "DATE", "START", "END", "TOTAL", "DESCRIPTION"}
	table := make([][]string, 0, len(rows))
	minutes := 0
	for i, r := range rows {
		m := int(r.Total / time.Minute)
		minutes += m
		table = append(table, []string{
			Dim(fmt.Sprint(i + 1)),
			r.Date().Format("2/1/2006") + " " + Dim(RelativeDateFrom(r.Date(), now)),
			r.Start.Format("15:04"),
			r.End.Format("15:04"),
			FormatMinutes(m),
			Description(r.Description),
		})
	}

	var b strings.Builder
	b.WriteString(Header(user) + "\n")
	b.WriteString(RenderTable(headers, table, AlignRight, AlignLeft, AlignLeft, AlignLeft, AlignRight))
	fmt.Fprintf(&b, "\n%s %s\n", Dim("Total:"), StyleGreen.Render(domain.NewTotalTime(minutes).String()))
	return b.String()
}

// FormatTrackResult renders a one-line confirmation of an appended row.
func FormatTrackResult(res *app.TrackResult) string {
	r := res.Row
	return fmt.Sprintf("%s %s %s-%s %s %s\n",
		ModeBadge(res.Mode),
		StyleFg.Render(r.Date().Format("2/1/2006")),
		Bold(r.Start.Format("15:04")),
		Bold(r.End.Format("15:04")),
		StyleGreen.Render("("+FormatMinutes(int(r.Total/time.Minute))+")"),
		Description(r.Description),
	)
}

// FormatConfig renders key/value settings as a two-column table.
func FormatConfig(entries [][2]string) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		value := e[1]
		if value == "" {
			value = Dim("--")
		}
		rows = append(rows, []string{e[0], value})
	}
	return RenderTable([]string{"KEY", "VALUE"}, rows)
}
