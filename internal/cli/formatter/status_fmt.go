package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/trax/internal/domain"
)

// FormatStatus renders a user's status summary. now anchors the relative
// "last tracked" hint.
func FormatStatus(st *domain.Status, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n", Dim("User:       "), Bold(st.User))
	fmt.Fprintf(&b, "%s  %s\n", Dim("Total:      "), StyleGreen.Render(st.Total.String()))
	fmt.Fprintf(&b, "%s  %s %s\n", Dim("Last ended: "),
		StyleFg.Render(st.LatestDate.Format("2/1/2006 15:04")),
		Dim("("+HumanTimestampFrom(st.LatestDate, now)+")"))
	fmt.Fprintf(&b, "%s  %s\n", Dim("Last task:  "), Description(st.LatestDescription))
	fmt.Fprintf(&b, "%s  %d", Dim("Rows:       "), st.RowCount)

	return RenderBox("Status", b.String())
}
