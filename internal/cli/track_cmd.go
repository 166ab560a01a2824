package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/trax/internal/cli/formatter"
	"github.com/alexanderramin/trax/internal/domain"
	"github.com/spf13/cobra"
)

func newTrackCmd(app *App) *cobra.Command {
	var from, to clockValue
	var date dateValue

	cmd := &cobra.Command{
		Use:   "track [DESCRIPTION]",
		Short: "Record a work interval",
		Long: `Record a work interval for the user.

With no times the interval continues from the end of the latest row up to
now. With --from it runs from the given time up to now. With --from and
--to both times are recorded as given.`,
		Example: `  trax track "Reviewing pull requests"
  trax track --from 9:30 "Standup and planning"
  trax track --from 13:00 --to 14:15 --date 7/3/2026 "Lunch talk"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.now()
			req, err := buildTrackRequest(&from, &to, &date, now, strings.TrimSpace(strings.Join(args, " ")))
			if err != nil {
				return err
			}

			ctx, cancel := app.requestContext(cmd)
			defer cancel()

			if req.Description == "" && app.interactive() && app.PromptDescription != nil {
				desc, err := app.PromptDescription(ctx)
				if err != nil {
					return fmt.Errorf("reading description: %w", err)
				}
				req.Description = desc
			}

			res, err := app.Track.Track(ctx, app.user(cmd), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTrackResult(res))
			return nil
		},
	}

	cmd.Flags().Var(&from, "from", "Start time; without --to the interval runs up to now")
	cmd.Flags().Var(&to, "to", "End time; requires --from")
	cmd.Flags().Var(&date, "date", "Date of the interval (default today); requires --from")

	return cmd
}

// buildTrackRequest picks the track mode from the flags that were given.
func buildTrackRequest(from, to *clockValue, date *dateValue, now time.Time, desc string) (domain.TrackRequest, error) {
	if err := validateDescription(desc); err != nil {
		return domain.TrackRequest{}, fmt.Errorf("%w: %v", domain.ErrInvalidArguments, err)
	}
	switch {
	case to.set && !from.set:
		return domain.TrackRequest{}, fmt.Errorf("%w: --to requires --from", domain.ErrInvalidArguments)
	case date.set && !from.set:
		return domain.TrackRequest{}, fmt.Errorf("%w: --date requires --from", domain.ErrInvalidArguments)
	case from.set && to.set:
		day := date.resolve(now)
		return domain.TrackBetween(from.on(day), to.on(day), desc), nil
	case from.set:
		return domain.TrackFromStart(from.on(date.resolve(now)), desc), nil
	default:
		return domain.AutoTrack(desc), nil
	}
}
