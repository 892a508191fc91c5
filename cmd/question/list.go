package question

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/uat_backend/cmd/cmdutil"
	"github.com/Alijeyrad/uat_backend/config"
	"github.com/Alijeyrad/uat_backend/internal/service/catalog"
	"github.com/Alijeyrad/uat_backend/internal/service/questionsvc"
)

func NewListCommand() *cobra.Command {
	var upToDate bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List questions with their active and draft state",
		RunE: func(cmd *cobra.Command, args []string) error {
			var svc questionsvc.Service
			return cmdutil.WithApp(cmd, func(ctx context.Context, _ *config.Config) error {
				c, err := svc.Catalog(ctx)
				if err != nil {
					return err
				}
				if upToDate {
					return cmdutil.PrintJSON(cmd.OutOrStdout(), c.UpToDateQuestions())
				}
				return writeListing(cmd, c.ActiveAndDraft())
			}, &svc)
		},
	}

	cmd.Flags().BoolVar(&upToDate, "up-to-date", false, "print the up-to-date definitions as JSON")

	return cmd
}

func writeListing(cmd *cobra.Command, ad *catalog.ActiveAndDraft) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTYPE\tACTIVE\tDRAFT")
	for _, name := range ad.Names() {
		active, inActive := ad.Active(name)
		draft, inDraft := ad.Draft(name)

		qtype := ""
		activeID, draftID := "-", "-"
		if inActive {
			qtype = string(active.Type())
			activeID = fmt.Sprint(active.ID())
		}
		if inDraft {
			qtype = string(draft.Type())
			draftID = fmt.Sprint(draft.ID())
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", name, qtype, activeID, draftID)
	}
	return tw.Flush()
}
