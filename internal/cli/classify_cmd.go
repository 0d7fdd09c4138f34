package cli

import (
	"fmt"
	"strings"

	"github.com/ashlinalex1/mindstride/internal/activity"
	"github.com/ashlinalex1/mindstride/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newClassifyCmd(_ *App) *cobra.Command {
	return &cobra.Command{
		Use:     "classify TEXT...",
		Short:   "Show the category a label or window title falls into",
		Example: "  mindstride classify \"chrome Khan Academy - Learning\"",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, label := range args {
				label = strings.TrimSpace(label)
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatClassification(label, activity.Resolve(label)))
			}
			return nil
		},
	}
}
