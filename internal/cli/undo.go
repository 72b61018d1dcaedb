package cli

import (
	"github.com/spf13/cobra"
)

// NewUndoCommand creates the undo command, which reverses the most
// recent entry in the order log or the addition log.
func NewUndoCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "undo (orders|additions)",
		Short: "Reverse the most recent log entry",
		Long: `Reverse the most recent entry of the chosen log: restore the stock
quantities it moved and remove the entry. Only the newest entry can be
undone.`,
		Example: `  stockctl undo orders
  stockctl undo additions`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"orders", "additions"},
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			eng, _, err := buildDeps(rootOpts)
			if err != nil {
				return err
			}

			switch args[0] {
			case "orders":
				record, err := eng.UndoLastOrder()
				if err != nil {
					return fail(formatter, err)
				}
				return formatter.Success(map[string]interface{}{
					"undone":    "order",
					"order_ref": record.Ref,
					"date":      record.Date,
					"items":     len(record.Lines),
				})
			case "additions":
				record, err := eng.UndoLastAddition()
				if err != nil {
					return fail(formatter, err)
				}
				return formatter.Success(map[string]interface{}{
					"undone": "addition",
					"date":   record.Date,
					"time":   record.Time,
					"items":  len(record.Lines),
				})
			default:
				return NewExitError(ExitCommandError, "argument must be orders or additions")
			}
		},
	}

	return cmd
}
