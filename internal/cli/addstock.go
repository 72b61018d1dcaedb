package cli

import (
	"github.com/spf13/cobra"

	"stockctl/internal/engine"
)

// NewAddStockCommand creates the add-stock command, which records newly
// arrived stock: existing items are incremented, new items are created.
func NewAddStockCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		draftPath string
		items     []string
	)

	cmd := &cobra.Command{
		Use:   "add-stock",
		Short: "Record newly arrived stock",
		Long: `Record a stock addition: increment the on-hand quantity of each item
and append the addition to the addition log.

Existing items can be given inline as repeated --item ID:QTY flags. New
items need manufacturer and category, so they must come from a YAML
draft file. A rejected addition changes nothing.`,
		Example: `  stockctl add-stock --item A1:10 --item B2:24
  stockctl add-stock --draft delivery.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			var draft engine.AdditionDraft
			var err error
			switch {
			case draftPath != "" && len(items) > 0:
				return NewExitError(ExitCommandError, "use either --draft or --item, not both")
			case draftPath != "":
				draft, err = LoadAdditionDraft(draftPath)
				if err != nil {
					return WrapExitError(ExitCommandError, "invalid addition draft", err)
				}
			default:
				parsed, err := parseItemFlags(items)
				if err != nil {
					return WrapExitError(ExitCommandError, "invalid --item flag", err)
				}
				file := AdditionDraftFile{Items: parsed}
				if err := file.Validate(); err != nil {
					return WrapExitError(ExitCommandError, "invalid addition", err)
				}
				if draft, err = file.ToDraft(); err != nil {
					return WrapExitError(ExitCommandError, "invalid addition", err)
				}
			}

			eng, _, err := buildDeps(rootOpts)
			if err != nil {
				return err
			}

			record, err := eng.CommitAddition(draft)
			if err != nil {
				return fail(formatter, err)
			}
			return formatter.Success(map[string]interface{}{
				"date":  record.Date,
				"time":  record.Time,
				"items": len(record.Lines),
			})
		},
	}

	cmd.Flags().StringVar(&draftPath, "draft", "", "path to a YAML addition draft")
	cmd.Flags().StringArrayVar(&items, "item", nil, "item line as ID:QTY, repeatable")

	return cmd
}
