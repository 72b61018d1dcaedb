package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"stockctl/internal/engine"
)

// NewOrderCommand creates the order command, which records a sale: it
// deducts the sold quantities from stock and appends a line to the order
// log, with the fee columns defaulted where not given.
func NewOrderCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		draftPath string
		date      string
		postcode  string
		amount    string
		ebayCut   string
		paypalCut string
		postPack  string
		items     []string
	)

	cmd := &cobra.Command{
		Use:   "order",
		Short: "Record a sales order against stock",
		Long: `Record a sales order: validate every item line against current stock,
deduct the sold quantities and append the order to the order log.

Items are given either inline as repeated --item ID:QTY flags or in a
YAML draft file. A rejected order changes nothing.`,
		Example: `  stockctl order --amount 20.00 --item A1:2 --item B2:1
  stockctl order --draft order.yaml --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			file := OrderDraftFile{
				Date:      date,
				Postcode:  postcode,
				Amount:    amount,
				EbayCut:   ebayCut,
				PaypalCut: paypalCut,
				PostPack:  postPack,
			}

			var draft engine.OrderDraft
			var err error
			if draftPath != "" {
				if len(items) > 0 || amount != "" || date != "" || postcode != "" || ebayCut != "" || paypalCut != "" || postPack != "" {
					return NewExitError(ExitCommandError, "use either --draft or the order flags, not both")
				}
				draft, err = LoadOrderDraft(draftPath, time.Now())
				if err != nil {
					return WrapExitError(ExitCommandError, "invalid order draft", err)
				}
			} else {
				file.Items, err = parseItemFlags(items)
				if err != nil {
					return WrapExitError(ExitCommandError, "invalid --item flag", err)
				}
				if err := file.Validate(); err != nil {
					return WrapExitError(ExitCommandError, "invalid order", err)
				}
				draft, err = file.ToDraft(time.Now())
				if err != nil {
					return WrapExitError(ExitCommandError, "invalid order", err)
				}
			}

			eng, _, err := buildDeps(rootOpts)
			if err != nil {
				return err
			}

			record, err := eng.CommitOrder(draft)
			if err != nil {
				return fail(formatter, err)
			}
			return formatter.Success(map[string]interface{}{
				"order_ref": record.Ref,
				"date":      record.Date,
				"profit":    record.Profit.StringFixed(2),
				"items":     len(record.Lines),
			})
		},
	}

	cmd.Flags().StringVar(&draftPath, "draft", "", "path to a YAML order draft")
	cmd.Flags().StringVar(&date, "date", "", "order date dd/mm/yyyy (default: yesterday)")
	cmd.Flags().StringVar(&postcode, "postcode", "", "delivery postcode")
	cmd.Flags().StringVar(&amount, "amount", "", "order amount in GBP")
	cmd.Flags().StringVar(&ebayCut, "ebay", "", "marketplace cut (default: 10% of amount)")
	cmd.Flags().StringVar(&paypalCut, "paypal", "", "payment-processor cut (default: 2.9% + 0.30)")
	cmd.Flags().StringVar(&postPack, "pp", "", "postage and packing (default: 0.97)")
	cmd.Flags().StringArrayVar(&items, "item", nil, "item line as ID:QTY, repeatable")

	return cmd
}

// parseItemFlags converts repeated ID:QTY flags into draft items.
func parseItemFlags(flags []string) ([]DraftItem, error) {
	var items []DraftItem
	for _, f := range flags {
		id, qty, ok := strings.Cut(f, ":")
		if !ok {
			return nil, fmt.Errorf("%q is not of the form ID:QTY", f)
		}
		n, err := strconv.Atoi(qty)
		if err != nil {
			return nil, fmt.Errorf("%q: quantity %q is not an integer", f, qty)
		}
		items = append(items, DraftItem{ID: id, Quantity: n})
	}
	return items, nil
}
