package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"stockctl/internal/engine"
	"stockctl/internal/fees"
)

// DraftItem is one item line in a draft file.
type DraftItem struct {
	ID           string `yaml:"id"`
	Quantity     int    `yaml:"quantity"`
	Manufacturer string `yaml:"manufacturer,omitempty"`
	Category     string `yaml:"category,omitempty"`
	Description  string `yaml:"description,omitempty"`
	Price        string `yaml:"price,omitempty"`
}

// OrderDraftFile is the YAML shape of a staged order. Money fields are
// strings so they parse through decimal, never float. Omitted fee fields
// get the standard defaults; an omitted date means yesterday.
type OrderDraftFile struct {
	Date      string      `yaml:"date,omitempty"`
	Postcode  string      `yaml:"postcode,omitempty"`
	Amount    string      `yaml:"amount"`
	EbayCut   string      `yaml:"ebay_cut,omitempty"`
	PaypalCut string      `yaml:"paypal_cut,omitempty"`
	PostPack  string      `yaml:"post_pack,omitempty"`
	Items     []DraftItem `yaml:"items"`
}

// AdditionDraftFile is the YAML shape of a staged stock addition.
type AdditionDraftFile struct {
	Items []DraftItem `yaml:"items"`
}

// Validate checks the structural rules of an order draft file. Stock
// availability is the engine's concern, not the loader's.
func (d OrderDraftFile) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Date, validation.Date(fees.DateLayout)),
		validation.Field(&d.Amount, validation.Required, validation.By(decimalString)),
		validation.Field(&d.EbayCut, validation.By(decimalString)),
		validation.Field(&d.PaypalCut, validation.By(decimalString)),
		validation.Field(&d.PostPack, validation.By(decimalString)),
		validation.Field(&d.Items, validation.Required),
	)
}

// Validate checks the structural rules of an addition draft file.
func (d AdditionDraftFile) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Items, validation.Required),
	)
}

func decimalString(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := decimal.NewFromString(s); err != nil {
		return errors.New("must be a decimal amount")
	}
	return nil
}

// ToDraft converts a validated draft file into an engine draft, filling
// the fee defaults. International-programme orders get no processor-cut
// default: the operator must state it explicitly.
func (d OrderDraftFile) ToDraft(now time.Time) (engine.OrderDraft, error) {
	var draft engine.OrderDraft

	draft.Date = d.Date
	if draft.Date == "" {
		draft.Date = fees.DefaultOrderDate(now)
	}
	draft.Postcode = fees.NormalizePostcode(d.Postcode)
	international := fees.InternationalProgramme(draft.Postcode)

	amount, err := parseMoney(d.Amount, "amount")
	if err != nil {
		return draft, err
	}
	draft.Amount = amount

	if d.EbayCut != "" {
		if draft.EbayCut, err = parseMoney(d.EbayCut, "ebay_cut"); err != nil {
			return draft, err
		}
	} else {
		draft.EbayCut = fees.MarketplaceCut(amount)
	}

	if d.PaypalCut != "" {
		if draft.PaypalCut, err = parseMoney(d.PaypalCut, "paypal_cut"); err != nil {
			return draft, err
		}
	} else if international {
		return draft, fmt.Errorf("postcode %s is an international programme address: set paypal_cut explicitly", draft.Postcode)
	} else {
		draft.PaypalCut = fees.ProcessorCut(amount, false)
	}

	if d.PostPack != "" {
		if draft.PostPack, err = parseMoney(d.PostPack, "post_pack"); err != nil {
			return draft, err
		}
	} else {
		draft.PostPack = fees.DefaultPostPack()
	}

	draft.Lines, err = toLineInputs(d.Items)
	return draft, err
}

// ToDraft converts a validated addition draft file into an engine draft.
func (d AdditionDraftFile) ToDraft() (engine.AdditionDraft, error) {
	lines, err := toLineInputs(d.Items)
	return engine.AdditionDraft{Lines: lines}, err
}

func toLineInputs(items []DraftItem) ([]engine.LineInput, error) {
	var lines []engine.LineInput
	for i, item := range items {
		in := engine.LineInput{
			ID:           item.ID,
			Quantity:     item.Quantity,
			Manufacturer: item.Manufacturer,
			Category:     item.Category,
			Description:  item.Description,
		}
		if item.Price != "" {
			price, err := decimal.NewFromString(item.Price)
			if err != nil {
				return nil, fmt.Errorf("items[%d]: price %q is not a decimal amount", i, item.Price)
			}
			in.Price = price
		}
		lines = append(lines, in)
	}
	return lines, nil
}

func parseMoney(s, field string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %q is not a decimal amount", field, s)
	}
	return d, nil
}

// LoadOrderDraft reads, validates and converts an order draft file.
func LoadOrderDraft(path string, now time.Time) (engine.OrderDraft, error) {
	var file OrderDraftFile
	if err := loadDraftFile(path, &file); err != nil {
		return engine.OrderDraft{}, err
	}
	if err := file.Validate(); err != nil {
		return engine.OrderDraft{}, fmt.Errorf("%s: %w", path, err)
	}
	draft, err := file.ToDraft(now)
	if err != nil {
		return engine.OrderDraft{}, fmt.Errorf("%s: %w", path, err)
	}
	return draft, nil
}

// LoadAdditionDraft reads, validates and converts an addition draft file.
func LoadAdditionDraft(path string) (engine.AdditionDraft, error) {
	var file AdditionDraftFile
	if err := loadDraftFile(path, &file); err != nil {
		return engine.AdditionDraft{}, err
	}
	if err := file.Validate(); err != nil {
		return engine.AdditionDraft{}, fmt.Errorf("%s: %w", path, err)
	}
	draft, err := file.ToDraft()
	if err != nil {
		return engine.AdditionDraft{}, fmt.Errorf("%s: %w", path, err)
	}
	return draft, nil
}

func loadDraftFile(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read draft file: %w", err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse draft file %s: %w", path, err)
	}
	return nil
}
