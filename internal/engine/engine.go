package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"stockctl/internal/inventory"
	"stockctl/internal/ledger"
)

// StockStore loads and saves the authoritative stock table.
// Load must return a fresh snapshot on every call.
type StockStore interface {
	Load() (*inventory.Stock, error)
	Save(*inventory.Stock) error
}

// OrderStore loads and saves the order log as a whole.
type OrderStore interface {
	Load() ([]ledger.OrderRecord, error)
	Save([]ledger.OrderRecord) error
}

// AdditionStore loads and saves the stock-addition log as a whole.
type AdditionStore interface {
	Load() ([]ledger.AdditionRecord, error)
	Save([]ledger.AdditionRecord) error
}

// RefGenerator produces order references for committed records.
type RefGenerator interface {
	Generate() string
}

// UUIDGenerator is the production RefGenerator.
type UUIDGenerator struct{}

// Generate returns a random UUID string.
func (UUIDGenerator) Generate() string { return uuid.NewString() }

// FixedGenerator produces a deterministic "prefix-1", "prefix-2", ...
// sequence. For tests.
type FixedGenerator struct {
	Prefix string
	n      int
}

// Generate returns the next reference in the sequence.
func (g *FixedGenerator) Generate() string {
	g.n++
	return fmt.Sprintf("%s-%d", g.Prefix, g.n)
}

// Clock supplies timestamps for stock-addition records.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Engine runs the commit and undo operations over the three stores.
// It holds no state of its own; all authoritative data lives in the
// stores and is reloaded at the start of every operation.
type Engine struct {
	stock     StockStore
	orders    OrderStore
	additions AdditionStore
	refs      RefGenerator
	clock     Clock
}

// New creates an engine. refs and clock may be nil, in which case random
// UUID references and the system clock are used.
func New(stock StockStore, orders OrderStore, additions AdditionStore, refs RefGenerator, clock Clock) *Engine {
	if refs == nil {
		refs = UUIDGenerator{}
	}
	if clock == nil {
		clock = systemClock{}
	}
	return &Engine{
		stock:     stock,
		orders:    orders,
		additions: additions,
		refs:      refs,
		clock:     clock,
	}
}
