package cli

import (
	"github.com/spf13/cobra"

	"stockctl/internal/config"
	"stockctl/internal/engine"
	"stockctl/internal/inventory"
	"stockctl/internal/ledger"
)

// Error codes used in JSON output.
const (
	ErrCodeRejected = "REJECTED" // the submission was invalid, nothing changed
	ErrCodeStorage  = "STORAGE"  // a data file could not be read or written
)

// buildDeps loads configuration and wires the engine over the three CSV
// stores.
func buildDeps(opts *RootOptions) (*engine.Engine, *config.Config, error) {
	cfg, err := config.Load(opts.EnvFile)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to load configuration", err)
	}

	eng := engine.New(
		&inventory.File{Path: cfg.Files.Stock},
		&ledger.OrderLog{Path: cfg.Files.Orders},
		&ledger.AdditionLog{Path: cfg.Files.Additions},
		nil, // random UUID references
		nil, // system clock
	)
	return eng, cfg, nil
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}
}

// fail renders an engine error and converts it to the right exit code:
// rejections are operator mistakes (exit 1), anything else is a storage
// problem (exit 2).
func fail(formatter *OutputFormatter, err error) error {
	if engine.IsRejection(err) {
		if outErr := formatter.Error(ErrCodeRejected, err.Error(), nil); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitFailure, "nothing was changed", err)
	}
	if outErr := formatter.Error(ErrCodeStorage, err.Error(), nil); outErr != nil {
		return outErr
	}
	return WrapExitError(ExitCommandError, "data files unchanged where possible", err)
}
