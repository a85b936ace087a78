package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gigurra/sales-ledger/internal"
)

type Params struct {
	File       string   `descr:"Path to the ledger file, optionally prefixed with its format (json:ledger.txt)" positional:"true"`
	Source     string   `descr:"Ledger file format, overrides prefix and extension detection" alts:"json,xlsx" optional:"true"`
	Config     string   `descr:"Path to config file (default ~/.sales-ledger/config.yaml)" env:"SALES_LEDGER_CONFIG" optional:"true"`
	Output     string   `descr:"Output format" alts:"report,table,json" strict:"true" default:"report"`
	Currency   string   `descr:"Currency used to format prices (ISO 4217), defaults to the config, then the system locale" env:"SALES_LEDGER_CURRENCY" optional:"true"`
	Now        string   `descr:"Reference date for ages and the last-year window (YYYY-MM-DD)" optional:"true"`
	Show       string   `descr:"Customers to show in table/json output" alts:"all,active,inactive" strict:"true" default:"all"`
	Tags       []string `descr:"Only show customers with any of these tags" optional:"true"`
	Sort       string   `descr:"Sort field for table output" alts:"ledger,name,acquired,sales" strict:"true" default:"ledger"`
	Order      string   `descr:"Sort direction" alts:"asc,desc" strict:"true" default:"asc"`
	InitConfig bool     `descr:"Write a config template listing the imported customers, then exit" default:"false"`
	Verbose    bool     `descr:"Enable debug logging" short:"v" default:"false"`
}

func main() {
	boa.NewCmdT[Params]("sales-ledger").
		WithShort("Summarize customers and their recent purchases").
		WithLong("Imports a customer ledger (JSON or XLSX) and prints a report of each customer's tenure and purchases in the last year.").
		WithRunFunc(func(params *Params) {
			if err := run(params); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}).
		Run()
}

func run(params *Params) error {
	logger, err := newLogger(params.Verbose)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Sync()

	clock := internal.NewRealClock()
	if params.Now != "" {
		now, err := internal.ParseDate(params.Now)
		if err != nil {
			return fmt.Errorf("invalid --now: %w", err)
		}
		clock = internal.NewFixedClock(now)
	}

	ledger := internal.NewLedger(internal.WithClock(clock), internal.WithLogger(logger))
	if err := internal.LoadFile(ledger, params.Source, params.File); err != nil {
		return fmt.Errorf("loading %s: %w", params.File, err)
	}
	logger.Info("ledger loaded", zap.String("file", params.File), zap.Int("customers", ledger.Len()))

	configPath := params.Config
	if configPath == "" {
		configPath = internal.DefaultConfigPath()
	}

	if params.InitConfig {
		cfg := internal.GenerateConfigTemplate(ledger, currencyCode(params, nil))
		if err := cfg.Save(configPath); err != nil {
			return err
		}
		fmt.Printf("Wrote config template with %d customers to %s\n", ledger.Len(), configPath)
		return nil
	}

	cfg, err := loadConfig(configPath, params.Config != "")
	if err != nil {
		return err
	}

	switch params.Output {
	case "table", "json":
		all := ledger.Entries()
		display := internal.FilterByStatus(all, params.Show)
		display = internal.FilterByTags(display, params.Tags, cfg)
		display = internal.FilterByExclusions(display, cfg)
		currency := internal.GetCurrency(currencyCode(params, cfg))

		if params.Output == "json" {
			return internal.PrintLedgerJSON(os.Stdout, display, cfg, ledger, currency)
		}
		internal.PrintLedgerTable(os.Stdout, all, display, internal.OutputOptions{
			ShowFilter: params.Show,
			TagFilter:  params.Tags,
			SortField:  params.Sort,
			SortDir:    params.Order,
			Currency:   currency,
		}, cfg)
	default:
		// Printed verbatim: an empty ledger's report has no trailing newline.
		fmt.Print(ledger.GenerateReport())
	}
	return nil
}

// loadConfig reads the config file. A missing file is only an error when
// the path was given explicitly.
func loadConfig(path string, explicit bool) (*internal.Config, error) {
	if path == "" {
		return nil, nil
	}
	cfg, err := internal.LoadConfig(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return cfg, nil
}

// currencyCode picks the display currency: flag, config, system locale, USD.
func currencyCode(params *Params, cfg *internal.Config) string {
	if params.Currency != "" {
		return params.Currency
	}
	fallback := internal.DetectSystemCurrency()
	if fallback == "" {
		fallback = internal.DefaultCurrency
	}
	return cfg.CurrencyCode(fallback)
}

// newLogger writes human-readable logs to stderr so stdout stays clean for
// report and JSON output.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	return cfg.Build()
}
