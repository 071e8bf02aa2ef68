// Command discount prices a single item under a discount classification and
// prints the result as JSON.
//
//	discount -name item1 -price 300 -qty 2 -kind percent -value 10
//	discount -name item1 -price 300 -qty 3 -kind bogo -all
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"discount-kart/internal/discount"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// record is the item merged with its evaluated discount.
type record struct {
	Name                string          `json:"name"`
	UnitPrice           decimal.Decimal `json:"unitPrice"`
	Quantity            int             `json:"quantity"`
	Kind                string          `json:"kind"`
	Mechanism           string          `json:"mechanism"`
	Mode                string          `json:"mode"`
	DiscountAmount      decimal.Decimal `json:"discountAmount"`
	DiscountDescription string          `json:"discountDescription"`
	DiscountLabel       string          `json:"discountLabel"`
}

type options struct {
	name      string
	price     string
	quantity  int
	kind      string
	value     string
	mode      string
	mechanism string
	all       bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: true}).With().Timestamp().Logger()

	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	records, err := evaluate(opts)
	if err != nil {
		logger.Error().Err(err).Msg("evaluation failed")
		return 1
	}

	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")

	var out any = records
	if !opts.all {
		out = records[0]
	}
	if err := encoder.Encode(out); err != nil {
		logger.Error().Err(err).Msg("failed to write result")
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("discount", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.name, "name", "item1", "item name")
	fs.StringVar(&opts.price, "price", "0", "unit price")
	fs.IntVar(&opts.quantity, "qty", 1, "quantity")
	fs.StringVar(&opts.kind, "kind", "none", "discount kind: percent, flat, bogo, none or a custom tag")
	fs.StringVar(&opts.value, "value", "", "discount parameter (percent or flat amount)")
	fs.StringVar(&opts.mode, "mode", discount.Strict.String(), "unknown-kind policy: strict or permissive")
	fs.StringVar(&opts.mechanism, "dispatch", discount.MechanismMap, "dispatch mechanism")
	fs.BoolVar(&opts.all, "all", false, "evaluate with every dispatch mechanism")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %v\n", fs.Args())
		fs.Usage()
		return options{}, fmt.Errorf("unexpected arguments")
	}
	return opts, nil
}

func evaluate(opts options) ([]record, error) {
	price, err := decimal.NewFromString(opts.price)
	if err != nil {
		return nil, fmt.Errorf("invalid price %q: %w", opts.price, err)
	}

	mode, err := discount.ParseMode(opts.mode)
	if err != nil {
		return nil, err
	}

	classification, err := discount.Parse(opts.kind, opts.value)
	if err != nil {
		return nil, err
	}

	mechanisms := []string{opts.mechanism}
	if opts.all {
		mechanisms = discount.Mechanisms()
	}

	item := discount.NewItem(opts.name, price, opts.quantity)
	records := make([]record, 0, len(mechanisms))
	for _, mechanism := range mechanisms {
		dispatcher, err := discount.NewDispatcher(mechanism)
		if err != nil {
			return nil, err
		}

		result, err := discount.New(dispatcher, discount.WithMode(mode)).Apply(item, classification)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", mechanism, err)
		}

		records = append(records, record{
			Name:                item.Name,
			UnitPrice:           item.UnitPrice,
			Quantity:            item.Quantity,
			Kind:                string(classification.Kind()),
			Mechanism:           mechanism,
			Mode:                mode.String(),
			DiscountAmount:      result.Amount,
			DiscountDescription: result.Description,
			DiscountLabel:       result.Label,
		})
	}

	return records, nil
}
