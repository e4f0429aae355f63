package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/five82/skipper/internal/app"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var opts app.Options

	flagSet := pflag.NewFlagSet("skipper", pflag.ContinueOnError)
	flagSet.StringVar(&opts.ConfigPath, "config", "", "config file path (default ~/.config/skipper/config.toml)")
	flagSet.StringVar(&opts.PrefsPath, "prefs", "", "preferences file path (default ~/.config/skipper/prefs.toml)")
	flagSet.StringVar(&opts.EnvFile, "env-file", "", "dotenv file to load before reading the environment (default ./.env)")
	flagSet.StringVar(&opts.Postcode, "postcode", "", "delivery postcode (overrides config and SKIPPER_POSTCODE)")
	flagSet.StringVar(&opts.Area, "area", "", "delivery area (overrides config and SKIPPER_AREA)")
	flagSet.StringVar(&opts.LogOutput, "log-output", "", "write JSON log records to this file (in addition to TUI display)")
	flagSet.BoolP("help", "h", false, "show help")
	flagSet.SetOutput(os.Stderr)

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(flagSet)
			return 0
		}
		fmt.Fprintf(os.Stderr, "skipper: %v\n", err)
		return 2
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return 0
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		fmt.Fprintf(os.Stderr, "skipper: unexpected argument: %s\n", rest[0])
		return 2
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	result, err := app.Run(ctx, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "skipper: %v\n", err)
		return 1
	}
	if s := result.Confirmed; s != nil {
		fmt.Printf("You selected %d yard skip (£%s, %d day hire)\n", s.Size, s.FormatTotal(), s.HirePeriodDays)
	}
	return 0
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `skipper: pick a skip size for a delivery area.

Fetches the skips priced for the configured postcode and area, shows
them as cards, and prints the one you continue with.

Usage:
  skipper [flags]

Examples:
  # Use ~/.config/skipper/config.toml and .env
  skipper

  # Price skips for another area
  skipper --postcode LS1 --area Leeds

Flags:
`)
	flagSet.PrintDefaults()
}
