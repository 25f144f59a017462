// echo-sim drives the echo program on a local ledger whose state is kept
// in a file between runs.
//
// Usage:
//
//	echo-sim [flags] echo <message>
//	echo-sim [flags] authorized-echo <message>
//	echo-sim [flags] get-authorized-echo
//	echo-sim [flags] vending-echo <message> --price <n>
//	echo-sim [flags] inspect <address>
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/celestiaorg/echo/internal/config"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type flags struct {
	configPath   string
	statePath    string
	logLevel     string
	programID    string
	keypair      string
	seed         uint64
	size         uint64
	price        uint64
	mint         string
	tokenAccount string
	mintAmount   uint64
}

func run(args []string, stdout, stderr io.Writer) error {
	var f flags
	flagSet := pflag.NewFlagSet("echo-sim", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&f.configPath, "config", "", "YAML configuration file")
	flagSet.StringVar(&f.statePath, "state", "", "ledger state file (overrides state_file)")
	flagSet.StringVar(&f.logLevel, "log-level", "", "zerolog level (overrides log_level)")
	flagSet.StringVar(&f.programID, "program-id", "", "base58 id of the echo program (overrides program_id)")
	flagSet.StringVarP(&f.keypair, "keypair", "k", "", "JSON keypair file of the fee payer, or of the buffer for echo")
	flagSet.Uint64Var(&f.seed, "seed", 0, "authorized buffer seed (overrides authorized.seed)")
	flagSet.Uint64Var(&f.size, "size", 0, "buffer size in bytes for newly created buffers")
	flagSet.Uint64Var(&f.price, "price", 0, "vending buffer price")
	flagSet.StringVar(&f.mint, "mint", "", "token mint of the vending buffer; a new mint is created if empty")
	flagSet.StringVar(&f.tokenAccount, "token-account", "", "token account paying the vending price")
	flagSet.Uint64Var(&f.mintAmount, "mint-amount", 0, "tokens minted to the payer with a new mint (default: price)")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(stderr, flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(stderr, flagSet)
		return nil
	}

	cfg, err := loadConfig(flagSet, &f)
	if err != nil {
		return err
	}
	level, _ := cfg.Level()
	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr}).Level(level).With().Timestamp().Logger()

	positional := flagSet.Args()
	if len(positional) == 0 {
		printHelp(stderr, flagSet)
		return errors.New("missing command")
	}
	sim, err := openSimulator(cfg, logger, stdout)
	if err != nil {
		return err
	}

	command, rest := positional[0], positional[1:]
	switch command {
	case "echo":
		err = sim.echo(rest, &f)
	case "authorized-echo":
		err = sim.authorizedEcho(rest, &f)
	case "get-authorized-echo":
		err = sim.getAuthorizedEcho(&f)
	case "vending-echo":
		err = sim.vendingEcho(rest, &f)
	case "inspect":
		err = sim.inspect(rest)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
	if err != nil {
		return err
	}
	return sim.save()
}

func loadConfig(flagSet *pflag.FlagSet, f *flags) (*config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		var err error
		if cfg, err = config.LoadFile(f.configPath); err != nil {
			return nil, err
		}
	}
	if flagSet.Changed("state") {
		cfg.StateFile = f.statePath
	}
	if flagSet.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if flagSet.Changed("program-id") {
		cfg.ProgramID = f.programID
	}
	if flagSet.Changed("seed") {
		cfg.Authorized.Seed = f.seed
	}
	if flagSet.Changed("size") {
		cfg.Authorized.BufferSize = f.size
		cfg.Vending.BufferSize = f.size
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprint(w, `echo-sim runs the echo program against a local ledger.

Usage:
  echo-sim [flags] echo <message>
      Write message into an open buffer. With --keypair the buffer key is
      loaded from the file, otherwise a fresh buffer is created.
  echo-sim [flags] authorized-echo <message>
      Create the authorized buffer of the fee payer and --seed if needed,
      then replace its payload.
  echo-sim [flags] get-authorized-echo
      Print the payload of the authorized buffer of the fee payer and --seed.
  echo-sim [flags] vending-echo <message> --price <n>
      Burn price tokens and replace the payload of the vending buffer.
  echo-sim [flags] inspect <address>
      Print an account.

Flags:
`)
	fmt.Fprint(w, flagSet.FlagUsages())
}
