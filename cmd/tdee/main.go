// CLI that walks through the TDEE wizard in the terminal and prints the result.
// Usage: go run ./cmd/tdee [--plain] [--json] [--log-level debug]
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"lg/tdee-wizard/internal/logger"
)

// errAborted is returned when the user quits the interactive wizard.
var errAborted = errors.New("wizard cancelled")

type options struct {
	plain    bool
	asJSON   bool
	logLevel string
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "tdee: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (options, error) {
	var opts options
	flags := pflag.NewFlagSet("tdee", pflag.ContinueOnError)
	flags.BoolVar(&opts.plain, "plain", false, "line-by-line prompts instead of the interactive screen")
	flags.BoolVar(&opts.asJSON, "json", false, "print the result as JSON")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	err := flags.Parse(args)
	return opts, err
}

func run(args []string, in *os.File, out io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	log, err := logger.New(opts.logLevel, "console")
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync()

	today := time.Now()
	interactive := !opts.plain && isatty.IsTerminal(in.Fd())
	var f flow
	if interactive {
		f, err = runInteractive(in, out, today, log, opts.asJSON)
	} else {
		prompts := out
		if opts.asJSON {
			prompts = os.Stderr
		}
		f, err = runPlain(in, prompts, today, log)
	}
	if err != nil {
		return err
	}

	draft, _ := f.state.Profile()
	log.Info("wizard completed", zap.Float64("tdee", f.result.TDEE))
	if interactive && !opts.asJSON {
		// Already on screen.
		return nil
	}
	return writeResult(out, draft, *f.result, opts.asJSON)
}

func runInteractive(in io.Reader, out io.Writer, today time.Time, log *zap.Logger, quiet bool) (flow, error) {
	m := newModel(today, log)
	m.quiet = quiet
	final, err := tea.NewProgram(m, tea.WithInput(in), tea.WithOutput(out)).Run()
	if err != nil {
		return flow{}, fmt.Errorf("run wizard: %w", err)
	}
	fm := final.(model)
	if fm.aborted || fm.flow.result == nil {
		return fm.flow, errAborted
	}
	return fm.flow, nil
}
