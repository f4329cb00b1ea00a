// Command triplet demonstrates ordered execution of three goroutines started in
// an arbitrary order.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/jessevdk/go-flags"
	"golang.org/x/term"

	"github.com/denex/triplet/pkg/processor"
	"github.com/denex/triplet/pkg/progress"
)

type opts struct {
	Order   string `short:"o" long:"order" default:"second,third,first" description:"goroutine start order, step names or letters a,b,c"`
	Repeat  int    `short:"n" long:"repeat" default:"1" description:"number of independent runs"`
	NoColor bool   `long:"no-color" description:"disable color output"`
	Debug   bool   `short:"d" long:"debug" description:"enable debug output"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	o, err := parseOpts(args)
	if err != nil {
		return err
	}

	order, err := processor.ParseOrder(o.Order)
	if err != nil {
		return fmt.Errorf("parse order: %w", err)
	}

	noColor := o.NoColor || !isTerminal(out)
	color.NoColor = noColor
	log := progress.NewLogger(progress.Config{Out: out, NoColor: noColor, Debug: o.Debug})
	log.Debug("options: order=%s repeat=%d", processor.FormatOrder(order), o.Repeat)

	p := processor.New(processor.Config{Order: order, Repeat: o.Repeat}, log)
	res, err := p.Run(ctx)
	if err != nil {
		return fmt.Errorf("triplet: %w", err)
	}

	log.PrintRaw("\n%s", processor.Report(res))
	return nil
}

func parseOpts(args []string) (opts, error) {
	var o opts
	parser := flags.NewParser(&o, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		return opts{}, err
	}
	return o, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits int
}
