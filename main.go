package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/d2jvkpn/faster/pkg/cmd"
	"github.com/d2jvkpn/faster/pkg/count"
	"github.com/d2jvkpn/faster/pkg/fastq"
	"github.com/d2jvkpn/faster/pkg/transform"
)

const USAGE = `faster  <mode>  [options]  <input1.fastq input2.fastq.gz ...>
  exactly one mode is required; every input is processed in order.
  note:
    1. When input is -, read standard input;
    2. gzip and zstd inputs are detected from their content, not the extension;
    3. filters take a signed value: "50" keeps reads above 50, "-50" keeps reads below 50.`

const LISENSE = `
author: d2jvkpn
version: 2.0.0
release: 2026-10-19
project: https://github.com/d2jvkpn/faster
lisense: GPLv3 (https://www.gnu.org/licenses/gpl-3.0.en.html)
`

const (
	ExitRuntime = 1
	ExitUsage   = 2
)

// UsageError marks bad invocations: no mode, several modes, no input.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

type options struct {
	table, lengths, gc, qscore bool

	nx, qyield, filterl, filterq string
	trimfront, trimtail, sample  string
	regexString, regexFile       string

	skipHeader, jsonFormat, progress bool
	logLevel                         string
}

// consumer handles one input; it is chosen once per invocation.
type consumer func(name string, src fastq.Source, wt io.Writer) error

func main() {
	root := newRootCmd()
	os.Exit(ExitCode(root.Execute()))
}

func ExitCode(err error) int {
	var usage *UsageError

	switch {
	case err == nil:
		return 0
	case errors.As(err, &usage), errors.Is(err, transform.ErrInvalidArgument):
		log.Error(err)
		return ExitUsage
	default:
		log.Error(err)
		return ExitRuntime
	}
}

func newRootCmd() *cobra.Command {
	opts := new(options)

	root := &cobra.Command{
		Use:           "faster",
		Short:         "Statistics and simple transforms for FASTQ files",
		Long:          USAGE + "\n" + LISENSE,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, args []string) error {
			return run(command, opts, args)
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	logLevel := os.Getenv("FASTER_LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	flags := root.Flags()
	flags.SortFlags = false
	flags.BoolVarP(&opts.table, "table", "t", false, "summary statistics table, one row per file")
	flags.BoolVarP(&opts.lengths, "len", "l", false, "length of every read")
	flags.BoolVarP(&opts.gc, "gc", "g", false, "GC content of every read")
	flags.BoolVarP(&opts.qscore, "qscore", "q", false, "mean Phred score of every read (probability space)")
	flags.StringVarP(&opts.nx, "nx", "x", "", "NX value of the file, fraction in [0, 1], e.g. 0.5 for N50")
	flags.StringVar(&opts.qyield, "qyield", "", "percent of bases with a Phred score >= value, in [8, 60]")
	flags.StringVarP(&opts.filterl, "filterl", "f", "", "keep reads longer than value, or shorter than |value| if negative")
	flags.StringVar(&opts.filterq, "filterq", "", "keep reads with mean quality above value, or below |value| if negative, in [-60, 60]")
	flags.StringVar(&opts.trimfront, "trimfront", "", "trim value bases from the start of every read")
	flags.StringVar(&opts.trimtail, "trimtail", "", "trim value bases from the end of every read")
	flags.StringVar(&opts.regexString, "regex-string", "", "keep reads whose id matches the regular expression")
	flags.StringVar(&opts.regexFile, "regex-file", "", "keep reads whose id matches any pattern of the file, one per line")
	flags.StringVarP(&opts.sample, "sample", "p", "", "keep every round(1/value)-th read, fraction in (0, 1]")

	flags.BoolVarP(&opts.skipHeader, "skip-header", "s", false, "do not print the table header")
	flags.BoolVar(&opts.jsonFormat, "json", false, "table rows as json")
	flags.BoolVar(&opts.progress, "progress", false, "show a progress bar on stderr (file inputs only)")
	flags.StringVar(&opts.logLevel, "log-level", logLevel, "log level: debug, info, warn, error (env FASTER_LOG_LEVEL)")

	return root
}

var modeFlags = []string{
	"table", "len", "gc", "qscore", "nx", "qyield", "filterl", "filterq",
	"trimfront", "trimtail", "regex-string", "regex-file", "sample",
}

// selectConsumer parses the single selected mode.
func selectConsumer(command *cobra.Command, opts *options) (consume consumer, err error) {
	var (
		selected []string
		op       transform.Operator
	)

	for _, name := range modeFlags {
		if command.Flags().Changed(name) {
			selected = append(selected, name)
		}
	}
	switch len(selected) {
	case 1:
	case 0:
		return nil, &UsageError{Err: errors.New("no mode selected, see --help")}
	default:
		return nil, &UsageError{Err: fmt.Errorf("modes are mutually exclusive: %v", selected)}
	}

	switch selected[0] {
	case "table":
		table := count.NewTable(opts.skipHeader, opts.jsonFormat)
		return func(name string, src fastq.Source, wt io.Writer) error {
			ct, err := table.Apply(name, src, wt)
			if err == nil {
				log.Debug("table row written", "file", name, "reads", ct.RN, "bases", ct.BN)
			}
			return err
		}, nil
	case "len":
		op = transform.Lengths{}
	case "gc":
		op = transform.GCContent{}
	case "qscore":
		op = transform.Qualities{}
	case "nx":
		op, err = transform.ParseNX(opts.nx)
	case "qyield":
		op, err = transform.ParseQualYield(opts.qyield)
	case "filterl":
		op, err = transform.ParseLengthFilter(opts.filterl)
	case "filterq":
		op, err = transform.ParseQualFilter(opts.filterq)
	case "trimfront":
		op, err = transform.ParseTrimFront(opts.trimfront)
	case "trimtail":
		op, err = transform.ParseTrimTail(opts.trimtail)
	case "regex-string":
		op, err = transform.ParseIDRegex(opts.regexString)
	case "regex-file":
		op, err = transform.LoadIDRegexFile(opts.regexFile)
	case "sample":
		op, err = transform.ParseSubsample(opts.sample)
	}
	if err != nil {
		return nil, err
	}

	return func(name string, src fastq.Source, wt io.Writer) error {
		if err := op.Apply(src, wt); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		return nil
	}, nil
}

func run(command *cobra.Command, opts *options, inputs []string) (err error) {
	var (
		start   time.Time
		consume consumer
		ci      *cmd.CmdInput
		bar     io.Writer
	)

	if command.Flags().NFlag() == 0 && len(inputs) == 0 {
		command.SetOut(command.ErrOrStderr())
		_ = command.Help()
		return &UsageError{Err: errors.New("no mode and no input")}
	}

	if _, err = cmd.SetLogRFC3339(command.ErrOrStderr(), opts.logLevel); err != nil {
		return &UsageError{Err: fmt.Errorf("--log-level: %w", err)}
	}

	if consume, err = selectConsumer(command, opts); err != nil {
		return err
	}
	if len(inputs) == 0 {
		return &UsageError{Err: errors.New("no input, use - for standard input")}
	}

	if opts.progress {
		bar = command.ErrOrStderr()
	}

	start = time.Now()
	wt := bufio.NewWriterSize(command.OutOrStdout(), 1<<16)
	defer func() {
		if e := wt.Flush(); e != nil && err == nil {
			err = e
		}
	}()

	for _, input := range inputs {
		log.Info("faster read sequences", "input", input)

		if ci, err = cmd.NewCmdInput(input, bar); err != nil {
			return err
		}
		err = consume(input, ci, wt)
		ci.Close()

		if err != nil {
			return err
		}
	}

	log.Info("faster elapsed", "duration", time.Since(start))
	return nil
}
