// Command copris is a converting print server: it accepts text over
// a TCP socket or stdin, transforms it (markdown to printer escape
// codes, character recoding, variable substitution) and forwards it
// to a file, character device or stdout. Grounded on
// original_source/src/main.c.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/bertronika/copris-go/internal/clog"
	"github.com/bertronika/copris-go/internal/config"
	"github.com/bertronika/copris-go/internal/feature"
	"github.com/bertronika/copris-go/internal/server"
)

const version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := pflag.NewFlagSet("copris", pflag.ContinueOnError)

	port := flags.IntP("port", "p", 0, "listen on TCP port N (omit to read from stdin)")
	daemon := flags.BoolP("daemon", "d", false, "keep serving after each stream")
	encodingFile := flags.StringP("encoding", "e", "", "load encoding file PATH")
	featureFile := flags.StringP("feature", "f", "", "load printer feature file PATH")
	limit := flags.Int64("limit", 0, "byte limit per stream (0 = none)")
	cutoff := flags.Bool("cutoff-limit", false, "truncate instead of discarding over the limit")
	ignoreNonASCII := flags.Bool("ignore-non-ascii", false, "apply the non-ASCII stripping filter")
	verbose := flags.CountP("verbose", "v", "increase verbosity (repeatable)")
	quiet := flags.BoolP("quiet", "q", false, "only print fatal errors")
	dumpCommands := flags.Bool("dump-commands", false, "print a template feature file to stdout and exit")
	showVersion := flags.BoolP("version", "V", false, "show version and exit")

	flags.SortFlags = false
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: copris [arguments] [printer or output file]\n\n%s",
			flags.FlagUsages())
		fmt.Fprint(os.Stderr, "\nTo read from stdin, omit the port argument. To echo data to "+
			"stdout, omit the output file.\n")
	}

	if err := flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		return 2
	}

	if *showVersion {
		fmt.Printf("copris-go version %s\n", version)
		fmt.Printf("Compiled options:\n  Buffer size: %4d bytes\n", config.BufSize)
		return 0
	}

	if *dumpCommands {
		if err := feature.Dump(os.Stdout, version); err != nil {
			fmt.Fprintln(os.Stderr, "copris:", err)
			return 1
		}
		return 0
	}

	level := clog.Error
	switch {
	case *quiet:
		level = clog.Silent
	case *verbose == 1:
		level = clog.Info
	case *verbose >= 2:
		level = clog.Debug
	}
	logger := clog.New(level)

	cfg := config.DefaultConfig()
	cfg.Port = *port
	cfg.Daemon = *daemon
	cfg.EncodingFile = *encodingFile
	cfg.FeatureFile = *featureFile
	cfg.Limit = *limit
	cfg.StripNonASCII = *ignoreNonASCII
	if *cutoff {
		cfg.Cutoff = config.Truncate
	}
	if rest := flags.Args(); len(rest) > 0 {
		cfg.Destination = rest[0]
		if len(rest) > 1 {
			logger.Error("only the first destination file name will be used")
		}
	}

	if err := cfg.Valid(); err != nil {
		fmt.Fprintln(os.Stderr, "copris:", err)
		return 1
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "copris:", err)
		return 1
	}

	if err := srv.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "copris:", err)
		return 1
	}
	return 0
}
