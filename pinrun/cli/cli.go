// Package cli is pinrun's entry point. It parses the global flags, decides
// which command the remaining arguments belong to and runs it.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/subcommands"

	"affinity.mask/pinrun/cmd"
	"affinity.mask/pinrun/config"
	"affinity.mask/pinrun/runner"
	"affinity.mask/pkg/log"
)

// numeric matches arguments that start like a number, negative ones
// included. They are always positional.
var numeric = regexp.MustCompile(`^[+-]?[0-9]`)

// globalFlagCount returns how many leading args are global flags, counting
// the separate value of a non-boolean flag. Scanning stops at "--", at the
// first non-flag, at anything numeric and at any name fs does not define,
// so "-5" or "-x" are handed on as positionals.
func globalFlagCount(fs *flag.FlagSet, args []string) int {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" || a == "-" || !strings.HasPrefix(a, "-") || numeric.MatchString(a) {
			return i
		}
		name := strings.TrimPrefix(strings.TrimPrefix(a, "-"), "-")
		hasValue := false
		if j := strings.IndexByte(name, '='); j >= 0 {
			name, hasValue = name[:j], true
		}
		f := fs.Lookup(name)
		if f == nil {
			return i
		}
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); hasValue || (ok && b.IsBoolFlag()) {
			continue
		}
		i++
	}
	return len(args)
}

// route returns the command line handed to the commander. Bare positionals
// always go to "run", whatever they contain; "child" is honoured only in a
// process started by runner.ExecLauncher.
func route(conf *config.Config, rest []string, child bool) []string {
	switch {
	case child && len(rest) > 0 && rest[0] == "child":
		return rest
	case conf.PrintMask:
		return append([]string{"mask", "--"}, rest...)
	default:
		return append([]string{"run", "--"}, rest...)
	}
}

// Main runs pinrun with args (without the program name) and returns the
// exit status.
func Main(args []string) int {
	name := filepath.Base(os.Args[0])
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cmd.Stderr)
	conf := config.RegisterFlags(fs)

	n := globalFlagCount(fs, args)
	if err := fs.Parse(args[:n]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return int(subcommands.ExitSuccess)
		}
		return int(subcommands.ExitUsageError)
	}
	rest := args[n:]
	if len(rest) > 0 && rest[0] == "--" {
		rest = rest[1:]
	}

	// The routed line starts with a command name, so this only records it
	// as fs.Args() for the commander; flag values are kept.
	if err := fs.Parse(route(conf, rest, os.Getenv(runner.ChildEnv) == "1")); err != nil {
		return int(subcommands.ExitUsageError)
	}

	if err := conf.Load(fs); err != nil {
		fmt.Fprintf(cmd.Stderr, "%s: %v\n", name, err)
		return int(subcommands.ExitFailure)
	}
	if err := conf.Apply(); err != nil {
		fmt.Fprintf(cmd.Stderr, "%s: %v\n", name, err)
		return int(subcommands.ExitFailure)
	}
	log.SetOutput(cmd.Stderr)
	log.Debugf("args: %q, dispatching %q", args, fs.Args())

	cdr := subcommands.NewCommander(fs, name)
	cdr.Register(new(cmd.Run), "")
	cdr.Register(new(cmd.Mask), "")
	cdr.Register(new(cmd.Child), "internal use only")
	return int(cdr.Execute(context.Background(), conf))
}
