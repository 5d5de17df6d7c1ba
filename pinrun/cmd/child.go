package cmd

import (
	"context"
	"flag"
	"strconv"

	"github.com/google/subcommands"

	"affinity.mask/pinrun/config"
	"affinity.mask/pinrun/runner"
)

// Child implements subcommands.Command for the "child" command. It is the
// re-executed half started by "run" and is not meant to be invoked by hand.
type Child struct{}

// Name implements subcommands.Command.Name.
func (*Child) Name() string {
	return "child"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Child) Synopsis() string {
	return "internal: child side of run"
}

// Usage implements subcommands.Command.Usage.
func (*Child) Usage() string {
	return "child <cpu> <num-loops>\n"
}

// SetFlags implements subcommands.Command.SetFlags.
func (*Child) SetFlags(*flag.FlagSet) {}

// Execute implements subcommands.Command.Execute.
func (*Child) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	conf := args[0].(*config.Config)

	cpu, err := strconv.Atoi(f.Arg(0))
	if err != nil {
		return Errorf("invalid cpu %q: %v", f.Arg(0), err)
	}
	loops, err := strconv.ParseUint(f.Arg(1), 10, 64)
	if err != nil {
		return Errorf("invalid loop count %q: %v", f.Arg(1), err)
	}

	rn := &runner.Runner{}
	if conf.ReportMask {
		rn.MaskReport = Stdout
	}
	if err := rn.Child(cpu, loops); err != nil {
		return Errorf("%v", err)
	}
	return subcommands.ExitSuccess
}
