package cmd

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/google/subcommands"

	"affinity.mask/pkg/cpuset"
)

// Mask implements subcommands.Command for the "mask" command. pinrun
// dispatches to it when -print-mask is given.
type Mask struct{}

// Name implements subcommands.Command.Name.
func (*Mask) Name() string {
	return "mask"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Mask) Synopsis() string {
	return "print the cpu affinity of a process"
}

// Usage implements subcommands.Command.Usage.
func (*Mask) Usage() string {
	return `mask [pid]

Prints the affinity of <pid>, or of pinrun itself when omitted, followed by
the number of cpus in it.
`
}

// SetFlags implements subcommands.Command.SetFlags.
func (*Mask) SetFlags(*flag.FlagSet) {}

// Execute implements subcommands.Command.Execute.
func (*Mask) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	pid := 0
	if f.NArg() == 1 {
		var err error
		if pid, err = strconv.Atoi(f.Arg(0)); err != nil || pid < 0 {
			return Errorf("invalid pid %q", f.Arg(0))
		}
	}

	set, err := cpuset.Current(pid)
	if err != nil {
		return Errorf("%v", err)
	}
	fmt.Fprintf(Stdout, "%s (%d)\n", set, set.Count())
	return subcommands.ExitSuccess
}
