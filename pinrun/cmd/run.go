package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"affinity.mask/pinrun/config"
	"affinity.mask/pinrun/runner"
)

// Run implements subcommands.Command for the "run" command. Every set of
// positional arguments given to pinrun is handed to it:
// pinrun <parent-cpu> <child-cpu> <num-loops>.
type Run struct {
	// launcher overrides the re-exec launcher in tests.
	launcher runner.Launcher
}

// Name implements subcommands.Command.Name.
func (*Run) Name() string {
	return "run"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Run) Synopsis() string {
	return "pin a parent and a child to cpus and spin in both"
}

// Usage implements subcommands.Command.Usage.
func (*Run) Usage() string {
	return `run <parent-cpu> <child-cpu> <num-loops>

Starts a child, pins the parent to <parent-cpu> and the child to <child-cpu>,
makes <num-loops> getppid calls in each and waits for the child to exit.
`
}

// SetFlags implements subcommands.Command.SetFlags.
func (*Run) SetFlags(*flag.FlagSet) {}

// Execute implements subcommands.Command.Execute.
func (r *Run) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 3 {
		fmt.Fprintf(Stderr, "Usage: %s parent-cpu child-cpu num-loops\n", progName)
		return subcommands.ExitFailure
	}
	conf := args[0].(*config.Config)

	a := runner.Args{
		ParentCPU: atoi(f.Arg(0)),
		ChildCPU:  atoi(f.Arg(1)),
		Loops:     loopCount(f.Arg(2)),
	}

	launcher := r.launcher
	if launcher == nil {
		launcher = &runner.ExecLauncher{
			Argv0:  os.Args[0],
			Flags:  conf.ToFlags(),
			Stdout: Stdout,
			Stderr: Stderr,
		}
	}
	rn := &runner.Runner{Launcher: launcher}
	if conf.ReportMask {
		rn.MaskReport = Stdout
	}
	if conf.Timing {
		rn.Timing = Stderr
	}

	if _, err := rn.Parent(a); err != nil {
		return Errorf("%v", err)
	}
	return subcommands.ExitSuccess
}
