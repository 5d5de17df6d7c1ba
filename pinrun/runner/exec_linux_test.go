//go:build linux
// +build linux

package runner

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"testing"

	"affinity.mask/pkg/cpuset"
)

// TestMain turns the test binary into the child when re-executed by
// ExecLauncher, mirroring what the "child" command does in pinrun.
func TestMain(m *testing.M) {
	if os.Getenv(ChildEnv) == "1" {
		os.Exit(childMain(os.Args[1:]))
	}
	os.Exit(m.Run())
}

func childMain(args []string) int {
	if len(args) != 4 || args[0] != "child" || args[1] != "--" {
		fmt.Fprintf(os.Stderr, "unexpected child args %q\n", args)
		return 2
	}
	cpu, err := strconv.Atoi(args[2])
	if err != nil {
		return 2
	}
	loops, err := strconv.ParseUint(args[3], 10, 64)
	if err != nil {
		return 2
	}
	if err := new(Runner).Child(cpu, loops); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func testLauncher() *ExecLauncher {
	return &ExecLauncher{Path: os.Args[0]}
}

func allowedCPU(t *testing.T) int {
	t.Helper()
	m, err := cpuset.Current(0)
	if err != nil {
		t.Fatalf("Current(0): %v", err)
	}
	cpus := m.CPUs()
	if len(cpus) == 0 {
		t.Fatalf("no allowed cpus")
	}
	return cpus[0]
}

// runParent runs Parent on its own goroutine, since pinning leaves the
// goroutine locked to a pinned thread.
func runParent(r *Runner, args Args) (Result, error) {
	type out struct {
		res Result
		err error
	}
	ch := make(chan out, 1)
	go func() {
		res, err := r.Parent(args)
		ch <- out{res, err}
	}()
	o := <-ch
	return o.res, o.err
}

func TestExecSameCPU(t *testing.T) {
	cpu := allowedCPU(t)
	r := &Runner{Launcher: testLauncher()}
	res, err := runParent(r, Args{ParentCPU: cpu, ChildCPU: cpu, Loops: 1000})
	if err != nil {
		t.Fatalf("Parent: %v", err)
	}
	if res.ChildExit != nil {
		t.Errorf("child exit = %v, want success", res.ChildExit)
	}
}

func TestExecInvalidChildCPU(t *testing.T) {
	cpu := allowedCPU(t)
	r := &Runner{Launcher: testLauncher()}
	res, err := runParent(r, Args{ParentCPU: cpu, ChildCPU: cpuset.Capacity + 1, Loops: 1000})
	if err != nil {
		t.Fatalf("Parent: %v, want success despite child failure", err)
	}
	var exitErr *exec.ExitError
	if !errors.As(res.ChildExit, &exitErr) || exitErr.ExitCode() != 1 {
		t.Errorf("child exit = %v, want exit status 1", res.ChildExit)
	}
}

func TestExecNegativeChildCPU(t *testing.T) {
	cpu := allowedCPU(t)
	r := &Runner{Launcher: testLauncher()}
	res, err := runParent(r, Args{ParentCPU: cpu, ChildCPU: -5, Loops: 1000})
	if err != nil {
		t.Fatalf("Parent: %v, want success despite child failure", err)
	}
	var exitErr *exec.ExitError
	if !errors.As(res.ChildExit, &exitErr) || exitErr.ExitCode() != 1 {
		t.Errorf("child exit = %v, want exit status 1 from sched_setaffinity", res.ChildExit)
	}
}

func TestExecInvalidParentCPU(t *testing.T) {
	cpu := allowedCPU(t)
	r := &Runner{Launcher: testLauncher()}
	_, err := runParent(r, Args{ParentCPU: cpuset.Capacity + 1, ChildCPU: cpu, Loops: 0})
	var serr *os.SyscallError
	if !errors.As(err, &serr) || serr.Syscall != "sched_setaffinity" {
		t.Fatalf("Parent = %v, want sched_setaffinity error", err)
	}
}

func TestExecMissingBinary(t *testing.T) {
	r := &Runner{Launcher: &ExecLauncher{Path: "/nonexistent/pinrun"}}
	_, err := runParent(r, Args{Loops: 0})
	if err == nil {
		t.Fatalf("Parent succeeded with missing binary")
	}
}
