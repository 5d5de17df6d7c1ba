// Package runner implements the two halves of the affinity demo: the parent,
// which starts the child, pins itself, spins and then joins the child; and
// the child, which pins itself and spins.
package runner

import (
	"fmt"
	"io"
	"os"

	"affinity.mask/pkg/cpuset"
	"affinity.mask/pkg/log"
	"affinity.mask/pkg/spin"
	"affinity.mask/pkg/usage"
)

// Process is a started child that can be joined.
type Process interface {
	Pid() int
	// Wait blocks until the child exits. A non-nil error describes how it
	// exited; it carries no meaning for the parent's own outcome.
	Wait() error
}

// Launcher starts a child that pins itself to cpu and spins loops times.
type Launcher interface {
	Launch(cpu int, loops uint64) (Process, error)
}

// Args are the demo's positional arguments.
type Args struct {
	ParentCPU int
	ChildCPU  int
	Loops     uint64
}

// Result describes a completed parent run.
type Result struct {
	ChildPID int
	// ChildExit is whatever Wait returned. It is recorded, never acted on.
	ChildExit error
	Usage     *usage.Report
}

// Runner holds the collaborators used by Parent and Child. Nil function
// fields fall back to the real implementations.
type Runner struct {
	Launcher Launcher

	Pin      func(cpu int) (int, error)
	Readback func(tid int) (*cpuset.Mask, error)
	Spin     func(n uint64)

	// MaskReport, if set, receives one line per process describing the
	// affinity read back after pinning.
	MaskReport io.Writer
	// Timing, if set, receives a time -p style report after the join.
	Timing io.Writer
}

func (r *Runner) pin(role string, cpu int) error {
	pin := r.Pin
	if pin == nil {
		pin = cpuset.PinSelf
	}
	tid, err := pin(cpu)
	if err != nil {
		return err
	}
	log.Debugf("%s pinned to cpu %d (tid %d)", role, cpu, tid)

	if r.MaskReport == nil {
		return nil
	}
	readback := r.Readback
	if readback == nil {
		readback = cpuset.Current
	}
	m, err := readback(tid)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(r.MaskReport, "%s: pid=%d tid=%d cpus=%s\n", role, os.Getpid(), tid, m)
	return err
}

func (r *Runner) spin(n uint64) {
	if r.Spin != nil {
		r.Spin(n)
		return
	}
	spin.Loop(n)
}

// Parent runs the parent side. It returns an error only if the child could
// not be started or the parent could not pin itself; in the latter case the
// child is left running unjoined.
func (r *Runner) Parent(args Args) (Result, error) {
	var start usage.Snapshot
	if r.Timing != nil {
		var err error
		if start, err = usage.Take(); err != nil {
			return Result{}, err
		}
	}

	proc, err := r.Launcher.Launch(args.ChildCPU, args.Loops)
	if err != nil {
		return Result{}, fmt.Errorf("fork: %w", err)
	}
	res := Result{ChildPID: proc.Pid()}
	log.Debugf("started child %d", res.ChildPID)

	if err := r.pin("parent", args.ParentCPU); err != nil {
		log.Warningf("parent could not pin itself; child %d is left unjoined", res.ChildPID)
		return res, err
	}
	r.spin(args.Loops)

	res.ChildExit = proc.Wait()
	if res.ChildExit != nil {
		log.Infof("child %d: %v", res.ChildPID, res.ChildExit)
	} else {
		log.Debugf("reaped child %d", res.ChildPID)
	}

	if r.Timing != nil {
		end, err := usage.Take()
		if err != nil {
			return res, err
		}
		rep := usage.Since(start, end)
		res.Usage = &rep
		if _, err := rep.WriteTo(r.Timing); err != nil {
			return res, err
		}
	}
	return res, nil
}

// Child runs the child side: pin to cpu, then spin loops times.
func (r *Runner) Child(cpu int, loops uint64) error {
	if err := r.pin("child", cpu); err != nil {
		return err
	}
	r.spin(loops)
	return nil
}
