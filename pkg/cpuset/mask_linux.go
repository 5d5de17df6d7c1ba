//go:build linux
// +build linux

package cpuset

import (
	"os"
	"runtime"

	"golang.org/x/sys/unix"

	"affinity.mask/pkg/log"
)

func (m *Mask) toCPUSet() *unix.CPUSet {
	var set unix.CPUSet
	set.Zero()
	for _, cpu := range m.CPUs() {
		set.Set(cpu)
	}
	return &set
}

// Apply restricts scheduling of thread tid to the mask. A tid of 0 means the
// calling thread. Errors are *os.SyscallError naming sched_setaffinity.
func (m *Mask) Apply(tid int) error {
	if err := unix.SchedSetaffinity(tid, m.toCPUSet()); err != nil {
		return os.NewSyscallError("sched_setaffinity", err)
	}
	return nil
}

// Current reads back the affinity of thread tid.
func Current(tid int) (*Mask, error) {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(tid, &set); err != nil {
		return nil, os.NewSyscallError("sched_getaffinity", err)
	}
	m := New()
	for cpu := 0; cpu < Capacity; cpu++ {
		if set.IsSet(cpu) {
			m.Add(cpu)
		}
	}
	return m, nil
}

// PinSelf locks the calling goroutine to its OS thread and restricts that
// thread to cpu alone. The goroutine stays locked afterwards, so work done by
// the caller runs on the pinned thread. It returns the thread id used.
func PinSelf(cpu int) (int, error) {
	runtime.LockOSThread()
	tid := unix.Gettid()

	m := New()
	m.Add(cpu)
	if !m.Has(cpu) {
		log.Debugf("cpu %d is outside the mask capacity of %d, applying an empty mask", cpu, Capacity)
	}
	log.Debugf("setting affinity of tid %d to %q", tid, m.String())
	if err := m.Apply(tid); err != nil {
		return tid, err
	}
	return tid, nil
}
