//go:build linux
// +build linux

package cpuset

import (
	"errors"
	"os"
	"runtime"
	"testing"

	"golang.org/x/sys/unix"
)

// allowedCPU returns a processor the test process may already run on, so the
// tests work inside restricted cpusets.
func allowedCPU(t *testing.T) int {
	t.Helper()
	m, err := Current(0)
	if err != nil {
		t.Fatalf("Current(0): %v", err)
	}
	cpus := m.CPUs()
	if len(cpus) == 0 {
		t.Fatalf("empty affinity for calling thread")
	}
	return cpus[len(cpus)-1]
}

func TestPinSelfReadback(t *testing.T) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		cpu := allowedCPU(t)
		tid, err := PinSelf(cpu)
		if err != nil {
			t.Errorf("PinSelf(%d): %v", cpu, err)
			return
		}
		if tid != unix.Gettid() {
			t.Errorf("PinSelf returned tid %d, calling thread is %d", tid, unix.Gettid())
		}
		got, err := Current(tid)
		if err != nil {
			t.Errorf("Current(%d): %v", tid, err)
			return
		}
		if got.Count() != 1 || !got.Has(cpu) {
			t.Errorf("affinity after pin = %q, want %d", got.String(), cpu)
		}
		// Exit with the goroutine still locked so the pinned thread is
		// discarded instead of returned to the scheduler.
	}()
	<-done
}

func TestApplyEmptyMask(t *testing.T) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		err := New().Apply(unix.Gettid())
		var serr *os.SyscallError
		if !errors.As(err, &serr) || serr.Syscall != "sched_setaffinity" {
			t.Errorf("Apply(empty) = %v, want sched_setaffinity syscall error", err)
			return
		}
		if !errors.Is(err, unix.EINVAL) {
			t.Errorf("Apply(empty) = %v, want EINVAL", err)
		}
	}()
	<-done
}

func TestPinSelfOutOfRange(t *testing.T) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := PinSelf(Capacity + 1)
		if !errors.Is(err, unix.EINVAL) {
			t.Errorf("PinSelf(%d) = %v, want EINVAL", Capacity+1, err)
		}
	}()
	<-done
}
