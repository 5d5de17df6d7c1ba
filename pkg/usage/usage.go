// Package usage measures wall, user and system time the way time -p reports
// them.
package usage

import (
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// Snapshot is a point-in-time reading of the clock and of the resource usage
// of the calling process and its reaped children.
type Snapshot struct {
	Wall time.Time
	User time.Duration
	Sys  time.Duration
}

// Take reads the current snapshot.
func Take() (Snapshot, error) {
	s := Snapshot{Wall: time.Now()}
	for _, who := range []int{unix.RUSAGE_SELF, unix.RUSAGE_CHILDREN} {
		var ru unix.Rusage
		if err := unix.Getrusage(who, &ru); err != nil {
			return Snapshot{}, os.NewSyscallError("getrusage", err)
		}
		s.User += time.Duration(ru.Utime.Nano())
		s.Sys += time.Duration(ru.Stime.Nano())
	}
	return s, nil
}

// Report is the difference between two snapshots.
type Report struct {
	Real time.Duration
	User time.Duration
	Sys  time.Duration
}

// Since returns the usage accumulated between start and end.
func Since(start, end Snapshot) Report {
	return Report{
		Real: end.Wall.Sub(start.Wall),
		User: end.User - start.User,
		Sys:  end.Sys - start.Sys,
	}
}

// WriteTo writes the report in time -p format.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	n, err := fmt.Fprintf(w, "real %.2f\nuser %.2f\nsys %.2f\n", r.Real.Seconds(), r.User.Seconds(), r.Sys.Seconds())
	return int64(n), err
}
