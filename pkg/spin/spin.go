// Package spin burns CPU time with cheap system calls.
package spin

import "golang.org/x/sys/unix"

// Loop calls getppid n times. The result is discarded; only the time spent
// matters.
func Loop(n uint64) {
	for i := uint64(0); i < n; i++ {
		unix.Getppid()
	}
}
