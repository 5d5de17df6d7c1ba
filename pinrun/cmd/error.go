// Package cmd holds pinrun's subcommands.
package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/subcommands"

	"affinity.mask/pkg/log"
)

var (
	// Stdout and Stderr are the streams commands write program output to.
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr

	progName = filepath.Base(os.Args[0])
)

// Errorf reports a fatal error as "<prog>: <message>" on Stderr and returns
// the failure exit status.
func Errorf(format string, args ...interface{}) subcommands.ExitStatus {
	msg := fmt.Sprintf(format, args...)
	log.Debugf("FATAL ERROR: %s", msg)
	fmt.Fprintf(Stderr, "%s: %s\n", progName, msg)
	return subcommands.ExitFailure
}
