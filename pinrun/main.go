// Binary pinrun pins a parent and a child process to chosen cpus, burns cpu
// time in both and joins the child, so the cost of a placement can be timed.
//
//	pinrun [flags] <parent-cpu> <child-cpu> <num-loops>
//	pinrun -print-mask [pid]
package main

import (
	"os"

	"affinity.mask/pinrun/cli"
)

func main() {
	os.Exit(cli.Main(os.Args[1:]))
}
