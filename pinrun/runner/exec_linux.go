//go:build linux
// +build linux

package runner

import (
	"io"
	"os"
	"os/exec"
	"strconv"
)

const (
	// SelfExe is the path used to re-execute the running binary.
	SelfExe = "/proc/self/exe"

	// ChildEnv is set to "1" in the environment of every launched child.
	// Only a process carrying it may be dispatched to the "child" command.
	ChildEnv = "PINRUN_CHILD"
)

// ExecLauncher starts the child by re-executing a binary with the internal
// "child" command.
type ExecLauncher struct {
	// Path of the binary. Empty means SelfExe.
	Path string
	// Argv0 is the child's argv[0].
	Argv0 string
	// Flags are placed ahead of the command name, e.g. forwarded global flags.
	Flags []string
	// Env, if non-nil, replaces the inherited environment. ChildEnv is
	// always added.
	Env []string

	Stdout io.Writer
	Stderr io.Writer
}

type execProcess struct {
	cmd *exec.Cmd
}

func (p *execProcess) Pid() int    { return p.cmd.Process.Pid }
func (p *execProcess) Wait() error { return p.cmd.Wait() }

// Launch implements Launcher.Launch.
func (l *ExecLauncher) Launch(cpu int, loops uint64) (Process, error) {
	path := l.Path
	if path == "" {
		path = SelfExe
	}
	argv0 := l.Argv0
	if argv0 == "" {
		argv0 = path
	}

	args := append([]string{}, l.Flags...)
	// "--" keeps a negative cpu from being parsed as a flag by the child.
	args = append(args, "child", "--", strconv.Itoa(cpu), strconv.FormatUint(loops, 10))

	env := l.Env
	if env == nil {
		env = os.Environ()
	}
	env = append(append([]string{}, env...), ChildEnv+"=1")

	cmd := exec.Command(path, args...)
	cmd.Args[0] = argv0
	cmd.Env = env
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &execProcess{cmd: cmd}, nil
}
