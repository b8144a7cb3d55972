package launcher

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/latchbio-nfcore/rnadnavar/logx"
)

// Execute runs the engine to completion. There is no timeout; the process
// ends when the engine does or when the surrounding task is killed.
func (l *Launcher) Execute(command []string, env []string, dir string) error {
	if len(command) == 0 {
		return fmt.Errorf("%w: empty command line", ErrEngineStart)
	}

	logx.Log.Info().Str("dir", dir).Msg("launching workflow engine")
	fmt.Fprintln(l.Stdout, strings.Join(command, " "))
	fmt.Fprintln(l.Stdout)

	cmd := exec.Command(command[0], command[1:]...)
	cmd.Env = env
	cmd.Dir = dir
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("%w: %v", ErrEngineStart, err)
	}
	return nil
}
