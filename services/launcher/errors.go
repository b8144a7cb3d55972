package launcher

import (
	"errors"
	"fmt"
)

var (
	ErrMissingExecutionToken = errors.New("failed to get execution token")
	ErrProvisioningFailed    = errors.New("failed to provision shared storage volume")
	ErrStagingFailed         = errors.New("failed to stage the shared working directory")
	ErrEngineStart           = errors.New("failed to start the workflow engine")
	ErrExecutionNameMissing  = errors.New("failed to get execution name")
	ErrLogUploadFailed       = errors.New("failed to upload engine log")
)

// ExitError reports a workflow engine that exited with a non-zero status.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("workflow engine exited with status %d", e.Code)
}

// ExitCode maps a run error onto a process exit status: the engine's own
// status when it exited normally, 1 for every other failure.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Code > 0 {
		return exitErr.Code
	}
	return 1
}
