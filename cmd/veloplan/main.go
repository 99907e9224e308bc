package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess = 0 // Plan produced
	ExitNoPlan  = 1 // Model solved but no feasible optimal plan exists
	ExitError   = 2 // Configuration or runtime error
)

// InfeasiblePlanError indicates that the model was built and handed to the
// solver successfully, but no feasible optimal production plan exists.
type InfeasiblePlanError struct {
	Message string
}

func (e *InfeasiblePlanError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		// Check error type to determine exit code
		var planErr *InfeasiblePlanError
		if errors.As(err, &planErr) {
			os.Exit(ExitNoPlan)
		}

		// All other errors are configuration/runtime errors
		os.Exit(ExitError)
	}
}
