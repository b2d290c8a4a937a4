// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/fuse/internal/core/domain"
)

// Executor defines the interface for running subprocesses.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Run executes the command and waits for it.
	//
	// A process that starts and exits non-zero is not an error: its status is in the result.
	// The error is reserved for processes that could not be started or were cancelled.
	Run(ctx context.Context, cmd domain.Command) (domain.CommandResult, error)
}
