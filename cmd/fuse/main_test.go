package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/fuse/internal/app"
	"go.trai.ch/fuse/internal/core/domain"
	"go.trai.ch/fuse/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type stubEngine struct {
	err error
}

func (s stubEngine) Compile(context.Context, domain.CompilationRequest) (domain.Callable, error) {
	return nil, s.err
}

func (s stubEngine) Resolve(_ context.Context, refs []domain.ReferenceSpec) ([]domain.ReferenceSpec, error) {
	return refs, s.err
}

func providerFor(components *app.Components) ComponentProvider {
	return func(context.Context) (*app.Components, func(), error) {
		return components, func() {}, nil
	}
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	application := app.New(stubEngine{}, mockLogger)
	stdout := new(bytes.Buffer)

	exitCode := run(context.Background(), []string{"version"}, stdout, new(bytes.Buffer),
		providerFor(&app.Components{App: application, Logger: mockLogger}))
	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "fuse version")
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run logs the error and returns 1 when a command fails.
func TestRun_ExecutionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, domain.ErrTypeNotFound)
	}).Times(1)

	application := app.New(stubEngine{err: domain.ErrTypeNotFound}, mockLogger)

	exitCode := run(context.Background(), []string{"run", "package main"}, new(bytes.Buffer), new(bytes.Buffer),
		providerFor(&app.Components{App: application, Logger: mockLogger}))
	assert.Equal(t, 1, exitCode)
}

// TestRun_CheckFailure verifies that failed checks exit with 1 without logging again.
func TestRun_CheckFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	application := app.New(stubEngine{err: domain.ErrCompilationFailed}, mockLogger)
	stdout := new(bytes.Buffer)

	exitCode := run(context.Background(), []string{"check", "a.go"}, stdout, new(bytes.Buffer),
		providerFor(&app.Components{App: application, Logger: mockLogger}))
	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stdout.String(), "FAIL  a.go")
}

// TestRun_AppliesOptions verifies that options are applied to the App before execution.
func TestRun_AppliesOptions(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	application := app.New(stubEngine{}, mockLogger)
	applied := false

	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), new(bytes.Buffer),
		providerFor(&app.Components{App: application, Logger: mockLogger}),
		func(a *app.App) {
			applied = a == application
		})
	assert.Equal(t, 0, exitCode)
	assert.True(t, applied)
}
