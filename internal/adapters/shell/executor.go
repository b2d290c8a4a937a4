// Package shell provides a subprocess executor used to drive the Go toolchain.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.trai.ch/fuse/internal/core/domain"
	"go.trai.ch/fuse/internal/core/ports"
	"go.trai.ch/zerr"
)

// waitDelay bounds how long output pipes may stay open after a cancelled process exits.
const waitDelay = 2 * time.Second

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec with pipes.
type Executor struct {
	logger  ports.Logger
	environ func() []string
}

// NewExecutor creates a new Executor. Subprocess output is mirrored to the logger at debug level.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger:  logger,
		environ: os.Environ,
	}
}

// Run executes cmd and waits for it, capturing combined output.
func (e *Executor) Run(ctx context.Context, cmd domain.Command) (domain.CommandResult, error) {
	if cmd.Name == "" {
		return domain.CommandResult{}, errors.Join(domain.ErrCommandFailed, exec.ErrNotFound)
	}

	cmdEnv := resolveEnvironment(e.environ(), cmd.Env)

	executable := cmd.Name
	if !filepath.IsAbs(cmd.Name) {
		lp, err := lookPath(cmd.Name, cmdEnv)
		if err != nil {
			return domain.CommandResult{}, zerr.With(errors.Join(domain.ErrCommandFailed, err), "command", cmd.Name)
		}
		executable = lp
	}

	c := exec.CommandContext(ctx, executable, cmd.Args...) //nolint:gosec // toolchain command built by caller
	c.Args[0] = cmd.Name
	c.Dir = cmd.Dir
	c.Env = cmdEnv
	c.WaitDelay = waitDelay

	var output bytes.Buffer
	logOut := &logWriter{logger: e.logger}
	w := io.Writer(&output)
	if e.logger != nil {
		w = io.MultiWriter(&output, logOut)
	}
	c.Stdout = w
	c.Stderr = w

	err := c.Run()
	_ = logOut.Close()

	result := domain.CommandResult{Output: output.Bytes()}
	if err == nil {
		return result, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && ctx.Err() == nil {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}

	result.ExitCode = -1
	if ctxErr := ctx.Err(); ctxErr != nil {
		err = ctxErr
	}
	return result, zerr.With(errors.Join(domain.ErrCommandFailed, err), "command", cmd.Name)
}

// logWriter forwards complete lines to the logger at debug level.
type logWriter struct {
	logger ports.Logger
	buf    []byte
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	if w.logger == nil {
		return
	}
	w.logger.Debug(strings.TrimSuffix(string(line), "\r"))
}

// allowListedEnvVars are the system environment variables inherited by subprocesses.
// The toolchain needs its caches and proxy settings; everything else is dropped.
var allowListedEnvVars = map[string]struct{}{
	"HOME":       {},
	"USER":       {},
	"PATH":       {},
	"TMPDIR":     {},
	"GOROOT":     {},
	"GOPATH":     {},
	"GOCACHE":    {},
	"GOMODCACHE": {},
	"GOPROXY":    {},
	"GOPRIVATE":  {},
	"GONOSUMDB":  {},
	"GOSUMDB":    {},
	"GOINSECURE": {},
	"CC":         {},
	"CXX":        {},
}

// resolveEnvironment keeps allow-listed system variables and applies overrides, sorted by key.
func resolveEnvironment(sysEnv []string, overrides map[string]string) []string {
	envMap := make(map[string]string)
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, allowed := allowListedEnvVars[k]; allowed {
			envMap[k] = v
		}
	}
	maps.Copy(envMap, overrides)

	result := make([]string, 0, len(envMap))
	for _, k := range slices.Sorted(maps.Keys(envMap)) {
		result = append(result, k+"="+envMap[k])
	}
	return result
}

// lookPath searches for an executable in the directories named by the PATH entry of env.
func lookPath(file string, env []string) (string, error) {
	if strings.ContainsRune(file, filepath.Separator) {
		if err := findExecutable(file); err != nil {
			return "", err
		}
		return file, nil
	}

	var path string
	for _, entry := range env {
		if after, ok := strings.CutPrefix(entry, "PATH="); ok {
			path = after
			break
		}
	}
	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
