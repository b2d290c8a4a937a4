package domain

// Command describes a subprocess invocation.
type Command struct {
	// Dir is the working directory.
	Dir string

	// Name is the program to run; it is looked up on the resolved PATH.
	Name string

	// Args are the program arguments.
	Args []string

	// Env holds overrides merged over the executor's allow-listed environment.
	Env map[string]string
}

// CommandResult is the outcome of a subprocess that started.
type CommandResult struct {
	// Output holds the combined stdout and stderr.
	Output []byte

	// ExitCode is the process exit status.
	ExitCode int
}

// Succeeded reports whether the process exited with status zero.
func (r CommandResult) Succeeded() bool {
	return r.ExitCode == 0
}
