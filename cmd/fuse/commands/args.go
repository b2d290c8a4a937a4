package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/fuse/internal/core/domain"
	"go.trai.ch/zerr"
)

// stdinSource is the source argument that reads the fragment from standard input.
const stdinSource = "-"

var (
	errInvalidReference = zerr.New("invalid reference")
	errInvalidOrigin    = zerr.New("invalid origin")
	errInvalidInput     = zerr.New("invalid input")
)

// parseReferences turns name[@version] arguments into reference specs.
func parseReferences(args []string) ([]domain.ReferenceSpec, error) {
	refs := make([]domain.ReferenceSpec, 0, len(args))
	for _, arg := range args {
		ref := domain.ParseReference(arg)
		if ref.Name == "" {
			return nil, zerr.With(errInvalidReference, "reference", arg)
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// parseOrigin splits "file:line". A missing line means line 1.
func parseOrigin(arg string) (string, int, error) {
	file, lineText, found := cutLast(arg, ":")
	if !found {
		return arg, 1, nil
	}
	line, err := strconv.Atoi(lineText)
	if err != nil || line < 1 || file == "" {
		return "", 0, zerr.With(errInvalidOrigin, "origin", arg)
	}
	return file, line, nil
}

func cutLast(s, sep string) (string, string, bool) {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+len(sep):], true
}

// parseInput decodes the JSON input of a run. An empty value means no input.
func parseInput(raw string) (any, error) {
	if raw == "" {
		return nil, nil
	}
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return nil, zerr.Wrap(err, errInvalidInput.Error())
	}
	return value, nil
}

// readSource returns the fragment text for "-" and the argument unchanged otherwise.
func readSource(cmd *cobra.Command, arg string) (string, error) {
	if arg != stdinSource {
		return arg, nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", errors.Join(domain.ErrSourceRead, err)
	}
	return string(data), nil
}

// requestOptions collects the shared run and check flags into request options.
func requestOptions(typeName, methodName string, refArgs []string) ([]domain.RequestOption, error) {
	refs, err := parseReferences(refArgs)
	if err != nil {
		return nil, err
	}
	opts := []domain.RequestOption{domain.WithEntryPoint(typeName, methodName)}
	for _, ref := range refs {
		opts = append(opts, domain.WithReference(ref.Name, ref.Version))
	}
	return opts, nil
}

func writeJSON(w io.Writer, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return zerr.Wrap(err, "failed to encode result")
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
