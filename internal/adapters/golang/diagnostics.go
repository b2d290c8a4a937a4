package golang

import (
	"bufio"
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"go.trai.ch/fuse/internal/core/domain"
)

var positionRE = regexp.MustCompile(`^(.+?):(\d+)(?::(\d+))?: (.*)$`)

// parseDiagnostics turns toolchain output into diagnostics.
// Package headers ("# pkg") are skipped; tab-indented lines continue the previous message.
// Output that carries no positions is kept as one diagnostic so no failure is silent.
func parseDiagnostics(output []byte) []domain.Diagnostic {
	var diags []domain.Diagnostic
	var loose []string

	sc := bufio.NewScanner(bytes.NewReader(output))
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.TrimSpace(line) == "", strings.HasPrefix(line, "#"):
			continue
		case strings.HasPrefix(line, "\t") && len(diags) > 0:
			diags[len(diags)-1].Message += "\n" + strings.TrimSpace(line)
			continue
		}

		m := positionRE.FindStringSubmatch(line)
		if m == nil {
			loose = append(loose, line)
			continue
		}

		lineNo, _ := strconv.Atoi(m[2])
		col, _ := strconv.Atoi(m[3])
		diags = append(diags, domain.Diagnostic{
			Severity: domain.SeverityError,
			Message:  m[4],
			File:     strings.TrimPrefix(m[1], "./"),
			Line:     lineNo,
			Column:   col,
		})
	}

	if len(diags) == 0 {
		msg := strings.Join(loose, "\n")
		if msg == "" {
			msg = "build failed without output"
		}
		diags = append(diags, domain.Diagnostic{Severity: domain.SeverityError, Code: "build", Message: msg})
	}
	return diags
}
