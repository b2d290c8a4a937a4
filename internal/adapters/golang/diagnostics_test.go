package golang_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/fuse/internal/adapters/golang"
	"go.trai.ch/fuse/internal/core/domain"
)

func TestParseDiagnostics(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   []domain.Diagnostic
	}{
		{
			name:   "positions with and without column",
			output: "# fuse.local/unit/u1\n./unit.go:3:7: undefined: x\nscript.fuse:12: label L defined and not used\n",
			want: []domain.Diagnostic{
				{Severity: domain.SeverityError, Message: "undefined: x", File: "unit.go", Line: 3, Column: 7},
				{Severity: domain.SeverityError, Message: "label L defined and not used", File: "script.fuse", Line: 12},
			},
		},
		{
			name:   "continuation lines",
			output: "./unit.go:4:9: cannot use s (variable of type string) as int value in return statement\n\thave (string)\n\twant (int)\n",
			want: []domain.Diagnostic{{
				Severity: domain.SeverityError,
				Message:  "cannot use s (variable of type string) as int value in return statement\nhave (string)\nwant (int)",
				File:     "unit.go",
				Line:     4,
				Column:   9,
			}},
		},
		{
			name:   "no positions",
			output: "go: example.com/missing@v1.0.0: reading example.com/missing: 404\n",
			want: []domain.Diagnostic{{
				Severity: domain.SeverityError,
				Code:     "build",
				Message:  "go: example.com/missing@v1.0.0: reading example.com/missing: 404",
			}},
		},
		{
			name:   "empty output",
			output: "",
			want: []domain.Diagnostic{{
				Severity: domain.SeverityError,
				Code:     "build",
				Message:  "build failed without output",
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, golang.ParseDiagnostics([]byte(tt.output)))
		})
	}
}

func TestRenderExports(t *testing.T) {
	got := string(golang.RenderExports([]string{"Helper", "Startup"}))

	want := "// Code generated by fuse. DO NOT EDIT.\n\n" +
		"package main\n\n" +
		"import fusereflect \"reflect\"\n\n" +
		"var FuseExports = map[string]fusereflect.Type{\n" +
		"\t\"Helper\": fusereflect.TypeFor[Helper](),\n" +
		"\t\"Startup\": fusereflect.TypeFor[Startup](),\n" +
		"}\n"
	assert.Equal(t, want, got)
}
