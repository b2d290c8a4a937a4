package logger

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

const (
	colorSlate  = "#667085"
	colorRed    = "#D93025"
	colorYellow = "#F59E0B"
	colorDim    = "#98A2B3"

	glyphCross   = "✗"
	glyphWarning = "!"
	glyphDebug   = "·"
)

// colorProfile returns Ascii when NO_COLOR is set and the detected profile otherwise.
func colorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

func newOutput(w io.Writer) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}
	return termenv.NewOutput(w, termenv.WithProfile(colorProfile()), termenv.WithTTY(true))
}
