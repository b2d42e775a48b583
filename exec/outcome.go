package exec

import (
	"fmt"
	"strings"
)

// Outcome is the captured result of a subprocess run.
type Outcome struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Render formats the outcome for the model: a "STDOUT:" section when stdout
// is non-empty, a "STDERR:" section when stderr is non-empty, and a trailing
// "Return code: N" line only when the exit code is non-zero. When all three
// are absent, sentinel is returned instead of an empty string.
func (o Outcome) Render(sentinel string) string {
	var b strings.Builder
	if o.Stdout != "" {
		fmt.Fprintf(&b, "STDOUT:\n%s", o.Stdout)
	}
	if o.Stderr != "" {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "STDERR:\n%s", o.Stderr)
	}
	if o.ExitCode != 0 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Return code: %d", o.ExitCode)
	}
	if b.Len() == 0 {
		return sentinel
	}
	return b.String()
}
