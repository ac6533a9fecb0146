package schedsim

import "fmt"

// traceStep writes one step record to the installed trace writer, if any.
// Records are comma-free prose, one per driver decision, cheap enough to
// leave in the hot loop behind the nil check.
func (s *Sim) traceStep(format string, args ...any) {
	if s.trace == nil {
		return
	}
	fmt.Fprintf(s.trace, format, args...)
}
