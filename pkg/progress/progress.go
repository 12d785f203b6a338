package progress

import (
	"fmt"
	"io"
	"os"
)

// Indicator prints a dot per poll of a long-running task and a final
// one-line verdict. It keeps track of whether any dots were printed so
// the verdict always starts on its own line.
type Indicator struct {
	w      io.Writer
	ticked bool
}

// New creates an indicator writing to stdout.
func New() *Indicator {
	return NewTo(os.Stdout)
}

// NewTo creates an indicator writing to w.
func NewTo(w io.Writer) *Indicator {
	return &Indicator{w: w}
}

// Tick prints a single progress dot.
func (p *Indicator) Tick() {
	fmt.Fprint(p.w, ".")
	p.ticked = true
}

// Success ends the indicator with a success message.
func (p *Indicator) Success(message string) {
	p.finish("✓", message)
}

// Fail ends the indicator with a failure message.
func (p *Indicator) Fail(message string) {
	p.finish("✗", message)
}

func (p *Indicator) finish(mark, message string) {
	if p.ticked {
		fmt.Fprintln(p.w)
		p.ticked = false
	}
	fmt.Fprintf(p.w, "%s %s\n", mark, message)
}
