package text

import (
	"io"

	"github.com/cory-johannsen/escape/internal/game/event"
)

// Prompt is written before each line of input is read.
const Prompt = "\n> "

// Renderer writes formatted events to a stream, one block per event.
type Renderer struct {
	out io.Writer
	f   *Formatter
}

// NewRenderer creates a Renderer writing to out.
//
// Precondition: out and f must be non-nil.
func NewRenderer(out io.Writer, f *Formatter) *Renderer {
	return &Renderer{out: out, f: f}
}

// Render writes each event that has a textual form, followed by a newline.
func (r *Renderer) Render(events ...event.Event) error {
	for _, e := range events {
		s := r.f.Format(e)
		if s == "" {
			continue
		}
		if _, err := io.WriteString(r.out, s+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// Prompt writes the input prompt.
func (r *Renderer) Prompt() error {
	_, err := io.WriteString(r.out, Prompt)
	return err
}
