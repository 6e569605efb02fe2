package composer

import (
	"fmt"

	"github.com/doniai/doniai-cli/internal/markdown"
)

// Mode is the composer view mode.
type Mode int

const (
	ModeSource Mode = iota
	ModePreview
	ModeSplit
)

var modeNames = []string{"Content", "Preview", "Split"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Modes returns the modes in tab order.
func Modes() []Mode {
	return []Mode{ModeSource, ModePreview, ModeSplit}
}

// Pane holds the last rendered preview.
type Pane struct {
	HTML   string
	Source string
	Err    error
}

// ViewController tracks the active mode and keeps the preview pane in step
// with the buffer. There is no render cache: every entry into Preview or
// Split renders the buffer again.
type ViewController struct {
	mode     Mode
	buf      *Buffer
	renderer markdown.Renderer
	pane     Pane
}

// NewViewController starts in Source mode.
func NewViewController(buf *Buffer, renderer markdown.Renderer) *ViewController {
	return &ViewController{mode: ModeSource, buf: buf, renderer: renderer}
}

// Mode returns the active mode.
func (v *ViewController) Mode() Mode {
	return v.mode
}

// SetMode switches to m. Preview and Split re-render the current buffer.
func (v *ViewController) SetMode(m Mode) error {
	if m < ModeSource || m > ModeSplit {
		return fmt.Errorf("unknown view mode %d", int(m))
	}
	v.mode = m
	if m != ModeSource {
		v.refresh()
	}
	return nil
}

// refresh renders the buffer into the preview pane. A renderer error
// leaves whatever it produced in the pane and records the error.
func (v *ViewController) refresh() {
	src := v.buf.Value()
	html, err := v.renderer.Render(src)
	v.pane = Pane{HTML: html, Source: src, Err: err}
}

// Pane returns the preview pane contents.
func (v *ViewController) Pane() Pane {
	return v.pane
}

// Visible reports which panes the current mode shows.
func (v *ViewController) Visible() (editor, preview bool) {
	switch v.mode {
	case ModePreview:
		return false, true
	case ModeSplit:
		return true, true
	default:
		return true, false
	}
}

// PaneWidths splits total columns between the editor and the preview.
func (v *ViewController) PaneWidths(total int) (editor, preview int) {
	if total < 0 {
		total = 0
	}
	switch v.mode {
	case ModePreview:
		return 0, total
	case ModeSplit:
		editor = total / 2
		return editor, total - editor
	default:
		return total, 0
	}
}
