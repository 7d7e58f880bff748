// Package output provides terminal presentation for check results: a
// progress bar, a width-aware result table with color highlighting, and a
// machine-readable JSON format.
package output

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// defaultBarSize is the character width of the progress bar.
const defaultBarSize = 20

// Progress renders a textual progress bar for the lookup batch.
//
// Fields:
//   - writer: Destination for progress output (typically os.Stderr)
//   - size: Character width of the bar
//   - enabled: Whether progress output is rendered at all
//   - mu: Mutex protecting concurrent updates
type Progress struct {
	writer  io.Writer
	size    int
	enabled bool
	mu      sync.Mutex
}

// NewProgress creates a new progress bar writing to w.
//
// Parameters:
//   - w: Destination for progress output (typically os.Stderr)
//
// Returns:
//   - *Progress: A new enabled progress bar
func NewProgress(w io.Writer) *Progress {
	return &Progress{writer: w, size: defaultBarSize, enabled: true}
}

// SetEnabled enables or disables progress rendering.
//
// Useful for suppressing the bar in non-interactive environments or when
// structured output formats are piped.
//
// Parameters:
//   - enabled: true to render progress; false to suppress it
func (p *Progress) SetEnabled(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = enabled
}

// Update renders the bar for the given completion state.
//
// This method is safe to call concurrently from progress callbacks.
//
// Parameters:
//   - done: Completed steps, 0 to total
//   - total: Total number of steps
func (p *Progress) Update(done, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled {
		return
	}

	filled, percent := 0, 0
	if total > 0 {
		filled = p.size * done / total
		percent = 100 * done / total
	}
	_, _ = fmt.Fprintf(p.writer, "\r[%s%s] %d/%d %d%%",
		strings.Repeat("=", filled),
		strings.Repeat("-", p.size-filled),
		done, total, percent)
}

// Done finishes the bar and moves the cursor past the progress line.
func (p *Progress) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.enabled {
		_, _ = fmt.Fprintln(p.writer)
	}
}
