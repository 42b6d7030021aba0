// ABOUTME: Debounce and request-sequencing helpers for search-driven fetches
// ABOUTME: Generation-tagged timers plus monotonic sequence numbers for stale replies

package debounce

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// SettledMsg fires when the quiet period elapses without another Bump. Only
// the message carrying the latest generation is acted on.
type SettledMsg struct {
	Gen int
}

// Controller coalesces rapid input changes into a single settled event and
// orders the fetches those events trigger. Bump restarts the quiet period;
// Next/Accept discard responses that arrive after a newer request was issued.
// It is not safe for concurrent use; drive it from a single update loop.
type Controller struct {
	quiet time.Duration

	gen      int
	issued   int
	accepted int
}

// New creates a Controller with the given quiet period.
func New(quiet time.Duration) *Controller {
	return &Controller{quiet: quiet}
}

// Bump registers an input change and returns a timer command for the new
// generation. Earlier timers keep running but their messages no longer match.
func (c *Controller) Bump() tea.Cmd {
	c.gen++
	gen := c.gen
	return tea.Tick(c.quiet, func(time.Time) tea.Msg {
		return SettledMsg{Gen: gen}
	})
}

// Settled reports whether the message belongs to the latest generation.
func (c *Controller) Settled(msg SettledMsg) bool {
	return msg.Gen == c.gen
}

// Cancel invalidates any pending settle timers without starting a new one.
func (c *Controller) Cancel() {
	c.gen++
}

// Next allocates a sequence number for an outgoing request. Responses must
// echo it back through Accept.
func (c *Controller) Next() int {
	c.issued++
	return c.issued
}

// Accept reports whether a response with the given sequence number should be
// applied. A response is discarded when a newer request has been issued since,
// or when an even newer response already landed.
func (c *Controller) Accept(seq int) bool {
	if seq < c.issued || seq <= c.accepted {
		return false
	}
	c.accepted = seq
	return true
}
