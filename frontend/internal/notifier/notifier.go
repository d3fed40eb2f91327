// Package notifier holds the transient status line shown after a signup or
// unregister attempt. Each browser session owns one display region.
package notifier

import (
	"sync"
	"time"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Message is what the status line displays.
type Message struct {
	Text string
	Kind Kind
}

type region struct {
	msg       Message
	expiresAt time.Time
	timer     *time.Timer
	gen       uint64
}

// Notifier keeps at most one visible message per session. A new Show
// replaces the message and restarts the display window; the previous hide
// timer is stopped, so it can never hide the newer message.
type Notifier struct {
	mu      sync.Mutex
	window  time.Duration
	regions map[string]*region
	now     func() time.Time
}

func New(window time.Duration) *Notifier {
	return &Notifier{
		window:  window,
		regions: make(map[string]*region),
		now:     time.Now,
	}
}

// Show makes text visible for session and arms the hide timer.
func (n *Notifier) Show(session, text string, kind Kind) {
	n.mu.Lock()
	defer n.mu.Unlock()

	reg, ok := n.regions[session]
	if !ok {
		reg = &region{}
		n.regions[session] = reg
	}
	if reg.timer != nil {
		reg.timer.Stop()
	}

	reg.gen++
	gen := reg.gen
	reg.msg = Message{Text: text, Kind: kind}
	reg.expiresAt = n.now().Add(n.window)
	reg.timer = time.AfterFunc(n.window, func() { n.hide(session, gen) })
}

// hide clears the region unless a later Show already took it over. The
// generation check covers a timer that fired while Show held the lock.
func (n *Notifier) hide(session string, gen uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	reg, ok := n.regions[session]
	if !ok || reg.gen != gen {
		return
	}
	delete(n.regions, session)
}

// Current returns the visible message of session and how long it stays visible.
func (n *Notifier) Current(session string) (Message, time.Duration, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	reg, ok := n.regions[session]
	if !ok {
		return Message{}, 0, false
	}
	remaining := reg.expiresAt.Sub(n.now())
	if remaining <= 0 {
		return Message{}, 0, false
	}
	return reg.msg, remaining, true
}

// Close stops every pending timer and drops all messages.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()

	for session, reg := range n.regions {
		if reg.timer != nil {
			reg.timer.Stop()
		}
		delete(n.regions, session)
	}
}
