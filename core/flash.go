package core

import (
	"sync"
	"time"
)

type FlashKind int

const (
	FlashSuccess FlashKind = iota
	FlashError
)

// Flash is a user-facing banner. Non-sticky flashes auto-dismiss after the
// configured delay; sticky ones stay until explicitly dismissed (the view
// renders a retry action for those).
type Flash struct {
	Kind    FlashKind
	Message string
	Sticky  bool

	expiresAt time.Time
}

type Flashes struct {
	mu    sync.Mutex
	delta time.Duration
	items []Flash
	now   func() time.Time // mockable
}

func NewFlashes(dismissDelta time.Duration) *Flashes {
	return &Flashes{delta: dismissDelta, now: time.Now}
}

func (f *Flashes) Push(kind FlashKind, msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, Flash{Kind: kind, Message: msg, expiresAt: f.now().Add(f.delta)})
}

func (f *Flashes) PushSticky(kind FlashKind, msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, Flash{Kind: kind, Message: msg, Sticky: true})
}

// Active drops expired flashes and returns the remaining ones.
func (f *Flashes) Active() []Flash {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := f.now()
	kept := f.items[:0]
	for _, fl := range f.items {
		if fl.Sticky || fl.expiresAt.After(now) {
			kept = append(kept, fl)
		}
	}
	f.items = kept
	out := make([]Flash, len(kept))
	copy(out, kept)
	return out
}

// Dismiss removes all sticky flashes (called after the user acts on them).
func (f *Flashes) Dismiss() {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.items[:0]
	for _, fl := range f.items {
		if !fl.Sticky {
			kept = append(kept, fl)
		}
	}
	f.items = kept
}
