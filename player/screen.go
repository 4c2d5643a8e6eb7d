package player

import (
	"sync"

	"github.com/clipwave/clipwave/feed"
	"github.com/clipwave/clipwave/log"
)

// Screen multiplexes feed slots onto one player window. Every slot gets
// its own Surface; only the surface that last played owns the window.
type Screen struct {
	player Player
	title  func(index int) string

	mu       sync.Mutex
	current  int
	slots    map[int]*surface
	onChange func(index int)
}

// NewScreen wraps player. title names the record shown in slot index and
// may be nil.
func NewScreen(player Player, title func(index int) string) *Screen {
	if title == nil {
		title = func(int) string { return "" }
	}

	return &Screen{
		player:  player,
		title:   title,
		current: feed.None,
		slots:   make(map[int]*surface),
	}
}

// Surface returns the surface for slot index, creating it on first use.
func (s *Screen) Surface(index int) feed.Surface {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slot, ok := s.slots[index]; ok {
		return slot
	}

	slot := &surface{screen: s, index: index, paused: true}
	s.slots[index] = slot
	return slot
}

// Current is the slot whose source is loaded in the player, or feed.None.
func (s *Screen) Current() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// OnChange registers fn to be called with the slot index whenever a
// player event changes the paused state of that slot.
func (s *Screen) OnChange(fn func(index int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// HandleEvent applies player events to the surface states. Pass it to
// Player.Observe.
func (s *Screen) HandleEvent(name string, data any) {
	s.mu.Lock()

	changed := feed.None
	switch name {
	case "pause":
		paused, ok := data.(bool)
		if !ok {
			break
		}
		if slot, ok := s.slots[s.current]; ok && slot.paused != paused {
			slot.paused = paused
			changed = s.current
		}
	case "idle-active":
		if idle, _ := data.(bool); idle {
			if slot, ok := s.slots[s.current]; ok && !slot.paused {
				slot.paused = true
				changed = s.current
			}
			s.current = feed.None
		}
	}
	fn := s.onChange
	s.mu.Unlock()

	if changed != feed.None && fn != nil {
		fn(changed)
	}
}

// Release forgets slot index. A later Surface call starts fresh.
func (s *Screen) Release(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.slots, index)
	if s.current == index {
		s.current = feed.None
	}
}

type surface struct {
	screen *Screen
	index  int

	// guarded by screen.mu
	url    string
	paused bool
}

// Load assigns the source. The player only fetches it once the slot
// plays, so ready fires as soon as the source is known.
func (x *surface) Load(url string, onReady func()) error {
	if _, err := sanitizeMediaTarget(url); err != nil {
		return err
	}

	s := x.screen
	s.mu.Lock()
	x.url = url
	if s.current == x.index {
		s.current = feed.None
	}
	s.mu.Unlock()

	if onReady != nil {
		go onReady()
	}
	return nil
}

func (x *surface) Play() error {
	s := x.screen
	s.mu.Lock()
	defer s.mu.Unlock()

	if x.url == "" {
		return ErrNoSource
	}

	if s.current != x.index {
		if err := s.player.Load(x.url, s.title(x.index)); err != nil {
			log.Warnf("load slot %d: %v", x.index, err)
			return err
		}
		if slot, ok := s.slots[s.current]; ok {
			slot.paused = true
		}
		s.current = x.index
	}

	if err := s.player.SetPause(false); err != nil {
		return err
	}
	x.paused = false
	return nil
}

func (x *surface) Pause() error {
	s := x.screen
	s.mu.Lock()
	defer s.mu.Unlock()

	x.paused = true
	if s.current != x.index {
		return nil
	}
	return s.player.SetPause(true)
}

func (x *surface) Paused() bool {
	s := x.screen
	s.mu.Lock()
	defer s.mu.Unlock()
	return x.paused
}
