package feed

import (
	"slices"
	"sync"

	"github.com/clipwave/clipwave/log"
	"github.com/clipwave/clipwave/video"
	"github.com/samber/lo"
)

// Surface is the media output of one slot.
type Surface interface {
	// Load assigns a source. onReady fires once the media can start.
	Load(url string, onReady func()) error
	Play() error
	Pause() error
	Paused() bool
}

// Stream is an adaptive streaming session bound to a surface.
type Stream interface {
	Destroy()
}

// Runtime reports what the playback environment supports and creates
// streaming sessions.
type Runtime interface {
	SupportsStreaming() bool
	CanPlayManifest() bool
	Attach(surface Surface, url string, onReady func()) (Stream, error)
}

// Surfaces yields the surface backing the slot at index.
type Surfaces func(index int) Surface

type slot struct {
	surface Surface
	stream  Stream
	url     string
	ready   bool
}

// Playback drives the mounted slots. Only the active slot is ever told to
// play, and activating a slot pauses every other one.
type Playback struct {
	runtime  Runtime
	surfaces Surfaces

	mu       sync.Mutex
	active   int
	playing  bool
	slots     map[int]*slot
	onChange  func(playing bool)
	onRelease func(index int)
}

// NewPlayback returns a controller with nothing mounted.
func NewPlayback(runtime Runtime, surfaces Surfaces) *Playback {
	return &Playback{
		runtime:  runtime,
		surfaces: surfaces,
		active:   None,
		slots:    make(map[int]*slot),
	}
}

// OnChange registers fn to be called whenever the playing flag changes.
func (p *Playback) OnChange(fn func(playing bool)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onChange = fn
}

// OnRelease registers fn to be called with every slot index dropped by
// Unmount or Reset, once its surface is no longer referenced.
func (p *Playback) OnRelease(fn func(index int)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onRelease = fn
}

// Mount attaches the record's playback URL to the slot at index. A slot
// that is already mounted is torn down first.
func (p *Playback) Mount(index int, v video.Video) {
	url := v.PlaybackURL()

	p.mu.Lock()
	p.teardown(index)
	s := &slot{surface: p.surfaces(index), url: url}
	p.slots[index] = s
	p.mu.Unlock()

	if url == "" {
		log.WithFields(log.Fields{"slot": index, "video": v.ID}).Warn("no playable url")
		return
	}

	ready := func() { p.ready(index, s) }

	var (
		stream Stream
		err    error
	)
	switch {
	case p.runtime.SupportsStreaming():
		stream, err = p.runtime.Attach(s.surface, url, ready)
	case p.runtime.CanPlayManifest():
		err = s.surface.Load(url, ready)
	default:
		log.WithFields(log.Fields{"slot": index}).Warn("runtime can not play this source")
		return
	}

	if err != nil {
		log.WithFields(log.Fields{"slot": index, "url": url}).WithError(err).Error("attach source")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.slots[index] == s {
		s.stream = stream
	} else if stream != nil {
		stream.Destroy()
	}
}

// Unmount releases the slot at index.
func (p *Playback) Unmount(index int) {
	p.mu.Lock()
	_, mounted := p.slots[index]
	changed := p.teardown(index)
	fn, release := p.onChange, p.onRelease
	playing := p.playing
	p.mu.Unlock()

	if changed && fn != nil {
		fn(playing)
	}
	if mounted && release != nil {
		release(index)
	}
}

// Reset releases every slot, used when the record set changes.
func (p *Playback) Reset() {
	p.mu.Lock()
	indices := lo.Keys(p.slots)
	changed := false
	for _, index := range indices {
		changed = p.teardown(index) || changed
	}
	fn, release := p.onChange, p.onRelease
	playing := p.playing
	p.mu.Unlock()

	if changed && fn != nil {
		fn(playing)
	}
	if release != nil {
		for _, index := range indices {
			release(index)
		}
	}
}

// teardown destroys the stream before dropping the slot. It reports
// whether the playing flag changed. Must be called with mu held.
func (p *Playback) teardown(index int) bool {
	s, ok := p.slots[index]
	if !ok {
		return false
	}

	if s.stream != nil {
		s.stream.Destroy()
		s.stream = nil
	}
	if !s.surface.Paused() {
		_ = s.surface.Pause()
	}
	delete(p.slots, index)

	if index == p.active && p.playing {
		p.playing = false
		return true
	}
	return false
}

func (p *Playback) ready(index int, s *slot) {
	p.mu.Lock()
	if p.slots[index] != s {
		p.mu.Unlock()
		return
	}

	s.ready = true
	changed := false
	if index == p.active {
		changed = p.play(s)
	}
	fn := p.onChange
	playing := p.playing
	p.mu.Unlock()

	if changed && fn != nil {
		fn(playing)
	}
}

// play starts s and reports whether the playing flag changed. A rejected
// play leaves the flag alone. Must be called with mu held.
func (p *Playback) play(s *slot) bool {
	if err := s.surface.Play(); err != nil {
		log.WithFields(log.Fields{"url": s.url}).WithError(err).Debug("play rejected")
		return false
	}
	if p.playing {
		return false
	}
	p.playing = true
	return true
}

// pauseOthers pauses every slot except keep. Must be called with mu held.
func (p *Playback) pauseOthers(keep int) {
	for index, s := range p.slots {
		if index != keep && !s.surface.Paused() {
			_ = s.surface.Pause()
		}
	}
}

// Activate makes index the active slot and starts it if its media is ready.
func (p *Playback) Activate(index int) {
	p.mu.Lock()

	before := p.playing
	p.pauseOthers(index)
	p.active = index
	p.playing = false
	if s, ok := p.slots[index]; ok && s.ready {
		p.play(s)
	}
	fn := p.onChange
	playing := p.playing
	p.mu.Unlock()

	if fn != nil && playing != before {
		fn(playing)
	}
}

// Pause stops the slot at index.
func (p *Playback) Pause(index int) {
	p.mu.Lock()

	changed := false
	if s, ok := p.slots[index]; ok && !s.surface.Paused() {
		_ = s.surface.Pause()
	}
	if index == p.active && p.playing {
		p.playing = false
		changed = true
	}
	fn := p.onChange
	p.mu.Unlock()

	if changed && fn != nil {
		fn(false)
	}
}

// Toggle plays the slot at index when paused and pauses it when playing.
// Playing a slot pauses all the others. Only the active slot moves the
// playing flag.
func (p *Playback) Toggle(index int) {
	p.mu.Lock()

	s, ok := p.slots[index]
	if !ok {
		p.mu.Unlock()
		return
	}

	before := p.playing
	if s.surface.Paused() {
		p.pauseOthers(index)
		if index != p.active {
			p.playing = false
		}
		if err := s.surface.Play(); err != nil {
			log.WithFields(log.Fields{"slot": index}).WithError(err).Debug("play rejected")
		} else if index == p.active {
			p.playing = true
		}
	} else {
		_ = s.surface.Pause()
		if index == p.active {
			p.playing = false
		}
	}
	fn := p.onChange
	playing := p.playing
	p.mu.Unlock()

	if fn != nil && playing != before {
		fn(playing)
	}
}

// Sync re-reads the transport state of the active slot, for changes made
// outside the controller such as a pause from the player window or the
// end of the clip.
func (p *Playback) Sync() {
	p.mu.Lock()

	before := p.playing
	if s, ok := p.slots[p.active]; ok {
		p.playing = !s.surface.Paused()
	} else {
		p.playing = false
	}
	fn := p.onChange
	playing := p.playing
	p.mu.Unlock()

	if fn != nil && playing != before {
		fn(playing)
	}
}

// Playing reports the transport state of the active slot.
func (p *Playback) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Mounted returns the mounted slot indices in ascending order.
func (p *Playback) Mounted() []int {
	p.mu.Lock()
	defer p.mu.Unlock()

	indices := lo.Keys(p.slots)
	slices.Sort(indices)
	return indices
}
