package audio

import (
	"sync"

	"leverbox/internal/apparatus/domain"
	"leverbox/internal/logger"
)

// RecentTones is how many played tones a Player remembers.
const RecentTones = 64

// Sink is the playback device.
type Sink interface {
	PlayTrack(track Track) error
}

type Player struct {
	catalog Catalog
	sink    Sink
	enabled bool
	log     logger.Logger

	mu     sync.Mutex
	recent [RecentTones]domain.Tone
	next   int
	count  int
}

// NewPlayer returns a player for catalog. A nil sink only logs the tones.
func NewPlayer(catalog Catalog, sink Sink, enabled bool, log logger.Logger) *Player {
	return &Player{
		catalog: catalog,
		sink:    sink,
		enabled: enabled,
		log:     log,
	}
}

// Play never blocks the control loop on a playback failure.
func (p *Player) Play(tone domain.Tone) {
	if !p.enabled {
		return
	}

	track, ok := p.catalog.Track(tone)
	if !ok {
		p.log.Warnw("no track for tone", "tone", tone.String())
		return
	}

	p.remember(tone)

	p.log.Infow("playing tone", "tone", tone.String(), "track", track.String())
	if p.sink == nil {
		return
	}
	if err := p.sink.PlayTrack(track); err != nil {
		p.log.Errorw("playing tone", "tone", tone.String(), "error", err)
	}
}

func (p *Player) remember(tone domain.Tone) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.recent[p.next] = tone
	p.next = (p.next + 1) % RecentTones
	if p.count < RecentTones {
		p.count++
	}
}

// Played returns the last RecentTones tones played, oldest first.
func (p *Player) Played() []domain.Tone {
	p.mu.Lock()
	defer p.mu.Unlock()
	played := make([]domain.Tone, 0, p.count)
	start := (p.next - p.count + RecentTones) % RecentTones
	for i := 0; i < p.count; i++ {
		played = append(played, p.recent[(start+i)%RecentTones])
	}
	return played
}
