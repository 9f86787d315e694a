package gesture

import (
	"time"

	"leverbox/internal/logger"
)

type decoderState int

const (
	stateIdle decoderState = iota
	stateTiming
	stateClassifyShort
	stateClassifyLong
	stateFinalize
)

type Timing struct {
	// LongPress is the press duration above which a press counts as long.
	LongPress time.Duration
	// Gap is the pause after the last press that closes a gesture.
	Gap time.Duration
}

// Decoder turns remote button edges into composite gesture codes. It moves
// through at most one state per Update call.
type Decoder struct {
	timing   Timing
	state    decoderState
	mark     time.Duration
	buffer   []Elementary
	detected Code
	log      logger.Logger
}

func NewDecoder(timing Timing, log logger.Logger) *Decoder {
	return &Decoder{
		timing: timing,
		buffer: make([]Elementary, 0, MaxPresses),
		log:    log,
	}
}

// Update advances the decoder. pressed is the debounced button state and
// changed reports whether it flipped on this tick.
func (d *Decoder) Update(now time.Duration, pressed, changed bool) {
	switch d.state {
	case stateIdle:
		switch {
		case len(d.buffer) >= MaxPresses:
			d.state = stateFinalize
		case changed && pressed:
			d.state = stateTiming
			d.mark = now
		case len(d.buffer) > 0 && now-d.mark > d.timing.Gap:
			d.state = stateFinalize
		}

	case stateTiming:
		if changed && !pressed {
			if now-d.mark > d.timing.LongPress {
				d.state = stateClassifyLong
			} else {
				d.state = stateClassifyShort
			}
		}

	case stateClassifyShort:
		d.append(now, ShortPress)

	case stateClassifyLong:
		d.append(now, LongPress)

	case stateFinalize:
		code, err := Encode(d.buffer)
		if err != nil {
			d.log.Warnw("discarding gesture buffer", "error", err)
		} else {
			d.detected = code
			d.log.Debugw("gesture detected", "code", uint8(code), "gesture", code.String())
		}
		d.buffer = d.buffer[:0]
		d.state = stateIdle
	}
}

func (d *Decoder) append(now time.Duration, press Elementary) {
	d.buffer = append(d.buffer, press)
	d.mark = now
	d.state = stateIdle
}

// Gesture returns the last detected code and clears it, so each code is
// delivered once.
func (d *Decoder) Gesture() Code {
	code := d.detected
	d.detected = None
	return code
}
