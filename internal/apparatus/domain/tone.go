package domain

// Tone is an audible notification category.
type Tone int

const (
	ToneReward Tone = iota
	ToneStart
	ToneError
	ToneTransmissionFail
	ToneModeOne
	ToneModeTwo
	ToneModeThree
	ToneUnlock
)

func (t Tone) String() string {
	switch t {
	case ToneReward:
		return "reward"
	case ToneStart:
		return "start"
	case ToneError:
		return "error"
	case ToneTransmissionFail:
		return "transmission_fail"
	case ToneModeOne:
		return "mode_one"
	case ToneModeTwo:
		return "mode_two"
	case ToneModeThree:
		return "mode_three"
	case ToneUnlock:
		return "unlock"
	default:
		return "unknown"
	}
}

// ModeTone is the tone announcing a switch to mode m.
func ModeTone(m TaskMode) Tone {
	switch m {
	case ModeTwo:
		return ToneModeTwo
	case ModeThree:
		return ToneModeThree
	default:
		return ToneModeOne
	}
}
