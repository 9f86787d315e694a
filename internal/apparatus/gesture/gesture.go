package gesture

import (
	"errors"
	"fmt"
	"strings"
)

// Elementary is the classification of a single press.
type Elementary int

const (
	ShortPress Elementary = iota
	LongPress
)

// weight is the numeric value a press contributes to a composite code.
func (e Elementary) weight() int {
	if e == LongPress {
		return 2
	}
	return 1
}

func (e Elementary) String() string {
	if e == LongPress {
		return "long"
	}
	return "short"
}

// MaxPresses is the capacity of the gesture buffer.
const MaxPresses = 3

// Code identifies a sequence of one to three presses. Sequences of length
// 1, 2 and 3 occupy the disjoint ranges 1-2, 3-6 and 7-14.
type Code uint8

const (
	None Code = 0

	Short Code = 1
	Long  Code = 2

	ShortShort Code = 3
	LongShort  Code = 4
	ShortLong  Code = 5
	LongLong   Code = 6

	ShortShortShort Code = 7
	LongShortShort  Code = 8
	ShortLongShort  Code = 9
	LongLongShort   Code = 10
	ShortShortLong  Code = 11
	LongShortLong   Code = 12
	ShortLongLong   Code = 13
	LongLongLong    Code = 14
)

var (
	ErrEmptySequence   = errors.New("empty gesture sequence")
	ErrSequenceTooLong = errors.New("gesture sequence too long")
	ErrInvalidCode     = errors.New("invalid gesture code")
)

// Encode computes the composite code of presses, sum of weight(p_i) * 2^i.
func Encode(presses []Elementary) (Code, error) {
	if len(presses) == 0 {
		return None, ErrEmptySequence
	}
	if len(presses) > MaxPresses {
		return None, fmt.Errorf("%w: %d presses", ErrSequenceTooLong, len(presses))
	}

	code := 0
	for i, p := range presses {
		code += p.weight() << i
	}
	return Code(code), nil
}

// Decode is the inverse of Encode.
func Decode(code Code) ([]Elementary, error) {
	if code < Short || code > LongLongLong {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCode, code)
	}

	length := 1
	for int(code) > (1<<(length+1))-2 {
		length++
	}

	// Every press contributes at least 1 << i; what remains marks the long ones.
	rest := int(code) - ((1 << length) - 1)
	presses := make([]Elementary, length)
	for i := range presses {
		if rest&(1<<i) != 0 {
			presses[i] = LongPress
		} else {
			presses[i] = ShortPress
		}
	}
	return presses, nil
}

func (c Code) String() string {
	if c == None {
		return "none"
	}
	presses, err := Decode(c)
	if err != nil {
		return fmt.Sprintf("invalid(%d)", uint8(c))
	}
	names := make([]string, len(presses))
	for i, p := range presses {
		names[i] = p.String()
	}
	return strings.Join(names, "-")
}
