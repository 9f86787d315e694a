package domain

import "errors"

var (
	ErrUnknownRole      = errors.New("unknown role")
	ErrUnknownEventKind = errors.New("unknown event kind")
)
