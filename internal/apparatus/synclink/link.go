package synclink

// Link is the lossy, unordered transport between two boxes.
type Link interface {
	// Transmit makes one delivery attempt and reports the link-layer
	// acknowledgment.
	Transmit(payload []byte) bool
	// Receive returns the next pending frame without blocking.
	Receive() ([]byte, bool)
}
