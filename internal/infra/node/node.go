package node

import (
	"os"
	"sync"

	"github.com/google/uuid"
)

// Node identifies the running box process.
type Node struct {
	ID         string `json:"id"`
	Hostname   string `json:"hostname"`
	Version    string `json:"version"`
	CommitHash string `json:"commit_hash"`
}

var Version = "development"
var CommitHash = "unknown"

var (
	current     Node
	currentOnce sync.Once
)

// GetNodeInfo returns the process identity. The ID is generated once per
// process, so a restarted box shows up as a new node.
func GetNodeInfo() Node {
	currentOnce.Do(func() {
		hostname, err := os.Hostname()
		if err != nil {
			hostname = "localhost"
		}
		current = Node{
			ID:       uuid.NewString(),
			Hostname: hostname,
		}
	})

	info := current
	info.Version = Version
	info.CommitHash = CommitHash
	return info
}

// ShortID is the first block of the node ID, used in MQTT client ids.
func (n Node) ShortID() string {
	if len(n.ID) < 8 {
		return n.ID
	}
	return n.ID[:8]
}
