package domain

import (
	"fmt"
	"strings"
)

// Role is fixed per box for the whole session.
type Role int

const (
	RoleTraining Role = iota
	RoleMaster
	RoleSlave
)

func (r Role) String() string {
	switch r {
	case RoleTraining:
		return "training"
	case RoleMaster:
		return "master"
	case RoleSlave:
		return "slave"
	default:
		return "unknown"
	}
}

// Paired reports whether the role cooperates with a peer box.
func (r Role) Paired() bool {
	return r == RoleMaster || r == RoleSlave
}

func ParseRole(value string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "training":
		return RoleTraining, nil
	case "master":
		return RoleMaster, nil
	case "slave":
		return RoleSlave, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownRole, value)
	}
}
