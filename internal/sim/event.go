package sim

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

type EventKind uint8

const (
	// EventBall is a sphere-sphere contact.
	EventBall EventKind = iota
	// EventPocket is a body entering a pocket cylinder.
	EventPocket
	// EventShot is a hit-scan shot landing on a body.
	EventShot
)

func (k EventKind) String() string {
	switch k {
	case EventBall:
		return "ball"
	case EventPocket:
		return "pocket"
	case EventShot:
		return "shot"
	default:
		return fmt.Sprintf("event(%d)", uint8(k))
	}
}

func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *EventKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "ball":
		*k = EventBall
	case "pocket":
		*k = EventPocket
	case "shot":
		*k = EventShot
	default:
		return fmt.Errorf("unknown event kind %q", b)
	}
	return nil
}

// Event is something a sound or scoring layer may react to. OtherID is -1
// unless the event involves two bodies.
type Event struct {
	Kind    EventKind  `json:"kind"`
	BodyID  int        `json:"body_id"`
	OtherID int        `json:"other_id"`
	Speed   float64    `json:"speed"`
	Time    float64    `json:"time"`
	Point   mgl64.Vec3 `json:"point"`
}
