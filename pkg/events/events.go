// Package events defines the input events the engine routes through hit
// testing. Event production (windowing, device input) is the embedder's
// concern; the engine only dispatches.
package events

import "github.com/go-loom/loom/pkg/graphics"

// PointerPhase describes where in its lifecycle a pointer event sits.
type PointerPhase int

const (
	PointerPhaseDown PointerPhase = iota
	PointerPhaseMove
	PointerPhaseUp
	PointerPhaseCancel
	// PointerPhaseScroll carries a wheel or trackpad scroll delta.
	PointerPhaseScroll
)

func (p PointerPhase) String() string {
	switch p {
	case PointerPhaseDown:
		return "down"
	case PointerPhaseMove:
		return "move"
	case PointerPhaseUp:
		return "up"
	case PointerPhaseCancel:
		return "cancel"
	case PointerPhaseScroll:
		return "scroll"
	default:
		return "unknown"
	}
}

// PointerEvent is a single pointer interaction in surface coordinates.
type PointerEvent struct {
	// PointerID distinguishes concurrent pointers (touches, mice).
	PointerID int

	// Phase is the lifecycle phase of the event.
	Phase PointerPhase

	// Position is the pointer location in surface coordinates.
	Position graphics.Offset

	// Delta is the movement since the previous event of this pointer.
	Delta graphics.Offset

	// ScrollDelta is the scroll amount for PointerPhaseScroll events.
	ScrollDelta graphics.Offset
}

// PointerHandler receives pointer events routed from hit testing. Render
// objects implement this to participate in dispatch.
type PointerHandler interface {
	HandlePointer(event PointerEvent)
}
