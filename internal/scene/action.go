package scene

import (
	"fmt"

	"sphere-viewer/internal/mathutil"
)

// Action is one discrete input event.
type Action int

const (
	ActionNone Action = iota
	ActionForward
	ActionBack
	ActionLeft
	ActionRight
	ActionUp
	ActionDown
	ActionBrightnessUp
	ActionBrightnessDown
)

var actionNames = [...]string{
	ActionNone:           "none",
	ActionForward:        "forward",
	ActionBack:           "back",
	ActionLeft:           "left",
	ActionRight:          "right",
	ActionUp:             "up",
	ActionDown:           "down",
	ActionBrightnessUp:   "brightness+",
	ActionBrightnessDown: "brightness-",
}

func (a Action) String() string {
	if a >= 0 && int(a) < len(actionNames) {
		return actionNames[a]
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Delta returns the position offset for a movement action.
// Forward/back move along Z, left/right along X, up/down along Y.
func (a Action) Delta() (mathutil.Vec3, bool) {
	switch a {
	case ActionForward:
		return mathutil.V3(0, 0, -MoveStep), true
	case ActionBack:
		return mathutil.V3(0, 0, MoveStep), true
	case ActionLeft:
		return mathutil.V3(-MoveStep, 0, 0), true
	case ActionRight:
		return mathutil.V3(MoveStep, 0, 0), true
	case ActionUp:
		return mathutil.V3(0, MoveStep, 0), true
	case ActionDown:
		return mathutil.V3(0, -MoveStep, 0), true
	}
	return mathutil.Vec3{}, false
}

// ActionForKey maps the viewer's letter keys to actions:
// w/s forward/back, a/d left/right, q/e up/down, x/z brightness up/down.
// Matching is case-insensitive.
func ActionForKey(r rune) Action {
	switch r {
	case 'w', 'W':
		return ActionForward
	case 's', 'S':
		return ActionBack
	case 'a', 'A':
		return ActionLeft
	case 'd', 'D':
		return ActionRight
	case 'q', 'Q':
		return ActionUp
	case 'e', 'E':
		return ActionDown
	case 'x', 'X':
		return ActionBrightnessUp
	case 'z', 'Z':
		return ActionBrightnessDown
	}
	return ActionNone
}

// Apply performs the single mutation an action stands for. It reports false
// for ActionNone and unknown actions, which must not trigger a render.
func (s *State) Apply(a Action) bool {
	if d, ok := a.Delta(); ok {
		s.Move(d)
		return true
	}
	switch a {
	case ActionBrightnessUp:
		s.SetBrightness(s.Brightness + BrightnessStep)
		return true
	case ActionBrightnessDown:
		s.SetBrightness(s.Brightness - BrightnessStep)
		return true
	}
	return false
}
