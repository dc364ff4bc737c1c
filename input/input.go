// Package input turns raw key state into a per-frame snapshot of logical
// actions, so consumers never query the keyboard themselves.
package input

import (
	"fmt"
	"strings"
)

// Action is a logical input the frame loop reacts to.
type Action int

const (
	Forward Action = iota
	Back
	StrafeLeft
	StrafeRight
	Down
	Up
	Quit

	actionCount
)

var actionNames = [actionCount]string{
	Forward:     "forward",
	Back:        "back",
	StrafeLeft:  "strafe_left",
	StrafeRight: "strafe_right",
	Down:        "down",
	Up:          "up",
	Quit:        "quit",
}

func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// ParseAction resolves an action from its String form.
func ParseAction(name string) (Action, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for a, n := range actionNames {
		if n == name {
			return Action(a), nil
		}
	}
	return 0, fmt.Errorf("unknown input action %q", name)
}

// State is an immutable snapshot of which actions are held this frame.
type State struct {
	down [actionCount]bool
}

// Down reports whether action a is held.
func (s State) Down(a Action) bool {
	if a < 0 || a >= actionCount {
		return false
	}
	return s.down[a]
}

// With returns a copy of s with the given actions held.
func (s State) With(actions ...Action) State {
	for _, a := range actions {
		if a >= 0 && a < actionCount {
			s.down[a] = true
		}
	}
	return s
}

// Axis returns +1 if pos is held, -1 if neg is held, and 0 for both or neither.
func (s State) Axis(neg, pos Action) float32 {
	var v float32
	if s.Down(pos) {
		v++
	}
	if s.Down(neg) {
		v--
	}
	return v
}

// KeyQuerier reports whether a key is currently held.
type KeyQuerier interface {
	IsKeyPressed(key int) bool
}

// Bindings maps each action to the keys that trigger it.
type Bindings map[Action][]int

// DefaultBindings is WASD for movement, X/Space for down/up and Escape to quit.
func DefaultBindings() Bindings {
	return Bindings{
		Forward:     {KeyW},
		Back:        {KeyS},
		StrafeLeft:  {KeyA},
		StrafeRight: {KeyD},
		Down:        {KeyX},
		Up:          {KeySpace},
		Quit:        {KeyEscape},
	}
}

// Poll samples every bound key once and returns the resulting snapshot.
func Poll(keys KeyQuerier, bindings Bindings) State {
	var s State
	for action, codes := range bindings {
		if action < 0 || action >= actionCount {
			continue
		}
		for _, code := range codes {
			if keys.IsKeyPressed(code) {
				s.down[action] = true
				break
			}
		}
	}
	return s
}
