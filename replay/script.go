// Package replay drives the movement core headlessly from tengo scripts.
package replay

import (
	"errors"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/climber/input"
	"github.com/milk9111/climber/physics"
)

var (
	ErrUnknownButton = errors.New("replay: unknown button")
	ErrBadButtons    = errors.New("replay: buttons must be an array of strings")
)

// Script is a compiled input script. Before every tick the engine sets the
// globals tick, state, x and y, runs the script, and reads back buttons, the
// names of the buttons held during that tick. Scripts assign buttons with
// = rather than declaring it.
type Script struct {
	compiled *tengo.Compiled
	held     [input.ButtonCount]bool
}

func NewScript(src []byte) (*Script, error) {
	script := tengo.NewScript(src)
	_ = script.Add("tick", 0)
	_ = script.Add("state", "")
	_ = script.Add("x", 0.0)
	_ = script.Add("y", 0.0)
	_ = script.Add("buttons", []any{})

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("replay: compile: %w", err)
	}
	return &Script{compiled: compiled}, nil
}

// Advance runs the script for tick, given the result of the previous tick.
func (s *Script) Advance(tick int, last physics.Result) error {
	if err := s.compiled.Set("tick", tick); err != nil {
		return err
	}
	if err := s.compiled.Set("state", last.State.String()); err != nil {
		return err
	}
	if err := s.compiled.Set("x", last.Rect.X); err != nil {
		return err
	}
	if err := s.compiled.Set("y", last.Rect.Y); err != nil {
		return err
	}
	if err := s.compiled.Set("buttons", []any{}); err != nil {
		return err
	}
	if err := s.compiled.Run(); err != nil {
		return fmt.Errorf("replay: tick %d: %w", tick, err)
	}

	held, err := parseButtons(s.compiled.Get("buttons"))
	if err != nil {
		return fmt.Errorf("replay: tick %d: %w", tick, err)
	}
	s.held = held
	return nil
}

// Poll writes the buttons chosen by the last Advance.
func (s *Script) Poll(snap *input.Snapshot) {
	for b := input.Button(0); b < input.ButtonCount; b++ {
		snap.Set(b, s.held[b])
	}
}

func parseButtons(v *tengo.Variable) ([input.ButtonCount]bool, error) {
	var held [input.ButtonCount]bool
	arr, ok := v.Value().([]any)
	if !ok {
		return held, ErrBadButtons
	}
	for _, item := range arr {
		name, ok := item.(string)
		if !ok {
			return held, ErrBadButtons
		}
		b, ok := input.ParseButton(name)
		if !ok {
			return held, fmt.Errorf("%w: %q", ErrUnknownButton, name)
		}
		held[b] = true
	}
	return held, nil
}
