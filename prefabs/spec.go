package prefabs

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/climber/common"
	"github.com/milk9111/climber/physics"
	"github.com/milk9111/climber/tilemap"
)

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

// LoadSpec reads filename through Load and decodes it into T. Keys that T does
// not declare are rejected so a misspelled tuning value fails loudly.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	spec, err := decodeSpec[T](data)
	if err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

func decodeSpec[T any](data []byte) (T, error) {
	var spec T
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil && !errors.Is(err, io.EOF) {
		var zero T
		return zero, err
	}
	return spec, nil
}

// ActorSpec is the actor's size, spawn point and movement tuning.
type ActorSpec struct {
	Name       string     `yaml:"name"`
	Width      float64    `yaml:"width"`
	Height     float64    `yaml:"height"`
	Spawn      PointSpec  `yaml:"spawn"`
	MoveSpeed  float64    `yaml:"move_speed"`
	Gravity    float64    `yaml:"gravity"`
	JumpSpeed  float64    `yaml:"jump_speed"`
	ClimbSpeed float64    `yaml:"climb_speed"`
	LeapSpeed  float64    `yaml:"leap_speed"`
	DropNudge  float64    `yaml:"drop_nudge"`
	MaxDT      float64    `yaml:"max_dt"`
	Color      *YAMLColor `yaml:"color"`
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func LoadActorSpec() (*ActorSpec, error) {
	spec, err := LoadSpec[ActorSpec]("actor.yaml")
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: actor.yaml: %w", err)
	}
	return &spec, nil
}

func (s *ActorSpec) Params() physics.Params {
	return physics.Params{
		MoveSpeed:  s.MoveSpeed,
		Gravity:    s.Gravity,
		JumpSpeed:  s.JumpSpeed,
		ClimbSpeed: s.ClimbSpeed,
		LeapSpeed:  s.LeapSpeed,
		DropNudge:  s.DropNudge,
		MaxDT:      s.MaxDT,
	}
}

// SpawnRect is the actor's bounding box at its spawn point.
func (s *ActorSpec) SpawnRect() common.Rect {
	return common.Rect{X: s.Spawn.X, Y: s.Spawn.Y, W: s.Width, H: s.Height}
}

// Validate rejects sizes and speeds the movement core cannot run with.
func (s *ActorSpec) Validate() error {
	if !positive(s.Width) || !positive(s.Height) {
		return fmt.Errorf("%w: actor size %gx%g", ErrInvalidSpec, s.Width, s.Height)
	}
	if !positive(s.MaxDT) {
		return fmt.Errorf("%w: max_dt %g", ErrInvalidSpec, s.MaxDT)
	}
	fields := []struct {
		name string
		v    float64
	}{
		{"spawn.x", s.Spawn.X},
		{"spawn.y", s.Spawn.Y},
		{"move_speed", s.MoveSpeed},
		{"gravity", s.Gravity},
		{"jump_speed", s.JumpSpeed},
		{"climb_speed", s.ClimbSpeed},
		{"leap_speed", s.LeapSpeed},
		{"drop_nudge", s.DropNudge},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidSpec, f.name)
		}
	}
	return nil
}

// WorldSpec sizes the world and the window and names the starting level.
type WorldSpec struct {
	Height       float64 `yaml:"height"`
	Aspect       float64 `yaml:"aspect"`
	ScreenWidth  int     `yaml:"screen_width"`
	ScreenHeight int     `yaml:"screen_height"`
	Level        string  `yaml:"level"`
	// Geometry selects the tile hitbox table: "half" (default) or "full".
	Geometry string `yaml:"geometry"`
}

func LoadWorldSpec() (*WorldSpec, error) {
	spec, err := LoadSpec[WorldSpec]("world.yaml")
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: world.yaml: %w", err)
	}
	return &spec, nil
}

// Width is the world width in meters. Without an explicit aspect the
// screen's is used.
func (s *WorldSpec) Width() float64 {
	aspect := s.Aspect
	if aspect == 0 && s.ScreenHeight > 0 {
		aspect = float64(s.ScreenWidth) / float64(s.ScreenHeight)
	}
	return s.Height * aspect
}

func (s *WorldSpec) GeometryTable() tilemap.GeometryTable {
	if s.Geometry == "full" {
		return tilemap.FullHeightPlatforms
	}
	return tilemap.DefaultGeometry
}

func (s *WorldSpec) Validate() error {
	if s.ScreenWidth <= 0 || s.ScreenHeight <= 0 {
		return fmt.Errorf("%w: screen %dx%d", ErrInvalidSpec, s.ScreenWidth, s.ScreenHeight)
	}
	if !positive(s.Height) || s.Aspect < 0 || math.IsInf(s.Aspect, 0) || math.IsNaN(s.Aspect) {
		return fmt.Errorf("%w: world height %g aspect %g", ErrInvalidSpec, s.Height, s.Aspect)
	}
	switch s.Geometry {
	case "", "half", "full":
	default:
		return fmt.Errorf("%w: geometry %q", ErrInvalidSpec, s.Geometry)
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// YAMLColor accepts an svg color name ("goldenrod") or hex in #rgb, #rrggbb
// or #rrggbbaa form, with or without the leading #.
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d: color must be a string", ErrInvalidSpec, value.Line)
	}
	clr, err := parseColor(value.Value)
	if err != nil {
		return fmt.Errorf("%w: line %d: %v", ErrInvalidSpec, value.Line, err)
	}
	c.Color = clr
	return nil
}

func parseColor(v string) (color.Color, error) {
	name := strings.ToLower(strings.TrimSpace(v))
	if clr, ok := colornames.Map[name]; ok {
		return clr, nil
	}

	hex := strings.TrimPrefix(name, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return nil, fmt.Errorf("unknown color %q", v)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("unknown color %q", v)
	}
	return color.NRGBA{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}, nil
}
