package tilemap

import "fmt"

// Type is the terrain code of a cell as it appears in level data.
type Type uint8

const (
	TypeNone Type = iota
	TypePlatform
	TypeLadder

	TypeCount
)

func (t Type) String() string {
	switch t {
	case TypeNone:
		return "none"
	case TypePlatform:
		return "platform"
	case TypeLadder:
		return "ladder"
	}
	return fmt.Sprintf("type(%d)", uint8(t))
}

// Solidity is the collision class of a tile type.
type Solidity uint8

const (
	NonSolid Solidity = iota
	// TransientSolid surfaces can be stood on and dropped through.
	TransientSolid
	// Solid surfaces hold the actor even when it asks to drop.
	Solid
)

func (s Solidity) String() string {
	switch s {
	case NonSolid:
		return "non-solid"
	case TransientSolid:
		return "transient-solid"
	case Solid:
		return "solid"
	}
	return fmt.Sprintf("solidity(%d)", uint8(s))
}

// Geometry describes the hitbox of a tile type as fractions of one cell,
// measured from the cell's bottom-left corner.
type Geometry struct {
	OffsetX, OffsetY float64
	Width, Height    float64
	Solidity         Solidity
}

// GeometryTable holds one Geometry per tile type. It is copied into each Map
// at build time and never changes afterwards.
type GeometryTable [TypeCount]Geometry

// DefaultGeometry uses half-height platforms resting on the cell floor and
// half-width ladders centered in the cell.
var DefaultGeometry = GeometryTable{
	TypeNone:     {Width: 1, Height: 1, Solidity: NonSolid},
	TypePlatform: {Width: 1, Height: 0.5, Solidity: TransientSolid},
	TypeLadder:   {OffsetX: 0.25, Width: 0.5, Height: 1, Solidity: TransientSolid},
}

// FullHeightPlatforms gives every type a full-cell hitbox.
var FullHeightPlatforms = GeometryTable{
	TypeNone:     {Width: 1, Height: 1, Solidity: NonSolid},
	TypePlatform: {Width: 1, Height: 1, Solidity: TransientSolid},
	TypeLadder:   {Width: 1, Height: 1, Solidity: TransientSolid},
}

// Coord addresses a cell. Row 0 is the bottom row of the world.
type Coord struct {
	Col, Row int
}

// Tile is one immutable grid cell.
type Tile struct {
	Type  Type
	Coord Coord
	// X, Y is the world position of the cell's bottom-left corner.
	X, Y float64
}
