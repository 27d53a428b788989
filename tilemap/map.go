// Package tilemap holds the static tile world: cell types, per-type hitbox
// geometry and the set of tiles the actor currently occupies.
package tilemap

import (
	"errors"
	"fmt"
	"math"

	"github.com/milk9111/climber/common"
)

var (
	ErrUnknownTileCode  = errors.New("tilemap: unknown tile code")
	ErrEmptyGrid        = errors.New("tilemap: empty grid")
	ErrRaggedGrid       = errors.New("tilemap: rows have different lengths")
	ErrInvalidWorldSize = errors.New("tilemap: world size must be positive")
)

// Grid is raw level data: integer type codes, row-major, row 0 at the top.
type Grid [][]int

// Size returns the column and row counts. It does not validate the grid.
func (g Grid) Size() (cols, rows int) {
	if len(g) == 0 {
		return 0, 0
	}
	return len(g[0]), len(g)
}

// Map is a fixed grid of tiles laid over a worldWidth x worldHeight area.
type Map struct {
	Cols, Rows  int
	TileWidth   float64
	TileHeight  float64
	WorldWidth  float64
	WorldHeight float64

	geometry GeometryTable
	tiles    []Tile
}

// Build creates a map from grid using DefaultGeometry.
func Build(grid Grid, worldWidth, worldHeight float64) (*Map, error) {
	return BuildWithGeometry(grid, worldWidth, worldHeight, DefaultGeometry)
}

// BuildWithGeometry creates a map from grid. Source rows are flipped so that
// world row 0 is the bottom of the level. Any invalid code fails the whole
// build; no partial map is returned.
func BuildWithGeometry(grid Grid, worldWidth, worldHeight float64, geometry GeometryTable) (*Map, error) {
	if !(worldWidth > 0) || !(worldHeight > 0) || math.IsInf(worldWidth, 0) || math.IsInf(worldHeight, 0) {
		return nil, fmt.Errorf("%w: %gx%g", ErrInvalidWorldSize, worldWidth, worldHeight)
	}
	cols, rows := grid.Size()
	if cols == 0 || rows == 0 {
		return nil, ErrEmptyGrid
	}

	m := &Map{
		Cols:        cols,
		Rows:        rows,
		TileWidth:   worldWidth / float64(cols),
		TileHeight:  worldHeight / float64(rows),
		WorldWidth:  worldWidth,
		WorldHeight: worldHeight,
		geometry:    geometry,
		tiles:       make([]Tile, cols*rows),
	}

	for srcRow, line := range grid {
		if len(line) != cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRaggedGrid, srcRow, len(line), cols)
		}
		row := (rows - 1) - srcRow
		for col, code := range line {
			if code < 0 || code >= int(TypeCount) {
				return nil, fmt.Errorf("%w: %d at row %d col %d", ErrUnknownTileCode, code, srcRow, col)
			}
			m.tiles[row*cols+col] = Tile{
				Type:  Type(code),
				Coord: Coord{Col: col, Row: row},
				X:     float64(col) * m.TileWidth,
				Y:     float64(row) * m.TileHeight,
			}
		}
	}

	return m, nil
}

// InBounds reports whether c addresses a cell of the map.
func (m *Map) InBounds(c Coord) bool {
	if m == nil {
		return false
	}
	return c.Col >= 0 && c.Row >= 0 && c.Col < m.Cols && c.Row < m.Rows
}

// At returns the tile at c. Out-of-bounds cells read as an empty tile.
func (m *Map) At(c Coord) Tile {
	if !m.InBounds(c) {
		return Tile{Type: TypeNone, Coord: c}
	}
	return m.tiles[c.Row*m.Cols+c.Col]
}

// TypeAt is a shortcut for At(c).Type.
func (m *Map) TypeAt(c Coord) Type {
	return m.At(c).Type
}

// Geometry returns the hitbox description shared by every tile of type t.
func (m *Map) Geometry(t Type) Geometry {
	if m == nil || t >= TypeCount {
		return Geometry{}
	}
	return m.geometry[t]
}

// Hitbox returns the world-space collision box of the tile at c.
func (m *Map) Hitbox(c Coord) common.Rect {
	t := m.At(c)
	g := m.Geometry(t.Type)
	return common.Rect{
		X: t.X + g.OffsetX*m.TileWidth,
		Y: t.Y + g.OffsetY*m.TileHeight,
		W: g.Width * m.TileWidth,
		H: g.Height * m.TileHeight,
	}
}

// CellOf returns the cell containing the world point x, y, unclamped.
func (m *Map) CellOf(x, y float64) Coord {
	return Coord{
		Col: int(math.Floor(x / m.TileWidth)),
		Row: int(math.Floor(y / m.TileHeight)),
	}
}

// Window is an inclusive range of cells.
type Window struct {
	MinCol, MinRow int
	MaxCol, MaxRow int
}

// Bounds returns the world rect covered by w.
func (m *Map) Bounds(w Window) common.Rect {
	return common.Rect{
		X: float64(w.MinCol) * m.TileWidth,
		Y: float64(w.MinRow) * m.TileHeight,
		W: float64(w.MaxCol-w.MinCol+1) * m.TileWidth,
		H: float64(w.MaxRow-w.MinRow+1) * m.TileHeight,
	}
}

// Window returns the cells covering r expanded by one cell on every side,
// clamped to the grid.
func (m *Map) Window(r common.Rect) Window {
	lo := m.CellOf(r.X, r.Y)
	hi := m.CellOf(r.X+r.W, r.Y+r.H)
	return Window{
		MinCol: common.ClampInt(lo.Col-1, 0, m.Cols-1),
		MinRow: common.ClampInt(lo.Row-1, 0, m.Rows-1),
		MaxCol: common.ClampInt(hi.Col+1, 0, m.Cols-1),
		MaxRow: common.ClampInt(hi.Row+1, 0, m.Rows-1),
	}
}

// Each calls fn for every tile in w, rows bottom-up, columns left to right.
func (m *Map) Each(w Window, fn func(t Tile)) {
	for row := w.MinRow; row <= w.MaxRow; row++ {
		for col := w.MinCol; col <= w.MaxCol; col++ {
			fn(m.At(Coord{Col: col, Row: row}))
		}
	}
}

// Tiles returns every tile, bottom row first.
func (m *Map) Tiles() []Tile {
	out := make([]Tile, len(m.tiles))
	copy(out, m.tiles)
	return out
}
