package levels

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/lafriks/go-tiled"

	"github.com/milk9111/climber/tilemap"
)

// TileLayer is the layer read from TMX maps. Maps without it use their first
// tile layer.
const TileLayer = "tiles"

// CodeProperty is the tileset tile property holding the tile type code.
const CodeProperty = "code"

var ErrNoTileLayer = errors.New("levels: map has no tile layers")

// LoadTMX reads a Tiled map from fsys. Empty cells are code 0; every other
// cell takes the code property of its tileset tile.
func LoadTMX(fsys fs.FS, path string) (tilemap.Grid, error) {
	levelMap, err := tiled.LoadFile(path, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("levels: load TMX %s: %w", path, err)
	}
	if len(levelMap.Layers) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoTileLayer, path)
	}

	layer := levelMap.Layers[0]
	for _, l := range levelMap.Layers {
		if l.Name == TileLayer {
			layer = l
			break
		}
	}

	grid := make(tilemap.Grid, levelMap.Height)
	for y := 0; y < levelMap.Height; y++ {
		grid[y] = make([]int, levelMap.Width)
		for x := 0; x < levelMap.Width; x++ {
			tile := layer.Tiles[y*levelMap.Width+x]
			if tile.IsNil() {
				continue
			}
			code, err := tileCode(tile)
			if err != nil {
				return nil, fmt.Errorf("levels: %s row %d col %d: %w", path, y, x, err)
			}
			grid[y][x] = code
		}
	}
	return grid, nil
}

func tileCode(tile *tiled.LayerTile) (int, error) {
	tilesetTile, err := tile.Tileset.GetTilesetTile(tile.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: tile %d has no %s property", tilemap.ErrUnknownTileCode, tile.ID, CodeProperty)
	}
	value := tilesetTile.Properties.GetString(CodeProperty)
	if value == "" {
		return 0, fmt.Errorf("%w: tile %d has no %s property", tilemap.ErrUnknownTileCode, tile.ID, CodeProperty)
	}
	code, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", tilemap.ErrUnknownTileCode, value)
	}
	return code, nil
}
