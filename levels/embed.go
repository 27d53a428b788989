// Package levels reads tile grids from the plain text format and from Tiled
// TMX maps, either on disk or embedded in the binary.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/climber/tilemap"
)

//go:embed *.txt *.tmx
var LevelsFS embed.FS

var ErrUnsupportedFormat = errors.New("levels: unsupported level format")

// Load reads a level grid. A path to an existing file is read directly;
// otherwise name is looked up in levels/ on disk and then in the embedded
// levels. The extension picks the format.
func Load(name string) (tilemap.Grid, error) {
	fsys, path := source(name)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		f, err := fsys.Open(path)
		if err != nil {
			return nil, fmt.Errorf("levels: open %s: %w", name, err)
		}
		defer f.Close()
		grid, err := ParseText(f)
		if err != nil {
			return nil, fmt.Errorf("levels: %s: %w", name, err)
		}
		return grid, nil
	case ".tmx":
		return LoadTMX(fsys, path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
}

// LoadMap loads name and builds a map of the given world size.
func LoadMap(name string, worldWidth, worldHeight float64, geometry tilemap.GeometryTable) (*tilemap.Map, error) {
	grid, err := Load(name)
	if err != nil {
		return nil, err
	}
	m, err := tilemap.BuildWithGeometry(grid, worldWidth, worldHeight, geometry)
	if err != nil {
		return nil, fmt.Errorf("levels: build %s: %w", name, err)
	}
	return m, nil
}

func source(name string) (fs.FS, string) {
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		return os.DirFS(filepath.Dir(name)), filepath.Base(name)
	}
	clean := cleanLevelPath(name)
	if _, err := os.Stat(filepath.Join("levels", filepath.FromSlash(clean))); err == nil {
		return os.DirFS("levels"), clean
	}
	return LevelsFS, clean
}

func cleanLevelPath(path string) string {
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "levels/"); ok {
		return after
	}
	return s
}
