package levels

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/milk9111/climber/tilemap"
)

// ParseText reads one row per line, one decimal digit per cell, top row
// first. Trailing blank lines are ignored. Range checking of the codes is
// left to tilemap.Build.
func ParseText(r io.Reader) (tilemap.Grid, error) {
	var grid tilemap.Grid
	blank := 0
	sc := bufio.NewScanner(r)
	for line := 0; sc.Scan(); line++ {
		text := strings.TrimRight(sc.Text(), "\r \t")
		if text == "" {
			blank++
			continue
		}
		if blank > 0 {
			return nil, fmt.Errorf("%w: blank line before row %d", tilemap.ErrRaggedGrid, line)
		}
		row := make([]int, 0, len(text))
		for col, ch := range text {
			if ch < '0' || ch > '9' {
				return nil, fmt.Errorf("%w: %q at line %d col %d", tilemap.ErrUnknownTileCode, ch, line, col)
			}
			row = append(row, int(ch-'0'))
		}
		grid = append(grid, row)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(grid) == 0 {
		return nil, tilemap.ErrEmptyGrid
	}
	return grid, nil
}
