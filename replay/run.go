package replay

import (
	"context"

	"github.com/milk9111/climber/input"
	"github.com/milk9111/climber/physics"
)

// Driver is a Source that chooses its input from the previous result.
type Driver interface {
	input.Source
	Advance(tick int, last physics.Result) error
}

// Run ticks w the given number of times with a fixed dt and returns every
// result. If src is a Driver it is advanced before each poll. ctx is checked
// between ticks; on cancellation the results so far are returned with the
// context's error.
func Run(ctx context.Context, w *physics.World, src input.Source, ticks int, dt float64) ([]physics.Result, error) {
	driver, _ := src.(Driver)
	out := make([]physics.Result, 0, max(ticks, 0))
	last := w.Result()
	var snap input.Snapshot
	for i := 0; i < ticks; i++ {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		if driver != nil {
			if err := driver.Advance(i, last); err != nil {
				return out, err
			}
		}
		snap.Refresh(src)
		last = w.Tick(&snap, dt)
		out = append(out, last)
	}
	return out, nil
}
