package tilemap

const occupiedInitialCap = 20

// OccupiedSet is the unordered set of tiles the actor rests on or clings to.
// It persists across ticks so existing contacts are re-checked rather than
// rediscovered.
type OccupiedSet struct {
	coords []Coord
}

func NewOccupiedSet() *OccupiedSet {
	return &OccupiedSet{coords: make([]Coord, 0, occupiedInitialCap)}
}

// Add records c. Adding a tracked coord again is a no-op.
func (s *OccupiedSet) Add(c Coord) {
	if s.Contains(c) {
		return
	}
	s.coords = append(s.coords, c)
}

func (s *OccupiedSet) Contains(c Coord) bool {
	for _, have := range s.coords {
		if have == c {
			return true
		}
	}
	return false
}

// Remove drops c if present.
func (s *OccupiedSet) Remove(c Coord) {
	for i, have := range s.coords {
		if have == c {
			s.removeAt(i)
			return
		}
	}
}

func (s *OccupiedSet) removeAt(i int) {
	last := len(s.coords) - 1
	if i < 0 || i > last {
		return
	}
	s.coords[i] = s.coords[last]
	s.coords = s.coords[:last]
}

func (s *OccupiedSet) Len() int {
	return len(s.coords)
}

func (s *OccupiedSet) Clear() {
	s.coords = s.coords[:0]
}

// Coords returns a copy of the tracked coords in storage order.
func (s *OccupiedSet) Coords() []Coord {
	out := make([]Coord, len(s.coords))
	copy(out, s.coords)
	return out
}

// Retain keeps only the coords for which keep returns true.
func (s *OccupiedSet) Retain(keep func(c Coord) bool) {
	cur := s.Cursor()
	for {
		c, ok := cur.Next()
		if !ok {
			return
		}
		if !keep(c) {
			cur.RemoveCurrent()
		}
	}
}

// Cursor iterates a set while allowing the current element to be removed.
type Cursor struct {
	set     *OccupiedSet
	pos     int // index of the next element to visit
	current bool
}

func (s *OccupiedSet) Cursor() *Cursor {
	return &Cursor{set: s}
}

// Next returns the next coord, or false when the set is exhausted.
func (c *Cursor) Next() (Coord, bool) {
	if c.pos >= len(c.set.coords) {
		return Coord{}, false
	}
	coord := c.set.coords[c.pos]
	c.pos++
	c.current = true
	return coord, true
}

// RemoveCurrent swaps the last element into the slot returned by the previous
// Next and pops, then steps back so the swapped-in element is visited next.
// Calling it before Next, twice for the same element, or on an empty set
// does nothing.
func (c *Cursor) RemoveCurrent() {
	if !c.current || c.pos == 0 || len(c.set.coords) == 0 {
		return
	}
	c.current = false
	c.pos--
	c.set.removeAt(c.pos)
}
