package core

// LineOfSight selects how a shot treats foreign cells in its scan line.
type LineOfSight uint8

const (
	// SightPassThrough skips every cell that is not a targetable cell of the
	// shooter's layer, solidified or not.
	SightPassThrough LineOfSight = iota
	// SightSolidBlocks ends the scan with a miss at the first solidified cell
	// of a different layer.
	SightSolidBlocks
)

// String returns the config name of the policy.
func (s LineOfSight) String() string {
	switch s {
	case SightPassThrough:
		return "pass"
	case SightSolidBlocks:
		return "block"
	default:
		return "unknown"
	}
}

// ParseLineOfSight converts a config string to a LineOfSight.
// Returns SightPassThrough and false if the string is not recognized.
func ParseLineOfSight(s string) (LineOfSight, bool) {
	switch s {
	case "pass", "":
		return SightPassThrough, true
	case "block":
		return SightSolidBlocks, true
	default:
		return SightPassThrough, false
	}
}

// FiringRule is what a shooter at a given track position aims at.
type FiringRule struct {
	Pos      int  // Track position
	Side     Side // Edge the shooter runs along
	RowOrCol int  // Row for left/right, column for top/bottom
}

// Track is the closed conveyor loop around a Size x Size grid.
// It has 4*Size positions split into four arcs:
//   - Left:   0 .. N-1,   rows N-1 down to 0, scanning cols 0 -> N-1
//   - Top:    N .. 2N-1,  cols 0 .. N-1,      scanning rows 0 -> N-1
//   - Right:  2N .. 3N-1, rows 0 .. N-1,      scanning cols N-1 -> 0
//   - Bottom: 3N .. 4N-1, cols N-1 down to 0, scanning rows N-1 -> 0
type Track struct {
	rules []FiringRule
	size  int
}

// NewTrack creates the track for a grid of the given edge length.
func NewTrack(size int) Track {
	rules := make([]FiringRule, 4*size)
	for p := range rules {
		arc, off := p/size, p%size
		var rule FiringRule
		switch arc {
		case 0:
			rule = FiringRule{Side: SideLeft, RowOrCol: size - 1 - off}
		case 1:
			rule = FiringRule{Side: SideTop, RowOrCol: off}
		case 2:
			rule = FiringRule{Side: SideRight, RowOrCol: off}
		default:
			rule = FiringRule{Side: SideBottom, RowOrCol: size - 1 - off}
		}
		rule.Pos = p
		rules[p] = rule
	}
	return Track{rules: rules, size: size}
}

// Len returns the number of positions on the track.
func (t Track) Len() int {
	return len(t.rules)
}

// Rule returns the firing rule for a position.
// Returns false for staged (negative) or out-of-loop positions.
func (t Track) Rule(pos int) (FiringRule, bool) {
	if pos < 0 || pos >= len(t.rules) {
		return FiringRule{}, false
	}
	return t.rules[pos], true
}

// scanLine returns the coordinates a shot from the rule visits, entry edge first.
func (t Track) scanLine(rule FiringRule) []Coord {
	line := make([]Coord, t.size)
	for i := 0; i < t.size; i++ {
		switch rule.Side {
		case SideLeft:
			line[i] = C(rule.RowOrCol, i)
		case SideRight:
			line[i] = C(rule.RowOrCol, t.size-1-i)
		case SideTop:
			line[i] = C(i, rule.RowOrCol)
		case SideBottom:
			line[i] = C(t.size-1-i, rule.RowOrCol)
		}
	}
	return line
}

// Target returns the first targetable cell of the given layer along the
// scan line of a track position, or false if the shot would miss.
func (t Track) Target(g *Grid, pos int, layer LayerID, sight LineOfSight) (Coord, bool) {
	return t.target(func(c Coord) Cell { return g.At(c) }, pos, layer, sight)
}

func (t Track) target(at func(Coord) Cell, pos int, layer LayerID, sight LineOfSight) (Coord, bool) {
	rule, ok := t.Rule(pos)
	if !ok {
		return Coord{}, false
	}
	for _, c := range t.scanLine(rule) {
		cell := at(c)
		if cell.Layer == layer && cell.Targetable() {
			return c, true
		}
		if sight == SightSolidBlocks && cell.Solidified && cell.Layer != layer {
			return Coord{}, false
		}
	}
	return Coord{}, false
}
