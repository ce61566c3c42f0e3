package core

// Grid is an immutable Size x Size snapshot of cells.
// Transforms never write into an existing Grid; they build a new one that
// shares every untouched row with its predecessor, so collaborators can diff
// old and new snapshots row by row.
type Grid struct {
	size int
	rows [][]Cell
}

// NewGrid builds the initial grid for a level. No cell is exposed yet;
// exposure is seeded by the container graph.
func NewGrid(l *Level) *Grid {
	rows := make([][]Cell, l.Size)
	for r := 0; r < l.Size; r++ {
		row := make([]Cell, l.Size)
		for c := 0; c < l.Size; c++ {
			layer := l.PixelMap[r][c]
			cell := Cell{Row: r, Col: c, Layer: layer}
			if layer > 0 {
				cell.ContainerID = l.containerAt(r, c)
			}
			row[c] = cell
		}
		rows[r] = row
	}
	return &Grid{size: l.Size, rows: rows}
}

// Size returns the grid edge length.
func (g *Grid) Size() int {
	return g.size
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.size && c.Col >= 0 && c.Col < g.size
}

// At returns the cell at the given coordinate.
// Returns a zero background cell if out of bounds.
func (g *Grid) At(c Coord) Cell {
	if !g.InBounds(c) {
		return Cell{Row: c.Row, Col: c.Col}
	}
	return g.rows[c.Row][c.Col]
}

// Row returns a copy of one row of cells.
func (g *Grid) Row(r int) []Cell {
	if r < 0 || r >= g.size {
		return nil
	}
	out := make([]Cell, g.size)
	copy(out, g.rows[r])
	return out
}

// SharesRow reports whether two grids share the backing storage of row r.
// Rows untouched by a transform are shared.
func (g *Grid) SharesRow(other *Grid, r int) bool {
	if other == nil || r < 0 || r >= g.size || r >= other.size {
		return false
	}
	return &g.rows[r][0] == &other.rows[r][0]
}

// SolidifiedCount returns the number of solidified cells.
func (g *Grid) SolidifiedCount() int {
	count := 0
	for _, row := range g.rows {
		for _, cell := range row {
			if cell.Solidified {
				count++
			}
		}
	}
	return count
}

// TotalHits returns hits absorbed per layer.
func (g *Grid) TotalHits() map[LayerID]int {
	hits := make(map[LayerID]int)
	for _, row := range g.rows {
		for _, cell := range row {
			if cell.Layer > 0 {
				hits[cell.Layer] += cell.Hits
			}
		}
	}
	return hits
}

// HasTargetable reports whether any cell of the layer can currently be hit.
func (g *Grid) HasTargetable(layer LayerID) bool {
	for _, row := range g.rows {
		for _, cell := range row {
			if cell.Layer == layer && cell.Targetable() {
				return true
			}
		}
	}
	return false
}

// gridEditor accumulates writes for one transform, copying each row at most
// once. The base grid is never modified.
type gridEditor struct {
	base  *Grid
	rows  [][]Cell
	owned []bool
}

func newGridEditor(base *Grid) *gridEditor {
	rows := make([][]Cell, base.size)
	copy(rows, base.rows)
	return &gridEditor{
		base:  base,
		rows:  rows,
		owned: make([]bool, base.size),
	}
}

// at reads the current (possibly edited) cell.
func (e *gridEditor) at(c Coord) Cell {
	return e.rows[c.Row][c.Col]
}

// cell returns a writable pointer to a cell, copying its row on first write.
func (e *gridEditor) cell(c Coord) *Cell {
	if !e.owned[c.Row] {
		row := make([]Cell, len(e.rows[c.Row]))
		copy(row, e.rows[c.Row])
		e.rows[c.Row] = row
		e.owned[c.Row] = true
	}
	return &e.rows[c.Row][c.Col]
}

// hit applies one hit to a targetable cell and reports whether it solidified.
// Hitting a cell that is not targetable is a programming defect.
func (e *gridEditor) hit(c Coord, capacity int) bool {
	if !e.at(c).Targetable() {
		panic("core: hit on non-targetable cell " + c.String())
	}
	cell := e.cell(c)
	cell.Hits++
	if cell.Hits >= capacity {
		cell.Solidified = true
		return true
	}
	return false
}

// expose marks a picture cell exposed. Exposure never turns off.
func (e *gridEditor) expose(c Coord) {
	if cur := e.at(c); cur.Exposed || cur.Layer == 0 {
		return
	}
	e.cell(c).Exposed = true
}

// grid returns the edited snapshot, or the base if nothing changed.
func (e *gridEditor) grid() *Grid {
	for _, owned := range e.owned {
		if owned {
			return &Grid{size: e.base.size, rows: e.rows}
		}
	}
	return e.base
}
