package core

// ColorConfig describes how a layer and its shooters are presented.
type ColorConfig struct {
	Layer LayerID
	Name  string // Shooter colour name, e.g. "red"
	Hex   string // Display colour, e.g. "#ff3355"
}

// ContainerDef describes a named region of same-layer cells.
type ContainerDef struct {
	ID    ContainerID
	Layer LayerID
	Name  string
}

// Level is the static, authored definition of a puzzle.
// A level is immutable for the lifetime of any session built from it.
type Level struct {
	ID           string
	Name         string
	Size         int             // Grid is Size x Size
	PixelMap     [][]LayerID     // [row][col], 0 = background
	ContainerMap [][]ContainerID // [row][col], 0 = ungated
	Containers   []ContainerDef
	Deps         map[ContainerID][]ContainerID
	Colors       map[LayerID]ColorConfig
	Capacity     int       // Hits a cell absorbs before solidifying
	LayerOrder   []LayerID // Narration order only; gating uses Deps
}

// Container returns the definition of the container with the given id.
func (l *Level) Container(id ContainerID) (ContainerDef, bool) {
	for _, c := range l.Containers {
		if c.ID == id {
			return c, true
		}
	}
	return ContainerDef{}, false
}

// ColorName returns the shooter colour name for a layer, or "" if unknown.
func (l *Level) ColorName(layer LayerID) string {
	return l.Colors[layer].Name
}

// CellCounts returns the number of picture cells per layer.
func (l *Level) CellCounts() map[LayerID]int {
	counts := make(map[LayerID]int)
	for _, row := range l.PixelMap {
		for _, layer := range row {
			if layer > 0 {
				counts[layer]++
			}
		}
	}
	return counts
}

// TotalCells returns the number of fillable cells in the picture.
func (l *Level) TotalCells() int {
	total := 0
	for _, n := range l.CellCounts() {
		total += n
	}
	return total
}

// containerAt returns the container id for a cell, tolerating a missing map.
func (l *Level) containerAt(row, col int) ContainerID {
	if row >= len(l.ContainerMap) || col >= len(l.ContainerMap[row]) {
		return 0
	}
	return l.ContainerMap[row][col]
}
