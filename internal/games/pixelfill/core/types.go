// Package core provides the simulation core for the PixelFill puzzle game.
// This package is UI-agnostic and deterministic: given a level, a random
// source and a sequence of commands it always produces the same states.
package core

// LayerID identifies a picture layer. Zero means background.
type LayerID int

// ContainerID identifies a dependency-gated region of cells. Zero means none.
type ContainerID int

// Side indicates which edge of the grid a track position runs along.
type Side uint8

const (
	SideLeft Side = iota
	SideTop
	SideRight
	SideBottom
)

// String returns the string representation of a side.
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideTop:
		return "top"
	case SideRight:
		return "right"
	case SideBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// Status is the session lifecycle state.
type Status uint8

const (
	StatusPlaying Status = iota
	StatusWon
	StatusLost
)

// String returns the string representation of a status.
func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Cell represents a single grid position.
type Cell struct {
	Row         int
	Col         int
	Layer       LayerID     // 0 = not part of the picture
	ContainerID ContainerID // 0 = ungated
	Hits        int         // Ammo absorbed so far
	Solidified  bool        // Permanently filled
	Exposed     bool        // May receive hits
}

// Targetable reports whether the cell can receive a hit right now.
func (c Cell) Targetable() bool {
	return c.Layer > 0 && c.Exposed && !c.Solidified
}

// Display is the presentation state of a cell.
type Display uint8

const (
	DisplayEmpty Display = iota
	DisplayHidden
	DisplayUnfilled
	DisplayFilling
	DisplaySolidified
)

// String returns the string representation of a display state.
func (d Display) String() string {
	switch d {
	case DisplayEmpty:
		return "empty"
	case DisplayHidden:
		return "hidden"
	case DisplayUnfilled:
		return "unfilled"
	case DisplayFilling:
		return "filling"
	case DisplaySolidified:
		return "solidified"
	default:
		return "unknown"
	}
}

// Display returns how a collaborator should present the cell.
func (c Cell) Display() Display {
	switch {
	case c.Layer == 0:
		return DisplayEmpty
	case !c.Exposed:
		return DisplayHidden
	case c.Solidified:
		return DisplaySolidified
	case c.Hits > 0:
		return DisplayFilling
	default:
		return DisplayUnfilled
	}
}
