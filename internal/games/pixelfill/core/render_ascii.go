package core

import (
	"fmt"
	"strings"
)

// RenderASCII creates an ASCII representation of the current game state.
// This is used for debugging, testing and the headless CLI commands.
//
// Format:
//   - Cells: background '.', hidden '#', open cells lowercase by layer
//     ('a' is layer 1), solidified cells uppercase
//   - Track around the grid: '-' free, layer digit for a shooter, '+' corners
//   - Queues, holding and staged shooters below
func RenderASCII(s *State) string {
	var sb strings.Builder

	onTrack := make(map[int]ConveyorShooter)
	staged := make([]ConveyorShooter, 0)
	for _, cs := range s.Conveyor {
		if cs.TrackPos < 0 {
			staged = append(staged, cs)
			continue
		}
		if _, taken := onTrack[cs.TrackPos]; !taken {
			onTrack[cs.TrackPos] = cs
		}
	}

	n := s.Grid.Size()
	fmt.Fprintf(&sb, "Tick: %d | %s | Solid: %d/%d | Conveyor: %d/%d | Held: %d/%d\n",
		s.Stats.ElapsedTicks, s.Status, s.Stats.CellsSolidified, s.Stats.TotalCells,
		len(s.Conveyor), s.env.rules.ConveyorCapacity, s.Holding.Count(), s.Holding.Capacity())
	sb.WriteString(strings.Repeat("-", n+2) + "\n")

	for dy := 0; dy < n+2; dy++ {
		for dx := 0; dx < n+2; dx++ {
			if dx == 0 || dy == 0 || dx == n+1 || dy == n+1 {
				sb.WriteRune(trackChar(BorderTrackPos(dx, dy, n), onTrack))
				continue
			}
			sb.WriteRune(CellChar(s.Grid.At(C(dy-1, dx-1))))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(strings.Repeat("-", n+2) + "\n")
	for i, q := range s.Queues {
		fmt.Fprintf(&sb, "L%d: %s\n", i, RenderLane(q, LineVisible))
	}

	sb.WriteString("Held: ")
	if s.Holding.IsEmpty() {
		sb.WriteString("(empty)")
	}
	first := true
	for i, sh := range s.Holding.Slots {
		if sh == nil {
			continue
		}
		if !first {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "[%d]%s", i, shooterLabel(*sh))
		first = false
	}
	sb.WriteString("\n")

	if len(staged) > 0 {
		sb.WriteString("Staged:")
		for _, cs := range staged {
			sb.WriteString(" " + shooterLabel(cs.Shooter))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// LineVisible is how many shooters of a lane a player can see.
const LineVisible = 3

// RenderLane renders up to visible shooters of a lane.
func RenderLane(q []Shooter, visible int) string {
	if len(q) == 0 {
		return "(empty)"
	}
	parts := make([]string, 0, visible+1)
	for i, sh := range q {
		if i >= visible {
			parts = append(parts, fmt.Sprintf("+%d", len(q)-visible))
			break
		}
		parts = append(parts, shooterLabel(sh))
	}
	return strings.Join(parts, " ")
}

// RenderGrid renders just the cells, one row per line.
func RenderGrid(g *Grid) string {
	var sb strings.Builder
	for r := 0; r < g.Size(); r++ {
		for c := 0; c < g.Size(); c++ {
			sb.WriteRune(CellChar(g.At(C(r, c))))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// CellChar returns the ASCII glyph of a cell.
func CellChar(c Cell) rune {
	switch c.Display() {
	case DisplayEmpty:
		return '.'
	case DisplayHidden:
		return '#'
	case DisplaySolidified:
		return layerRune(c.Layer, 'A')
	default:
		return layerRune(c.Layer, 'a')
	}
}

func layerRune(layer LayerID, base rune) rune {
	if layer < 1 || layer > 26 {
		return '?'
	}
	return base + rune(layer-1)
}

func shooterLabel(sh Shooter) string {
	return fmt.Sprintf("%c%d", layerRune(sh.Layer, 'a'), sh.Ammo)
}

func trackChar(pos int, onTrack map[int]ConveyorShooter) rune {
	if pos < 0 {
		return '+'
	}
	if cs, ok := onTrack[pos]; ok {
		if cs.Layer >= 1 && cs.Layer <= 9 {
			return '0' + rune(cs.Layer)
		}
		return '*'
	}
	return '-'
}

// BorderTrackPos maps a border cell of the (n+2)x(n+2) display to a track
// position. Returns -1 for corners.
func BorderTrackPos(dx, dy, n int) int {
	switch {
	case dx == 0 && dy >= 1 && dy <= n:
		return n - dy
	case dy == 0 && dx >= 1 && dx <= n:
		return n + dx - 1
	case dx == n+1 && dy >= 1 && dy <= n:
		return 2*n + dy - 1
	case dy == n+1 && dx >= 1 && dx <= n:
		return 4*n - dx
	default:
		return -1
	}
}
