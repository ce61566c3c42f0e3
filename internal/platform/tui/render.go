package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pixelfill/internal/games/pixelfill/core"
)

// Cell glyphs, two columns wide so the board stays square.
const (
	glyphEmpty     = "  "
	glyphHidden    = "··"
	glyphUnfilled  = "░░"
	glyphFilling   = "▒▒"
	glyphSolid     = "██"
	glyphTrackH    = "──"
	glyphTrackV    = "│ "
	glyphCorner    = "┼─"
	maxAmmoDisplay = 99
)

// rowBuilder groups consecutive segments with the same style key to
// minimize ANSI escape sequences.
type rowBuilder struct {
	sb    *strings.Builder
	key   string
	style lipgloss.Style
	run   strings.Builder
	open  bool
}

func (r *rowBuilder) add(key string, style lipgloss.Style, text string) {
	if r.open && key != r.key {
		r.flush()
	}
	if !r.open {
		r.key = key
		r.style = style
		r.open = true
	}
	r.run.WriteString(text)
}

func (r *rowBuilder) flush() {
	if !r.open {
		return
	}
	r.sb.WriteString(r.style.Render(r.run.String()))
	r.run.Reset()
	r.open = false
}

// RenderBoard draws the grid framed by the track. Shooters on the track show
// their remaining ammo in their layer colour; cells hit on the last tick are
// highlighted.
func RenderBoard(s *core.State, t Theme) string {
	n := s.Grid.Size()
	lvl := s.Level()

	onTrack := make(map[int]core.ConveyorShooter, len(s.Conveyor))
	for _, cs := range s.Conveyor {
		if cs.TrackPos < 0 {
			continue
		}
		if _, taken := onTrack[cs.TrackPos]; !taken {
			onTrack[cs.TrackPos] = cs
		}
	}
	hit := make(map[core.Coord]bool, len(s.RecentHits))
	for _, h := range s.RecentHits {
		hit[h.Coord] = true
	}

	var sb strings.Builder
	row := rowBuilder{sb: &sb}
	for dy := 0; dy < n+2; dy++ {
		if dy > 0 {
			sb.WriteByte('\n')
		}
		for dx := 0; dx < n+2; dx++ {
			if dx == 0 || dy == 0 || dx == n+1 || dy == n+1 {
				pos := core.BorderTrackPos(dx, dy, n)
				switch cs, ok := onTrack[pos]; {
				case pos < 0:
					row.add("corner", t.TrackCorner, glyphCorner)
				case ok:
					style := t.TrackShooter.Inherit(t.Layer(lvl, cs.Layer)).Reverse(true)
					row.add(fmt.Sprintf("shooter%d", pos), style, fmt.Sprintf("%2d", min(cs.Ammo, maxAmmoDisplay)))
				case dx == 0 || dx == n+1:
					row.add("track", t.TrackEmpty, glyphTrackV)
				default:
					row.add("track", t.TrackEmpty, glyphTrackH)
				}
				continue
			}
			c := core.C(dy-1, dx-1)
			key, style, glyph := cellGlyph(s.Grid.At(c), lvl, t)
			if hit[c] {
				key += "!"
				style = t.Hit.Inherit(style)
			}
			row.add(key, style, glyph)
		}
		row.flush()
	}
	return sb.String()
}

func cellGlyph(c core.Cell, lvl *core.Level, t Theme) (string, lipgloss.Style, string) {
	switch d := c.Display(); d {
	case core.DisplayEmpty:
		return "empty", t.Empty, glyphEmpty
	case core.DisplayHidden:
		return "hidden", t.Hidden, glyphHidden
	default:
		glyph := glyphUnfilled
		switch d {
		case core.DisplayFilling:
			glyph = glyphFilling
		case core.DisplaySolidified:
			glyph = glyphSolid
		}
		return fmt.Sprintf("layer%d", c.Layer), t.Layer(lvl, c.Layer), glyph
	}
}

// RenderShooter renders a shooter as a coloured dot followed by its ammo.
func RenderShooter(lvl *core.Level, sh core.Shooter, t Theme) string {
	return t.Layer(lvl, sh.Layer).Render(fmt.Sprintf("●%d", sh.Ammo))
}

// RenderLanes renders the visible front of every queue lane with its key.
func RenderLanes(s *core.State, keys GameKeyMap, t Theme) string {
	lvl := s.Level()
	lines := make([]string, 0, len(s.Queues))
	for i, q := range s.Queues {
		label := t.PanelLabel.Render(fmt.Sprintf("[%s] ", keyLabel(keys.LaneKey(i))))
		if len(q) == 0 {
			lines = append(lines, label+t.PanelDim.Render("(empty)"))
			continue
		}
		parts := make([]string, 0, core.LineVisible+1)
		for j, sh := range q {
			if j >= core.LineVisible {
				parts = append(parts, t.PanelDim.Render(fmt.Sprintf("+%d", len(q)-core.LineVisible)))
				break
			}
			parts = append(parts, RenderShooter(lvl, sh, t))
		}
		lines = append(lines, label+strings.Join(parts, " "))
	}
	return strings.Join(lines, "\n")
}

// RenderHolding renders every holding slot with its key.
func RenderHolding(s *core.State, keys GameKeyMap, t Theme) string {
	lvl := s.Level()
	parts := make([]string, 0, s.Holding.Capacity())
	for i := 0; i < s.Holding.Capacity(); i++ {
		label := t.PanelLabel.Render(fmt.Sprintf("[%s]", keyLabel(keys.SlotKey(i))))
		if sh := s.Holding.Get(i); sh != nil {
			parts = append(parts, label+RenderShooter(lvl, *sh, t))
		} else {
			parts = append(parts, label+t.PanelDim.Render("--"))
		}
	}
	return strings.Join(parts, " ")
}

// RenderHUD renders the one-line status bar.
func RenderHUD(s *core.State, t Theme) string {
	sep := t.HUDSeparator.Render(" │ ")
	fields := []string{
		t.HUDTitle.Render("PixelFill"),
		t.HUDValue.Render(s.Level().Name),
		t.HUDValue.Render(fmt.Sprintf("Tick %d", s.Stats.ElapsedTicks)),
		t.HUDValue.Render(fmt.Sprintf("Solid %d/%d", s.Stats.CellsSolidified, s.Stats.TotalCells)),
		t.HUDValue.Render(fmt.Sprintf("Conveyor %d/%d", len(s.Conveyor), s.Rules().ConveyorCapacity)),
		t.HUDValue.Render(fmt.Sprintf("Deployed %d", s.Stats.ShootersDeployed)),
	}
	return strings.Join(fields, sep)
}

func keyLabel(k string) string {
	if k == "" {
		return " "
	}
	return k
}
