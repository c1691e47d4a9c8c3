package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/swimrace/components"
	"github.com/lixenwraith/swimrace/engine"
)

// Screen rows reserved above and below the water
const (
	headerRows = 2
	footerRows = 3
)

// Overlay carries host-side state drawn over the snapshot
type Overlay struct {
	Notice string // Popup for the most recent notice, empty for none
	Muted  bool
}

// TerminalRenderer draws race snapshots onto a tcell screen
type TerminalRenderer struct {
	screen tcell.Screen
	width  int
	height int
}

// NewTerminalRenderer creates a renderer sized to the screen
func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	w, h := screen.Size()
	return &TerminalRenderer{screen: screen, width: w, height: h}
}

// UpdateDimensions records a new terminal size after a resize event
func (r *TerminalRenderer) UpdateDimensions(width, height int) {
	r.width = width
	r.height = height
}

// RenderFrame renders the entire race frame
func (r *TerminalRenderer) RenderFrame(snap engine.Snapshot, ov Overlay) {
	defaultStyle := tcell.StyleDefault.Background(RgbBackground)
	r.screen.SetStyle(defaultStyle)
	r.screen.Clear()

	if r.width < 20 || r.height < headerRows+footerRows+4 {
		r.drawText(0, 0, "terminal too small", defaultStyle.Foreground(RgbObstacle))
		r.screen.Show()
		return
	}

	r.drawHeader(snap, ov, defaultStyle)
	r.drawWater(snap, defaultStyle)
	r.drawObjects(snap, defaultStyle)
	r.drawParticles(snap, defaultStyle)
	r.drawRacers(snap, defaultStyle)

	switch snap.State {
	case "idle":
		r.drawIdlePanel(snap, defaultStyle)
	case "countdown":
		r.drawBanner(snap.Countdown, defaultStyle.Foreground(RgbStatusText).Background(RgbCountdown))
	case "finished":
		bg := RgbLoseBanner
		if snap.WinnerIsPlayer {
			bg = RgbWinBanner
		}
		r.drawBanner(snap.WinnerMessage, defaultStyle.Foreground(RgbStatusText).Background(bg))
	}

	r.drawProgressRow(snap, defaultStyle)
	r.drawInventoryRow(snap, defaultStyle)
	r.drawNoticeRow(ov, defaultStyle)

	r.screen.Show()
}

// waterRect returns the top row and the row count of the track area
func (r *TerminalRenderer) waterRect() (top, rows int) {
	return headerRows, r.height - headerRows - footerRows
}

// toCell maps world coordinates into the water area
func (r *TerminalRenderer) toCell(track engine.TrackView, x, y float64) (int, int, bool) {
	if track.Width <= 0 || track.Height <= 0 {
		return 0, 0, false
	}
	top, rows := r.waterRect()
	cx := int(math.Floor(x / track.Width * float64(r.width)))
	cy := top + int(math.Floor(y/track.Height*float64(rows)))
	if cx < 0 || cx >= r.width || cy < top || cy >= top+rows {
		return 0, 0, false
	}
	return cx, cy, true
}

func (r *TerminalRenderer) drawHeader(snap engine.Snapshot, ov Overlay, defaultStyle tcell.Style) {
	for x := 0; x < r.width; x++ {
		r.screen.SetContent(x, 0, ' ', nil, defaultStyle)
		r.screen.SetContent(x, 1, ' ', nil, defaultStyle)
	}

	title := fmt.Sprintf(" SWIMRACE %s ", strings.ToUpper(snap.State))
	x := r.drawText(0, 0, title, defaultStyle.Foreground(RgbStatusText).Background(RgbStatusBar))

	if snap.Leader != "" && snap.State == "racing" {
		r.drawText(x+1, 0, "Leader: "+snap.Leader, defaultStyle.Foreground(RgbCountdown))
	}
	if ov.Muted {
		r.drawText(r.width-7, 0, " MUTED ", defaultStyle.Foreground(RgbStatusText).Background(RgbObstacle))
	}

	r.drawText(1, 1, snap.Commentary, defaultStyle.Foreground(RgbCommentary))
}

func (r *TerminalRenderer) drawWater(snap engine.Snapshot, defaultStyle tcell.Style) {
	top, rows := r.waterRect()
	waterStyle := defaultStyle.Foreground(RgbWater)
	for y := top; y < top+rows; y++ {
		for x := 0; x < r.width; x++ {
			ch := ' '
			if (x+y)%7 == 0 {
				ch = '~'
			}
			r.screen.SetContent(x, y, ch, nil, waterStyle)
		}
	}

	startCol, _, okStart := r.toCell(snap.Track, snap.Track.StartX, 0)
	finishCol, _, okFinish := r.toCell(snap.Track, snap.Track.FinishX, 0)
	for y := top; y < top+rows; y++ {
		if okStart {
			r.screen.SetContent(startCol, y, '│', nil, defaultStyle.Foreground(RgbLaneMarker))
		}
		if okFinish {
			ch := '▓'
			if y%2 == 0 {
				ch = '░'
			}
			r.screen.SetContent(finishCol, y, ch, nil, defaultStyle.Foreground(RgbFinishLine))
		}
	}
}

// drawObjects draws live obstacles and boosters, collected or stale ones are skipped
func (r *TerminalRenderer) drawObjects(snap engine.Snapshot, defaultStyle tcell.Style) {
	for _, o := range snap.Obstacles {
		if o.Collected || o.Stale {
			continue
		}
		if x, y, ok := r.toCell(snap.Track, o.X, o.Y); ok {
			r.screen.SetContent(x, y, 'X', nil, defaultStyle.Foreground(RgbObstacle).Bold(true))
		}
	}
	for _, b := range snap.Boosters {
		if b.Collected || b.Stale {
			continue
		}
		if x, y, ok := r.toCell(snap.Track, b.X, b.Y); ok {
			r.screen.SetContent(x, y, '+', nil, defaultStyle.Foreground(RgbBooster).Bold(true))
		}
	}
}

func (r *TerminalRenderer) drawParticles(snap engine.Snapshot, defaultStyle tcell.Style) {
	for _, p := range snap.Particles {
		x, y, ok := r.toCell(snap.Track, p.X, p.Y)
		if !ok {
			continue
		}
		ch := '·'
		if p.Life > 0.6 {
			ch = '*'
		}
		r.screen.SetContent(x, y, ch, nil, defaultStyle.Foreground(particleColorByName(p.Color)))
	}
}

func (r *TerminalRenderer) drawRacers(snap engine.Snapshot, defaultStyle tcell.Style) {
	for _, rc := range snap.Racers {
		x, y, ok := r.toCell(snap.Track, rc.X, rc.Y)
		if !ok {
			continue
		}
		glyph := '@'
		if rc.Name != "" {
			glyph = []rune(rc.Name)[0]
		}
		style := defaultStyle.Foreground(RacerColor(rc.Color)).Bold(true)
		if rc.IsPlayer {
			style = style.Underline(true)
		}
		r.screen.SetContent(x, y, glyph, nil, style)

		// Wake trails behind the swimmer
		if x > 0 {
			r.screen.SetContent(x-1, y, '≈', nil, defaultStyle.Foreground(RacerColor(rc.Color)))
		}
		if rc.Shielded && x+1 < r.width {
			r.screen.SetContent(x+1, y, ')', nil, defaultStyle.Foreground(RgbShieldRing).Bold(true))
		}
		if rc.Magnetized && x+2 < r.width {
			r.screen.SetContent(x+2, y, 'ϟ', nil, defaultStyle.Foreground(RgbMagnetField))
		}
	}
}

// drawIdlePanel lists the suitability figures before the race
func (r *TerminalRenderer) drawIdlePanel(snap engine.Snapshot, defaultStyle tcell.Style) {
	lines := []string{"Race suitability"}
	for _, rc := range snap.Racers {
		lines = append(lines, fmt.Sprintf("%-5s %3.0f%%", rc.Name, rc.Suitability))
	}
	lines = append(lines, "", "Press Enter to start")

	top, rows := r.waterRect()
	y := top + (rows-len(lines))/2
	panel := defaultStyle.Foreground(RgbStatusBar).Background(RgbNoticeBg)
	for i, line := range lines {
		padded := fmt.Sprintf(" %-22s ", line)
		r.drawText((r.width-len([]rune(padded)))/2, y+i, padded, panel)
	}
}

func (r *TerminalRenderer) drawBanner(text string, style tcell.Style) {
	if text == "" {
		return
	}
	top, rows := r.waterRect()
	padded := "  " + text + "  "
	r.drawText((r.width-len([]rune(padded)))/2, top+rows/2, padded, style.Bold(true))
}

// drawProgressRow shows one progress bar per racer
func (r *TerminalRenderer) drawProgressRow(snap engine.Snapshot, defaultStyle tcell.Style) {
	y := r.height - footerRows
	if len(snap.Racers) == 0 {
		return
	}
	slot := r.width / len(snap.Racers)
	for i, rc := range snap.Racers {
		x0 := i * slot
		label := fmt.Sprintf("%s %3.0f%% ", rc.Name, rc.Progress)
		x := r.drawText(x0, y, label, defaultStyle.Foreground(RacerColor(rc.Color)))

		barWidth := x0 + slot - 1 - x
		filled := int(rc.Progress / 100 * float64(barWidth))
		for b := 0; b < barWidth; b++ {
			color := RgbUnfilled
			if b < filled {
				color = ProgressColor(rc.Progress / 100)
			}
			r.screen.SetContent(x+b, y, '█', nil, defaultStyle.Foreground(color))
		}
	}
}

// drawInventoryRow lists owned power-ups with their hotkeys
func (r *TerminalRenderer) drawInventoryRow(snap engine.Snapshot, defaultStyle tcell.Style) {
	y := r.height - footerRows + 1
	x := 0
	for _, info := range components.PowerUpCatalog {
		n := snap.Inventory[info.ID]
		style := defaultStyle.Foreground(RgbStatusBar)
		if n == 0 {
			style = defaultStyle.Foreground(RgbUnfilled)
		}
		x = r.drawText(x, y, fmt.Sprintf("[%c] %s x%d ", info.Hotkey, info.Name, n), style)
	}
}

func (r *TerminalRenderer) drawNoticeRow(ov Overlay, defaultStyle tcell.Style) {
	y := r.height - 1
	if ov.Notice != "" {
		r.drawText(0, y, " "+ov.Notice+" ", defaultStyle.Foreground(RgbStatusBar).Background(RgbNoticeBg))
		return
	}
	r.drawText(0, y, "↑/↓ steer  1-6 power-ups  m mute  q quit", defaultStyle.Foreground(RgbCommentary))
}

// drawText writes text clipped to the screen width, returning the column after it
func (r *TerminalRenderer) drawText(x, y int, text string, style tcell.Style) int {
	if x < 0 {
		x = 0
	}
	for _, ch := range text {
		if x >= r.width {
			break
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}
