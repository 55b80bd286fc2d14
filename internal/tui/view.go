package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"

	"github.com/arcanaland/tango/internal/card"
	"github.com/arcanaland/tango/internal/viewer"
)

// Screen rows, from the top of the view.
const (
	headerRow   = 0
	progressRow = 1
	cardTop     = 3
	cardHeight  = 11
	controlsRow = cardTop + cardHeight + 1

	defaultWidth = 80
	minCardWidth = 24
	maxCardWidth = 64
)

type action int

const (
	actionPrev action = iota
	actionShuffle
	actionReverse
	actionGenre
	actionNext
)

func (a action) String() string {
	switch a {
	case actionPrev:
		return "prev"
	case actionShuffle:
		return "shuffle"
	case actionReverse:
		return "reverse"
	case actionGenre:
		return "genre"
	case actionNext:
		return "next"
	default:
		return "unknown"
	}
}

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

type control struct {
	action   action
	rendered string
	rect     rect
}

// layout is the position of every clickable element for the current
// state. View draws from the same layout so hit-testing matches the
// screen.
type layout struct {
	width    int
	card     rect
	controls []control
}

func (m *Model) screenWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return m.width
}

func (m *Model) cardWidth() int {
	w := m.screenWidth() - 8
	return max(minCardWidth, min(maxCardWidth, w))
}

func (m *Model) layout() layout {
	width := m.screenWidth()
	cw := m.cardWidth()
	left := max(0, (width-cw)/2)

	l := layout{
		width: width,
		card:  rect{x: left, y: cardTop, w: cw, h: cardHeight},
	}

	f := m.machine.Frame()
	if f.NoData {
		return l
	}
	s := m.machine.State()
	reverse := "reverse: off"
	if s.Reversed {
		reverse = "reverse: on"
	}

	buttons := []struct {
		action   action
		label    string
		disabled bool
		active   bool
	}{
		{actionPrev, "‹ prev", f.PrevDisabled, false},
		{actionShuffle, "shuffle", f.Empty, false},
		{actionReverse, reverse, false, s.Reversed},
		{actionGenre, "genre: " + s.Genre, false, false},
		{actionNext, "next ›", f.NextDisabled, false},
	}

	total := 0
	for i, b := range buttons {
		style := m.theme.Button
		switch {
		case b.disabled:
			style = m.theme.Disabled
		case b.active:
			style = m.theme.Active
		}
		rendered := style.Render(b.label)
		l.controls = append(l.controls, control{action: b.action, rendered: rendered})
		total += lipgloss.Width(rendered)
		if i > 0 {
			total++
		}
	}

	x := left + max(0, (cw-total)/2)
	for i := range l.controls {
		w := lipgloss.Width(l.controls[i].rendered)
		l.controls[i].rect = rect{x: x, y: controlsRow, w: w, h: 1}
		x += w + 1
	}
	return l
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	l := m.layout()
	f := m.machine.Frame()
	pad := strings.Repeat(" ", l.card.x)

	rows := make([]string, controlsRow+1)
	rows[headerRow] = pad + m.renderHeader(f, l.card.w)
	if !f.Empty {
		rows[progressRow] = pad + m.renderProgress(f, l.card.w)
	}

	for i, line := range m.renderCard(f, l) {
		if cardTop+i < controlsRow {
			rows[cardTop+i] = line
		}
	}

	for i, c := range l.controls {
		if i == 0 {
			rows[controlsRow] = strings.Repeat(" ", c.rect.x)
		} else {
			rows[controlsRow] += " "
		}
		rows[controlsRow] += c.rendered
	}

	return strings.Join(rows, "\n") + "\n\n" + pad + m.help.View(m.keys)
}

func (m *Model) renderHeader(f viewer.Frame, width int) string {
	left := m.title
	right := m.theme.Counter.Render(f.Counter())

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderProgress draws a gradient bar filled in proportion to the cursor
// position.
func (m *Model) renderProgress(f viewer.Frame, width int) string {
	filled := int(math.Round(f.Progress() * float64(width)))
	var b strings.Builder
	for i := 0; i < width; i++ {
		if i < filled && i < len(m.theme.progress) {
			b.WriteString(lipgloss.NewStyle().Foreground(m.theme.progress[i]).Render("█"))
			continue
		}
		b.WriteString(m.theme.Track.Render("░"))
	}
	return b.String()
}

// renderCard draws the card face at its current slide position, clipped
// to the screen width.
func (m *Model) renderCard(f viewer.Frame, l layout) []string {
	face := m.machine.Face()
	flipped := m.machine.State().Flipped

	content, style := f.Question, m.theme.Question
	if flipped && !f.Empty {
		content, style = f.Answer, m.theme.Answer
	}

	inner := l.card.w - 4
	room := cardHeight - 2
	body := ""
	if !face.Hidden && !face.Turning {
		badge := ""
		if f.Genre != "" {
			badge = m.theme.Badge.Render(f.Genre) + "\n\n"
			room -= 2
		}
		body = badge + m.renderContent(content, inner, room, style)
	}

	box := m.theme.Card.
		Width(l.card.w - 2).
		Height(cardHeight - 2).
		MaxHeight(cardHeight).
		Render(body)
	if face.Turning {
		narrow := m.theme.Card.
			Width(max(4, l.card.w/4)).
			Height(cardHeight - 2).
			Render("")
		box = lipgloss.PlaceHorizontal(l.card.w, lipgloss.Center, narrow)
	}

	now := m.machine.Sequencer().Now()
	shift := int(math.Round(face.Position(now) * float64(l.card.x+l.card.w)))
	x := l.card.x + shift

	lines := strings.Split(box, "\n")
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = clip(line, x, l.width)
	}
	return out
}

// renderContent lays out one card face in at most height lines. Annotated
// content puts the reading gloss on its own line above the base text.
func (m *Model) renderContent(c card.Content, width, height int, style lipgloss.Style) string {
	var lines []string
	switch c := c.(type) {
	case card.Annotated:
		lines = append(lines, m.theme.Gloss.Render(wordwrap.String(c.Gloss, width)))
		lines = append(lines, style.Render(wordwrap.String(c.Base, width)))
	case card.Plain:
		lines = append(lines, style.Render(wordwrap.String(c.Text, width)))
	default:
		lines = append(lines, style.Render(fmt.Sprint(c)))
	}

	text := strings.Join(lines, "\n")
	if all := strings.Split(text, "\n"); len(all) > height {
		text = strings.Join(all[:height], "\n")
	}
	return text
}

// clip places line at column x of a row width cells wide, cutting
// whatever falls outside.
func clip(line string, x, width int) string {
	if x >= width {
		return ""
	}
	if x >= 0 {
		return ansi.Cut(strings.Repeat(" ", x)+line, 0, width)
	}
	return ansi.Cut(line, -x, -x+width)
}
