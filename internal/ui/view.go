package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/olivier-w/termdock/internal/dock"
	"github.com/olivier-w/termdock/internal/util"
)

// placement is an item's footprint in cells.
type placement struct {
	index int
	col   int
	cols  int
	rows  int
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width <= 0 || m.height <= 0 {
		return "Loading..."
	}

	band := m.renderBand()
	top := m.renderTop(m.height - len(band))
	lines := append(top, band...)
	if len(lines) > m.height {
		lines = lines[len(lines)-m.height:]
	}
	return strings.Join(lines, "\n")
}

// renderTop fills the rows above the dock with the header, status, search and
// help, padded down to n rows.
func (m Model) renderTop(n int) []string {
	if n <= 0 {
		return nil
	}
	lines := make([]string, 0, n)
	lines = append(lines, headerStyle.Render("termdock")+"  "+m.statusLine())
	if m.searching {
		lines = append(lines, m.search.View())
	}
	lines = append(lines, m.help.View(m.keys))
	if len(lines) > n {
		lines = lines[:n]
	}
	for len(lines) < n {
		lines = append(lines, "")
	}
	return lines
}

func (m Model) statusLine() string {
	switch {
	case m.loading:
		return m.spinner.View() + statusStyle.Render(" loading dock...")
	case m.loadErr != nil:
		return errorStyle.Render("config unavailable")
	case len(m.items) == 0:
		return statusStyle.Render("no apps configured")
	}
	running := 0
	for _, it := range m.items {
		if it.running {
			running++
		}
	}
	return statusStyle.Render(fmt.Sprintf("%d apps, %d running", len(m.items), running))
}

// renderBand draws the visible part of the dock window. While the dock is
// slid away its first visible row becomes a thin rail.
func (m Model) renderBand() []string {
	iconRows := m.iconRows()
	slots, span := m.engine.Layout()
	places := m.place(slots, iconRows)

	band := make([]string, 0, m.bandRows())
	band = append(band, m.labelRow(places))
	for r := range iconRows {
		band = append(band, m.iconRow(places, r, iconRows))
	}
	band = append(band, m.shelfRow(span, places))
	band = append(band, m.indicatorRow(places))

	visible := m.visibleBandRows()
	band = band[:visible]
	if m.slide.rows() > 0 {
		band[0] = shelfStyle.Render(strings.Repeat("▁", m.width))
	}
	return band
}

// place converts pixel slots into non-overlapping cell spans that fit the
// terminal width.
func (m Model) place(slots []dock.Slot, maxRows int) []placement {
	cw, ch := m.settings.CellWidth, m.settings.CellHeight
	places := make([]placement, 0, len(slots))
	cursor := 0
	for i, s := range slots {
		col := max(int(math.Round(s.Left/cw)), cursor)
		cols := max(1, int(math.Round(s.Size/cw)))
		rows := min(max(1, int(math.Round(s.Size/ch))), maxRows)
		if col+cols > m.width {
			break
		}
		places = append(places, placement{index: i, col: col, cols: cols, rows: rows})
		cursor = col + cols
	}
	return places
}

func (m Model) iconRow(places []placement, r, iconRows int) string {
	var sb strings.Builder
	cursor := 0
	for _, p := range places {
		sb.WriteString(util.Spaces(p.col - cursor))
		cursor = p.col + p.cols

		// Icons sit on the shelf, so row r of the band is row
		// r-(iconRows-p.rows) of the icon.
		k := r - (iconRows - p.rows)
		lines := m.iconLines(p)
		if k < 0 || k >= len(lines) {
			sb.WriteString(util.Spaces(p.cols))
			continue
		}
		sb.WriteString(lines[k])
	}
	return sb.String()
}

func (m Model) iconLines(p placement) []string {
	b := m.items[p.index].bitmap
	if b == nil {
		return nil
	}
	key := renderKey{bitmap: b, cols: p.cols, rows: p.rows}
	if lines, ok := m.cache[key]; ok {
		return lines
	}
	lines := m.renderer.Render(b, p.cols, p.rows)
	m.cache[key] = lines
	return lines
}

// labelRow names the focused item, or else the most magnified one.
func (m Model) labelRow(places []placement) string {
	target := m.focus
	if target < 0 {
		best := 0.0
		for _, it := range m.engine.Items() {
			if it.Magnified && it.Scale > best {
				best, target = it.Scale, it.Index
			}
		}
	}
	if target < 0 || target >= len(m.items) {
		return ""
	}
	center := m.width / 2
	for _, p := range places {
		if p.index == target {
			center = p.col + p.cols/2
			break
		}
	}

	it := m.items[target]
	text := util.Truncate(it.name, m.width)
	w := util.Width(text)
	left := min(max(0, center-w/2), max(0, m.width-w))
	label := labelStyle.Render(text)
	if it.category != "" && left+w+1+util.Width(it.category) <= m.width {
		label += " " + categoryStyle.Render(it.category)
	}
	return util.Spaces(left) + label
}

func (m Model) shelfRow(span dock.Span, places []placement) string {
	cw := m.settings.CellWidth
	left := max(0, int(math.Round(span.Left/cw)))
	right := min(m.width, int(math.Round(span.Right/cw)))
	if right <= left {
		return ""
	}

	items := m.engine.Items()
	shadow := make([]bool, right-left)
	for _, p := range places {
		if !items[p.index].Magnified {
			continue
		}
		for c := p.col; c < p.col+p.cols; c++ {
			if c >= left && c < right {
				shadow[c-left] = true
			}
		}
	}

	var sb strings.Builder
	sb.WriteString(util.Spaces(left))
	for start := 0; start < len(shadow); {
		end := start
		for end < len(shadow) && shadow[end] == shadow[start] {
			end++
		}
		run := strings.Repeat("▀", end-start)
		if shadow[start] {
			sb.WriteString(shadowStyle.Render(run))
		} else {
			sb.WriteString(shelfStyle.Render(run))
		}
		start = end
	}
	return sb.String()
}

// indicatorRow marks running items with a dot and category boundaries with
// a thin rule.
func (m Model) indicatorRow(places []placement) string {
	var sb strings.Builder
	cursor := 0
	for i, p := range places {
		if i > 0 && m.items[places[i-1].index].category != m.items[p.index].category {
			if sep := p.col - 1; sep >= cursor {
				sb.WriteString(util.Spaces(sep - cursor))
				sb.WriteString(separatorStyle.Render("│"))
				cursor = sep + 1
			}
		}
		if !m.items[p.index].running {
			continue
		}
		col := p.col + p.cols/2
		sb.WriteString(util.Spaces(col - cursor))
		sb.WriteString(runningStyle.Render("•"))
		cursor = col + 1
	}
	return sb.String()
}
