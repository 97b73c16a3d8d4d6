package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/VoidMesh/orevein/services/vein"
)

// ChannelTable renders one channel of a row-major grid as a table of byte values.
// Cells equal to culled are dimmed.
func ChannelTable(cells []vein.ARGB, width int, ch vein.Channel, culled vein.ARGB) string {
	if width <= 0 || len(cells) == 0 {
		return ""
	}

	var rows []string
	header := []string{TableHeaderStyle.Foreground(ChannelColor(ch)).Render(ch.String())}
	for x := 0; x < width; x++ {
		header = append(header, TableHeaderStyle.Render(strconv.Itoa(x)))
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, header...))

	for z := 0; z*width < len(cells); z++ {
		row := []string{TableHeaderStyle.Render(strconv.Itoa(z))}
		for x := 0; x < width && z*width+x < len(cells); x++ {
			v := cells[z*width+x]
			style := TableCellStyle
			if v == culled {
				style = CulledCellStyle
			}
			row = append(row, style.Render(strconv.Itoa(int(v.Channel(ch)))))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Heatmap renders one channel as shaded blocks, two columns per cell.
func Heatmap(cells []vein.ARGB, width int, ch vein.Channel) string {
	if width <= 0 {
		return ""
	}
	var b strings.Builder
	for i, v := range cells {
		if i > 0 && i%width == 0 {
			b.WriteByte('\n')
		}
		b.WriteString(GridCellStyle.Background(ShadeColor(ch, v.Channel(ch))).Render("  "))
	}
	return b.String()
}

// ChannelStats summarises one channel over a grid.
type ChannelStats struct {
	Channel vein.Channel
	Min     uint8
	Max     uint8
	Mean    float64
}

// Stats computes per-channel statistics and counts cells equal to culled.
func Stats(cells []vein.ARGB, culled vein.ARGB) ([4]ChannelStats, int) {
	var stats [4]ChannelStats
	var sums [4]int
	for i := range stats {
		stats[i] = ChannelStats{Channel: vein.Channel(i), Min: 255}
	}

	culledCount := 0
	for _, v := range cells {
		if v == culled {
			culledCount++
		}
		for i, c := range v.Channels() {
			stats[i].Min = min(stats[i].Min, c)
			stats[i].Max = max(stats[i].Max, c)
			sums[i] += int(c)
		}
	}
	for i := range stats {
		if len(cells) == 0 {
			stats[i].Min = 0
			continue
		}
		stats[i].Mean = float64(sums[i]) / float64(len(cells))
	}
	return stats, culledCount
}

// Summary renders Stats as a bordered panel.
func Summary(cells []vein.ARGB, culled vein.ARGB) string {
	stats, culledCount := Stats(cells, culled)

	lines := []string{SubtitleStyle.Render("Summary")}
	for _, s := range stats {
		label := lipgloss.NewStyle().Foreground(ChannelColor(s.Channel)).Bold(true).Render(s.Channel.String())
		lines = append(lines, fmt.Sprintf("%s  min %3d  max %3d  mean %6.2f", label, s.Min, s.Max, s.Mean))
	}
	lines = append(lines, fmt.Sprintf("culled %d/%d", culledCount, len(cells)))

	return BorderStyle.Render(strings.Join(lines, "\n"))
}
