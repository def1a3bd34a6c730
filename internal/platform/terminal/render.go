package terminal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pixelhost/internal/video"
)

// halfBlock renders two vertically stacked pixels per terminal cell: the
// upper half is the foreground color, the lower half the background.
const halfBlock = '▀'

// RenderFrame converts a back-buffer to a styled string sized cols x rows
// terminal cells. The buffer is sampled nearest-neighbor onto a cols x
// (rows*2) pixel grid, so any buffer size maps onto any terminal size.
// Adjacent cells with the same color pair are grouped into one styled run
// to keep the ANSI escape volume down.
func RenderFrame(fb *video.Backbuffer, cols, rows int) string {
	if cols <= 0 || rows <= 0 || fb.Width() <= 0 || fb.Height() <= 0 {
		return ""
	}

	pix := fb.Pix()
	pitch := fb.Pitch()
	w, h := fb.Width(), fb.Height()

	sample := func(cx, py int) (uint8, uint8, uint8) {
		sx := cx * w / cols
		sy := py * h / (rows * 2)
		off := sy*pitch + sx*video.BytesPerPixel
		return pix[off], pix[off+1], pix[off+2]
	}

	var sb strings.Builder
	sb.Grow(cols * rows * 24)

	for row := range rows {
		if row > 0 {
			sb.WriteRune('\n')
		}

		col := 0
		for col < cols {
			tr, tg, tb := sample(col, row*2)
			br, bg, bb := sample(col, row*2+1)
			top := hexColor(tr, tg, tb)
			bottom := hexColor(br, bg, bb)

			// Extend the run while the color pair holds.
			n := 1
			for col+n < cols {
				nr, ng, nb := sample(col+n, row*2)
				mr, mg, mb := sample(col+n, row*2+1)
				if hexColor(nr, ng, nb) != top || hexColor(mr, mg, mb) != bottom {
					break
				}
				n++
			}

			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom))
			sb.WriteString(style.Render(strings.Repeat(string(halfBlock), n)))
			col += n
		}
	}
	return sb.String()
}

func hexColor(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
