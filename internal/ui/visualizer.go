package ui

import "strings"

// Partial-height blocks, empty to full.
var blocks = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// loudnessMeter draws overall loudness as a short fixed-width cell strip.
func loudnessMeter(rms float32) string {
	const cells = 8
	filled := int(rms*cells + 0.5)
	if filled > cells {
		filled = cells
	}
	var s strings.Builder
	for i := 0; i < cells; i++ {
		if i < filled {
			s.WriteRune('▮')
		} else {
			s.WriteRune('▯')
		}
	}
	return s.String()
}

// renderBars draws band levels as a grid of block glyphs, one column group
// per band with a one-cell gap, top row first. Levels are expected in
// [0, 1]; anything above the row's threshold renders as a full block and
// the boundary row gets a partial glyph.
func renderBars(bands []float32, width, height int) []string {
	lines := make([]string, height)
	if len(bands) == 0 || width <= 0 || height <= 0 {
		return lines
	}

	barWidth := (width - (len(bands) - 1)) / len(bands)
	if barWidth < 1 {
		barWidth = 1
	}
	rowStep := 1.0 / float32(height)

	for row := 0; row < height; row++ {
		var line strings.Builder
		threshold := 1.0 - float32(row)/float32(height)

		for i, level := range bands {
			var ch rune
			switch {
			case level >= threshold:
				ch = '█'
			case level >= threshold-rowStep:
				idx := int((level - threshold + rowStep) * float32(height) * float32(len(blocks)-1))
				if idx >= len(blocks) {
					idx = len(blocks) - 1
				}
				ch = blocks[idx]
			default:
				ch = ' '
			}

			for w := 0; w < barWidth; w++ {
				line.WriteRune(ch)
			}
			if i < len(bands)-1 {
				line.WriteRune(' ')
			}
		}
		lines[row] = line.String()
	}
	return lines
}
