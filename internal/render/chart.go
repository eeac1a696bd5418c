package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/fatih/color"

	"StockMonitor/internal/model"
)

const (
	wickGlyph = "│"
	bodyGlyph = "█"
	// labelEvery is the row spacing of price labels on the y axis.
	labelEvery = 4
)

// chartLines draws one column per candle, highest price on the first line.
// high and low bound the y axis; height is the number of price rows.
func chartLines(s Series, height int, high, low float64, up, down *color.Color) []string {
	rowOf := func(p float64) int {
		if high == low {
			return height / 2
		}
		r := int(math.Round((high - p) / (high - low) * float64(height-1)))
		return min(max(r, 0), height-1)
	}

	labelWidth := len(fmt.Sprintf("%.2f", high))
	if w := len(fmt.Sprintf("%.2f", low)); w > labelWidth {
		labelWidth = w
	}

	lines := make([]string, 0, height+2)
	for row := 0; row < height; row++ {
		var b strings.Builder
		if row%labelEvery == 0 || row == height-1 {
			price := high - (high-low)*float64(row)/float64(height-1)
			b.WriteString(fmt.Sprintf("%*.2f ┤", labelWidth, price))
		} else {
			b.WriteString(strings.Repeat(" ", labelWidth+1) + "│")
		}

		for i := 0; i < s.Len(); i++ {
			o, c := s.Open[i], s.Close[i]
			bodyTop := rowOf(math.Max(o, c))
			bodyBottom := rowOf(math.Min(o, c))
			paint := up
			if c < o {
				paint = down
			}

			glyph := " "
			switch {
			case row >= bodyTop && row <= bodyBottom:
				glyph = paint.Sprint(bodyGlyph)
			case row >= rowOf(s.High[i]) && row <= rowOf(s.Low[i]):
				glyph = paint.Sprint(wickGlyph)
			}
			b.WriteString(glyph)
			b.WriteString(" ")
		}
		lines = append(lines, strings.TrimRight(b.String(), " "))
	}

	width := s.Len() * 2
	lines = append(lines, strings.Repeat(" ", labelWidth+1)+"└"+strings.Repeat("─", width))
	if s.Len() > 0 {
		first := s.Dates[0].Format(model.DateLayout)
		last := s.Dates[s.Len()-1].Format(model.DateLayout)
		axis := strings.Repeat(" ", labelWidth+2) + first
		if s.Len() > 1 {
			gap := max(width-len(first)-len(last), 1)
			axis += strings.Repeat(" ", gap) + last
		}
		lines = append(lines, axis)
	}
	return lines
}
