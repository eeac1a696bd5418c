package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"StockMonitor/internal/calculator"
	"StockMonitor/internal/model"
)

var (
	red    = color.New(color.FgRed)
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
)

// Option is one numbered or lettered menu entry.
type Option struct {
	Key   string
	Label string
	Tone  Tone
}

// Console renders screens, charts and tables to a terminal.
type Console struct {
	Out         io.Writer
	ChartHeight int
	MaxCandles  int
}

// NewConsole creates a Console writing to out.
func NewConsole(out io.Writer, chartHeight, maxCandles int) *Console {
	return &Console{Out: out, ChartHeight: chartHeight, MaxCandles: maxCandles}
}

// Banner prints a boxed screen title.
func (c *Console) Banner(title string) {
	rule := strings.Repeat("=", len(title)+8)
	fmt.Fprintf(c.Out, "\n    %s\n        %s\n    %s\n", rule, title, rule)
}

// Notice prints an instruction line.
func (c *Console) Notice(format string, args ...any) {
	fmt.Fprintln(c.Out, yellow.Sprintf(format, args...))
}

// Error prints a recoverable error.
func (c *Console) Error(err error) {
	fmt.Fprintf(c.Out, "\n%s\n\n", red.Sprintf("ERROR: %v", err))
}

// Menu prints the options, one per line.
func (c *Console) Menu(options []Option) {
	for _, o := range options {
		fmt.Fprintln(c.Out, paint(o.Tone).Sprintf("[%s] %s", o.Key, o.Label))
	}
}

// Quit prints the exit message.
func (c *Console) Quit() {
	fmt.Fprintf(c.Out, "\n%s\n", red.Sprint("PROGRAM QUIT"))
}

// Candles draws the candlestick chart with a short range summary underneath.
func (c *Console) Candles(title string, candles []model.Candle) error {
	shown := candles
	if c.MaxCandles > 0 && len(shown) > c.MaxCandles {
		shown = shown[len(shown)-c.MaxCandles:]
	}
	high, low, err := calculator.PriceRange(shown)
	if err != nil {
		return err
	}
	series := NewSeries(candles).Tail(len(shown))

	fmt.Fprintf(c.Out, "\n%s\n", yellow.Sprint(title))
	if len(shown) < len(candles) {
		fmt.Fprintf(c.Out, "(showing the last %d of %d candles)\n", len(shown), len(candles))
	}
	for _, line := range chartLines(series, c.ChartHeight, high, low, green, red) {
		fmt.Fprintln(c.Out, line)
	}

	periodHigh, periodLow, err := calculator.PriceRange(candles)
	if err != nil {
		return err
	}
	abs, pct, err := calculator.PeriodChange(candles)
	if err != nil {
		return err
	}
	tone := green
	sign := "+"
	if abs.IsNegative() {
		tone = red
		sign = "-"
	}
	fmt.Fprintf(c.Out, "\nHigh: %s  Low: %s  Change: %s\n",
		Price(periodHigh), Price(periodLow),
		tone.Sprintf("%s %s (%s%%)", sign, grouped(abs.Abs()), pct.StringFixed(2)))
	return nil
}

// OpenClose prints a daily record as a key/value grid.
func (c *Console) OpenClose(rec *model.OpenCloseRecord) {
	t := c.table()
	t.AppendBulk(OpenCloseRows(rec))
	t.Render()
}

// Growth prints the comparison table with gain/loss coloring.
func (c *Console) Growth(v GrowthView) {
	t := c.table()
	headers := make([]string, len(v.Headers))
	for i, h := range v.Headers {
		headers[i] = paint(h.Tone).Sprint(h.Text)
	}
	t.SetHeader(headers)
	for _, row := range v.Rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = paint(cell.Tone).Sprint(cell.Text)
		}
		t.Append(cells)
	}
	t.Render()
}

func (c *Console) table() *tablewriter.Table {
	t := tablewriter.NewWriter(c.Out)
	t.SetAutoFormatHeaders(false)
	t.SetAutoWrapText(false)
	t.SetRowLine(true)
	return t
}

func paint(t Tone) *color.Color {
	switch t {
	case TonePast:
		return yellow
	case ToneCurrent, ToneGain, ToneTicker:
		return green
	case ToneLoss:
		return red
	default:
		return color.New(color.Reset)
	}
}
