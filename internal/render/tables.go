package render

import (
	"fmt"

	"StockMonitor/internal/model"
)

// Tone tags a cell with its meaning; the Console maps tones to colors.
type Tone int

const (
	ToneNone Tone = iota
	TonePast
	ToneCurrent
	ToneGain
	ToneLoss
	ToneTicker
)

// Cell is one table value plus its tone.
type Cell struct {
	Text string
	Tone Tone
}

// OpenCloseRows lays out a daily record as ordered key/value rows.
func OpenCloseRows(rec *model.OpenCloseRecord) [][]string {
	return [][]string{
		{"Date", rec.Date},
		{"Symbol", rec.Symbol},
		{"Pre-Market", OptionalPrice(rec.PreMarket)},
		{"Open", Price(rec.Open)},
		{"High", Price(rec.High)},
		{"Low", Price(rec.Low)},
		{"Close", Price(rec.Close)},
		{"After-Hours", OptionalPrice(rec.AfterHours)},
		{"Volume", Volume(rec.Volume)},
	}
}

// GrowthView is the 3x3 past/current/delta comparison table.
type GrowthView struct {
	Headers []Cell
	Rows    [][]Cell
}

// NewGrowthView builds the comparison table:
//
//	PAST        CURRENT        Δ $ (TICKER)
//	past date   current date   current date
//	past price  current price  ± %percent
//	invested    current value  ± $growth
func NewGrowthView(q model.GrowthQuery, r *model.GrowthResult) GrowthView {
	delta := ToneGain
	sign := "+"
	if !r.Gain() {
		delta = ToneLoss
		sign = "-"
	}
	past := q.PastDate.Format(model.DateLayout)
	current := q.CurrentDate.Format(model.DateLayout)

	return GrowthView{
		Headers: []Cell{
			{Text: "PAST"},
			{Text: "CURRENT"},
			{Text: fmt.Sprintf("Δ $ (%s)", q.Market.APITicker(q.Ticker)), Tone: ToneTicker},
		},
		Rows: [][]Cell{
			{
				{Text: past, Tone: TonePast},
				{Text: current, Tone: ToneCurrent},
				{Text: current, Tone: ToneCurrent},
			},
			{
				{Text: Money(r.PastPrice), Tone: TonePast},
				{Text: Money(r.CurrentPrice), Tone: ToneCurrent},
				{Text: fmt.Sprintf("%s %%%s", sign, grouped(r.PercentGrowth.Abs())), Tone: delta},
			},
			{
				{Text: Money(r.InvestedAmount), Tone: TonePast},
				{Text: Money(r.CurrentValue), Tone: delta},
				{Text: fmt.Sprintf("%s %s", sign, Money(r.AbsoluteGrowth.Abs())), Tone: delta},
			},
		},
	}
}
