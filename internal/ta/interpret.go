package ta

import (
	"fmt"

	"github.com/guregu/null/v6"
)

const (
	Overbought = 70.0
	Oversold   = 30.0
)

type RSISignal string

const (
	RSIOverbought RSISignal = "overbought"
	RSIOversold   RSISignal = "oversold"
	RSINeutral    RSISignal = "neutral"
	RSINoData     RSISignal = "no data"
)

type MACDSignal string

const (
	MACDBullish  MACDSignal = "bullish"
	MACDBearish  MACDSignal = "bearish"
	MACDSideways MACDSignal = "sideways"
	MACDNoData   MACDSignal = "no data"
)

// Reading is the qualitative view of the latest indicator values
type Reading struct {
	RSI       RSISignal  `json:"rsi"`
	MACD      MACDSignal `json:"macd"`
	RSIVal    null.Float `json:"rsi_value"`
	MACDVal   null.Float `json:"macd_value"`
	SignalVal null.Float `json:"signal_value"`
}

// HasData reports whether at least one indicator produced a signal
func (r Reading) HasData() bool {
	return r.RSI != RSINoData || r.MACD != MACDNoData
}

// Interpret classifies the most recent defined RSI and MACD/signal pair.
// Each indicator falls back to "no data" independently.
func Interpret(f Frame) Reading {
	r := Reading{RSI: RSINoData, MACD: MACDNoData}

	if v, ok := latest(f.RSI); ok {
		r.RSIVal = null.FloatFrom(v)
		r.RSI = ClassifyRSI(v)
	}

	for i := len(f.MACD) - 1; i >= 0; i-- {
		if i < len(f.Signal) && f.MACD[i].Valid && f.Signal[i].Valid {
			r.MACDVal = f.MACD[i]
			r.SignalVal = f.Signal[i]
			r.MACD = ClassifyMACD(f.MACD[i].Float64, f.Signal[i].Float64)
			break
		}
	}
	return r
}

func ClassifyRSI(v float64) RSISignal {
	switch {
	case v > Overbought:
		return RSIOverbought
	case v < Oversold:
		return RSIOversold
	default:
		return RSINeutral
	}
}

func ClassifyMACD(macd, signal float64) MACDSignal {
	switch {
	case macd > signal:
		return MACDBullish
	case macd < signal:
		return MACDBearish
	default:
		return MACDSideways
	}
}

func latest(col []null.Float) (float64, bool) {
	for i := len(col) - 1; i >= 0; i-- {
		if col[i].Valid {
			return col[i].Float64, true
		}
	}
	return 0, false
}

// Summary renders the reading as dashboard lines
func (r Reading) Summary() []string {
	lines := make([]string, 0, 2)
	switch r.RSI {
	case RSIOverbought:
		lines = append(lines, fmt.Sprintf("RSI %.2f indicates overbought conditions. Possible pullback.", r.RSIVal.Float64))
	case RSIOversold:
		lines = append(lines, fmt.Sprintf("RSI %.2f indicates oversold conditions. Possible rebound.", r.RSIVal.Float64))
	case RSINeutral:
		lines = append(lines, fmt.Sprintf("RSI %.2f is neutral.", r.RSIVal.Float64))
	default:
		lines = append(lines, "RSI: no data (not enough history).")
	}
	switch r.MACD {
	case MACDBullish:
		lines = append(lines, "MACD is above signal. Bullish momentum.")
	case MACDBearish:
		lines = append(lines, "MACD is below signal. Bearish momentum.")
	case MACDSideways:
		lines = append(lines, "MACD and signal are aligned. Sideways trend.")
	default:
		lines = append(lines, "MACD: no data.")
	}
	return lines
}
