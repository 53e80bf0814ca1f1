package ta

import (
	"encoding/json"
	"time"

	"github.com/guregu/null/v6"
)

const (
	DefaultRSIPeriod  = 14
	DefaultMACDFast   = 12
	DefaultMACDSlow   = 26
	DefaultMACDSignal = 9
)

// Params holds indicator windows
type Params struct {
	RSIPeriod  int `json:"rsi_period"`
	MACDFast   int `json:"macd_fast"`
	MACDSlow   int `json:"macd_slow"`
	MACDSignal int `json:"macd_signal"`
}

func DefaultParams() Params {
	return Params{
		RSIPeriod:  DefaultRSIPeriod,
		MACDFast:   DefaultMACDFast,
		MACDSlow:   DefaultMACDSlow,
		MACDSignal: DefaultMACDSignal,
	}
}

func (p Params) withDefaults() Params {
	d := DefaultParams()
	if p.RSIPeriod <= 0 {
		p.RSIPeriod = d.RSIPeriod
	}
	if p.MACDFast <= 0 {
		p.MACDFast = d.MACDFast
	}
	if p.MACDSlow <= 0 {
		p.MACDSlow = d.MACDSlow
	}
	if p.MACDSignal <= 0 {
		p.MACDSignal = d.MACDSignal
	}
	return p
}

// Frame is a Series with indicator columns aligned by index.
// Invalid entries mean the indicator is not defined at that point.
type Frame struct {
	Series
	Params Params
	RSI    []null.Float
	MACD   []null.Float
	Signal []null.Float
}

// Compute derives RSI and MACD/signal columns for s
func Compute(s Series, p Params) Frame {
	p = p.withDefaults()
	prices := s.Prices()

	f := Frame{
		Series: s,
		Params: p,
		RSI:    RSI(prices, p.RSIPeriod),
	}
	f.MACD, f.Signal = MACD(prices, p.MACDFast, p.MACDSlow, p.MACDSignal)
	return f
}

// MACDConvergedFrom is the first index at which both MACD EMAs and the signal
// EMA have seen at least one full span of data. Earlier values are exposed but unconverged.
func (f Frame) MACDConvergedFrom() int {
	return f.Params.MACDSlow + f.Params.MACDSignal - 2
}

// RSI uses simple rolling means of gains and losses over period points.
// The first delta is taken as zero so the first defined value sits at index period-1.
func RSI(prices []float64, period int) []null.Float {
	out := make([]null.Float, len(prices))
	if period <= 0 || len(prices) < period {
		return out
	}

	gains := make([]float64, len(prices))
	losses := make([]float64, len(prices))
	for i := 1; i < len(prices); i++ {
		d := prices[i] - prices[i-1]
		if d > 0 {
			gains[i] = d
		} else if d < 0 {
			losses[i] = -d
		}
	}

	for i := period - 1; i < len(prices); i++ {
		gain, loss := 0.0, 0.0
		for j := i - period + 1; j <= i; j++ {
			gain += gains[j]
			loss += losses[j]
		}
		out[i] = null.FloatFrom(rsiValue(gain/float64(period), loss/float64(period)))
	}
	return out
}

func rsiValue(meanGain, meanLoss float64) float64 {
	if meanLoss == 0 {
		if meanGain == 0 {
			// flat window: no momentum either way
			return 50.0
		}
		return 100.0
	}
	rs := meanGain / meanLoss
	return 100.0 - (100.0 / (1.0 + rs))
}

// EMA is the recursive exponential average with alpha = 2/(span+1), seeded with the first value
func EMA(vals []float64, span int) []float64 {
	out := make([]float64, len(vals))
	if len(vals) == 0 {
		return out
	}
	alpha := 2.0 / (float64(span) + 1.0)
	out[0] = vals[0]
	for i := 1; i < len(vals); i++ {
		out[i] = alpha*vals[i] + (1-alpha)*out[i-1]
	}
	return out
}

// MACD returns the fast-slow EMA difference and its signal EMA, both defined at every index
func MACD(prices []float64, fast, slow, signal int) (macd, sig []null.Float) {
	macd = make([]null.Float, len(prices))
	sig = make([]null.Float, len(prices))
	if len(prices) == 0 {
		return macd, sig
	}

	fastEMA := EMA(prices, fast)
	slowEMA := EMA(prices, slow)
	line := make([]float64, len(prices))
	for i := range prices {
		line[i] = fastEMA[i] - slowEMA[i]
	}
	signalEMA := EMA(line, signal)

	for i := range prices {
		macd[i] = null.FloatFrom(line[i])
		sig[i] = null.FloatFrom(signalEMA[i])
	}
	return macd, sig
}

// Row is one frame record as exposed over the API
type Row struct {
	Timestamp int64      `json:"timestamp"`
	Time      time.Time  `json:"time"`
	Price     float64    `json:"price"`
	RSI       null.Float `json:"rsi"`
	MACD      null.Float `json:"macd"`
	Signal    null.Float `json:"signal"`
}

func (f Frame) Rows() []Row {
	rows := make([]Row, f.Len())
	for i := range rows {
		p := f.At(i)
		rows[i] = Row{
			Timestamp: p.Time.UnixMilli(),
			Time:      p.Time,
			Price:     p.Price,
			RSI:       f.RSI[i],
			MACD:      f.MACD[i],
			Signal:    f.Signal[i],
		}
	}
	return rows
}

func (f Frame) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Params            Params `json:"params"`
		MACDConvergedFrom int    `json:"macd_converged_from"`
		Rows              []Row  `json:"rows"`
	}{f.Params, f.MACDConvergedFrom(), f.Rows()})
}
