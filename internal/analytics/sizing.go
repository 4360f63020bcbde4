package analytics

import "math"

// SizingInput is the position sizer's form state. Leverage defaults to 5 in
// the dashboard; the margin figure it produces is an illustrative heuristic,
// not modelled exchange behavior.
type SizingInput struct {
	AccountBalance float64
	RiskPercent    float64
	EntryPrice     float64
	StopPrice      float64
	Leverage       float64
}

// SizingResult is the derived risk-based position size.
type SizingResult struct {
	StopDistance   float64
	RiskAmount     float64
	Units          float64
	Notional       float64
	MarginRequired float64
}

// ComputeSizing derives a position size from the risk budget and stop
// distance. Degenerate inputs (zero stop distance, zero leverage) produce
// zero-valued results rather than dividing by zero.
func ComputeSizing(in SizingInput) SizingResult {
	out := SizingResult{
		StopDistance: math.Abs(in.EntryPrice - in.StopPrice),
		RiskAmount:   in.AccountBalance * in.RiskPercent / 100,
	}
	if out.StopDistance > 0 {
		out.Units = out.RiskAmount / out.StopDistance
	}
	out.Notional = out.Units * in.EntryPrice
	if in.Leverage > 0 {
		out.MarginRequired = out.Notional / in.Leverage
	}
	return out
}
