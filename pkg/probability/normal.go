package probability

import "math"

// Phi approximates the standard normal CDF using the Abramowitz &
// Stegun 26.2.17 polynomial approximation, accurate to about 7.5e-8 —
// comfortably inside the accuracy this engine needs for live-state
// blending and cheap enough to call once per in-progress matchup.
func Phi(x float64) float64 {
	if x < 0 {
		return 1 - Phi(-x)
	}

	const (
		b1 = 0.319381530
		b2 = -0.356563782
		b3 = 1.781477937
		b4 = -1.821255978
		b5 = 1.330274429
		p  = 0.2316419
		c  = 0.3989422804014327 // 1/sqrt(2*pi)
	)

	t := 1.0 / (1.0 + p*x)
	poly := t * (b1 + t*(b2+t*(b3+t*(b4+t*b5))))
	return 1 - c*math.Exp(-x*x/2)*poly
}
