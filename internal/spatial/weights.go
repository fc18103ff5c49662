package spatial

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Objective indices inside a weight vector
const (
	Length        = 0
	Height        = 1
	Unsuitability = 2
)

// ErrInvalidWeights is returned when a "w0/w1/w2" string cannot be parsed
var ErrInvalidWeights = errors.New("invalid weight string")

// Weights is a point of the weight simplex: the share of length, height
// and unsuitability in the combined routing cost.
type Weights [3]float64

// Equal returns weights of 1/3 each
func Equal() Weights {
	return Weights{1.0 / 3.0, 1.0 / 3.0, 1.0 / 3.0}
}

// ParseWeights parses a slash-delimited triple such as "0.2/0.3/0.5".
// Values are taken as they are.
func ParseWeights(s string) (Weights, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return Weights{}, fmt.Errorf("%w: %q has %d components", ErrInvalidWeights, s, len(parts))
	}

	var w Weights
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return Weights{}, fmt.Errorf("%w: %q: %v", ErrInvalidWeights, s, err)
		}
		w[i] = v
	}
	return w, nil
}

// ParsePercentWeights parses a triple on the 0-100 scale ("20/30/50")
// and converts it to fractions.
func ParsePercentWeights(s string) (Weights, error) {
	w, err := ParseWeights(s)
	if err != nil {
		return Weights{}, err
	}
	return w.Scale(0.01), nil
}

// Scale multiplies every component by f
func (w Weights) Scale(f float64) Weights {
	return Weights{w[0] * f, w[1] * f, w[2] * f}
}

// Sum returns w0+w1+w2
func (w Weights) Sum() float64 {
	return w[0] + w[1] + w[2]
}

// Percentages rounds every component to a whole percent independently.
// The three values are not renormalised, so they may not add up to 100.
func (w Weights) Percentages() [3]int {
	var p [3]int
	for i, v := range w {
		p[i] = int(math.Round(v * 100))
	}
	return p
}

// String formats the weights the way the routing backend does
func (w Weights) String() string {
	parts := make([]string, len(w))
	for i, v := range w {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, "/")
}

// Mean returns the component-wise unweighted mean of the given vectors
func Mean(ws ...Weights) Weights {
	var m Weights
	if len(ws) == 0 {
		return m
	}
	for _, w := range ws {
		for i := range m {
			m[i] += w[i]
		}
	}
	n := float64(len(ws))
	for i := range m {
		m[i] /= n
	}
	return m
}
