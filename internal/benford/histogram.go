package benford

import (
	"encoding/json"
	"math"
	"strconv"
)

// Digits lists the leading digits Benford's Law is defined over.
var Digits = [9]int{1, 2, 3, 4, 5, 6, 7, 8, 9}

// Histogram holds observed counts for leading digits 1..9. Index i stores the
// count for digit i+1, so every digit is always present.
type Histogram [9]int

// Count returns the count for digit d, or 0 when d is outside 1..9.
func (h Histogram) Count(d int) int {
	if d < 1 || d > 9 {
		return 0
	}
	return h[d-1]
}

// Total returns the sum of all nine counts.
func (h Histogram) Total() int {
	total := 0
	for _, c := range h {
		total += c
	}
	return total
}

// Map returns the histogram keyed by digit character.
func (h Histogram) Map() map[string]int {
	m := make(map[string]int, len(h))
	for i, c := range h {
		m[strconv.Itoa(i+1)] = c
	}
	return m
}

// MarshalJSON encodes the histogram as {"1": n, ..., "9": n}.
func (h Histogram) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.Map())
}

// MarshalYAML encodes the histogram as a digit-keyed mapping.
func (h Histogram) MarshalYAML() (interface{}, error) {
	return h.Map(), nil
}

// Expected holds the Benford-predicted counts for leading digits 1..9.
type Expected [9]float64

// Value returns the expected count for digit d, or 0 when d is outside 1..9.
func (e Expected) Value(d int) float64 {
	if d < 1 || d > 9 {
		return 0
	}
	return e[d-1]
}

// Total returns the sum of all nine expected counts.
func (e Expected) Total() float64 {
	total := 0.0
	for _, v := range e {
		total += v
	}
	return total
}

// Map returns the expected counts keyed by digit character.
func (e Expected) Map() map[string]float64 {
	m := make(map[string]float64, len(e))
	for i, v := range e {
		m[strconv.Itoa(i+1)] = v
	}
	return m
}

// MarshalJSON encodes the expected counts as {"1": x, ..., "9": x}.
func (e Expected) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Map())
}

// MarshalYAML encodes the expected counts as a digit-keyed mapping.
func (e Expected) MarshalYAML() (interface{}, error) {
	return e.Map(), nil
}

// Probability returns the Benford probability log10(1 + 1/d) of leading digit
// d. It returns 0 for digits outside 1..9.
func Probability(d int) float64 {
	if d < 1 || d > 9 {
		return 0
	}
	return math.Log10(1 + 1/float64(d))
}

// ExpectedFor scales the Benford probabilities to total observations.
func ExpectedFor(total int) Expected {
	var e Expected
	for _, d := range Digits {
		e[d-1] = float64(total) * Probability(d)
	}
	return e
}
