package benford

import (
	"errors"
	"fmt"
	"math"
)

// Threshold is the two-tailed critical z value at the 5% significance level.
const Threshold = 1.96

var (
	// ErrNoTokens is returned when Evaluate is called with an empty sequence.
	ErrNoTokens = errors.New("no digit tokens to evaluate")

	// ErrMalformedToken is returned for a token that does not start with a digit.
	ErrMalformedToken = errors.New("malformed digit token")
)

// Verdict classifies how well a token sequence follows Benford's Law.
type Verdict int

const (
	VerdictInsufficientData Verdict = iota
	VerdictConforms
	VerdictDeviates
)

// String returns the wire name of the verdict
func (v Verdict) String() string {
	switch v {
	case VerdictConforms:
		return "conforms"
	case VerdictDeviates:
		return "deviates"
	default:
		return "insufficient-data"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// MarshalYAML encodes the verdict by name.
func (v Verdict) MarshalYAML() (interface{}, error) {
	return v.String(), nil
}

// DigitRow is one leading digit's line in a result, used for presentation.
type DigitRow struct {
	Digit              int     `json:"digit" yaml:"digit"`
	Observed           int     `json:"observed" yaml:"observed"`
	Expected           float64 `json:"expected" yaml:"expected"`
	ObservedProportion float64 `json:"observed_proportion" yaml:"observed_proportion"`
	BenfordProportion  float64 `json:"benford_proportion" yaml:"benford_proportion"`
	Deviation          float64 `json:"deviation" yaml:"deviation"`
}

// Result is the outcome of evaluating one token sequence.
type Result struct {
	Observed      Histogram `json:"observed" yaml:"observed"`
	Expected      Expected  `json:"expected" yaml:"expected"`
	Tokens        int       `json:"tokens" yaml:"tokens"`
	LeadingZeros  int       `json:"leading_zeros" yaml:"leading_zeros"`
	Total         int       `json:"total" yaml:"total"`
	ExpectedTotal float64   `json:"expected_total" yaml:"expected_total"`
	ZScore        float64   `json:"z_score" yaml:"z_score"`
	ZScoreDefined bool      `json:"z_score_defined" yaml:"z_score_defined"`
	Threshold     float64   `json:"threshold" yaml:"threshold"`
	Verdict       Verdict   `json:"verdict" yaml:"verdict"`
}

// Evaluate tallies the leading digits of tokens and tests the tally against
// Benford's Law. Tokens starting with '0' are discarded. When nothing survives
// the filter the verdict is VerdictInsufficientData and the z-score is left
// undefined.
func Evaluate(tokens []string) (*Result, error) {
	if len(tokens) == 0 {
		return nil, ErrNoTokens
	}

	result := &Result{
		Tokens:    len(tokens),
		Threshold: Threshold,
	}

	for i, token := range tokens {
		if token == "" || token[0] < '0' || token[0] > '9' {
			return nil, fmt.Errorf("%w: token %d %q", ErrMalformedToken, i, token)
		}
		if token[0] == '0' {
			result.LeadingZeros++
			continue
		}
		result.Observed[token[0]-'1']++
	}

	result.Total = result.Observed.Total()
	result.Expected = ExpectedFor(result.Total)
	result.ExpectedTotal = result.Expected.Total()

	if result.Total == 0 || result.ExpectedTotal <= 0 {
		result.Verdict = VerdictInsufficientData
		return result, nil
	}

	result.ZScore = (float64(result.Total) - result.ExpectedTotal) / math.Sqrt(result.ExpectedTotal)
	result.ZScoreDefined = true

	if math.Abs(result.ZScore) >= Threshold {
		result.Verdict = VerdictDeviates
	} else {
		result.Verdict = VerdictConforms
	}

	return result, nil
}

// Rows returns one DigitRow per leading digit, in digit order.
func (r *Result) Rows() []DigitRow {
	rows := make([]DigitRow, 0, len(Digits))
	for _, d := range Digits {
		row := DigitRow{
			Digit:             d,
			Observed:          r.Observed.Count(d),
			Expected:          r.Expected.Value(d),
			BenfordProportion: Probability(d),
		}
		if r.Total > 0 {
			row.ObservedProportion = float64(row.Observed) / float64(r.Total)
		}
		row.Deviation = float64(row.Observed) - row.Expected
		rows = append(rows, row)
	}
	return rows
}

// Deviates reports whether the verdict flags the data as anomalous.
func (r *Result) Deviates() bool {
	return r.Verdict == VerdictDeviates
}
