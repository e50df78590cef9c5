// Package benford tests numeric tokens against Benford's Law.
//
// The package has two pure stages: ExtractDigits turns text into digit runs and
// Evaluate turns those runs into observed/expected leading-digit histograms and
// an aggregate z-score verdict.
package benford

import (
	"regexp"

	"golang.org/x/text/width"
)

var digitRun = regexp.MustCompile(`[0-9]+`)

// ExtractDigits returns the maximal runs of decimal digits in text, in order of
// appearance. Fullwidth digits are folded to ASCII first, so every returned
// token consists of '0'..'9' only. Text without digits yields an empty, non-nil
// slice.
func ExtractDigits(text string) []string {
	if text == "" {
		return []string{}
	}

	tokens := digitRun.FindAllString(width.Narrow.String(text), -1)
	if tokens == nil {
		return []string{}
	}
	return tokens
}
