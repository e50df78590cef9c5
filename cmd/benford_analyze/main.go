// Package main provides the benford_analyze command.
//
// benford_analyze tests the numbers printed in a PDF against Benford's Law
// and writes the report to stdout or a file.
//
// Usage:
//
//	benford_analyze statement.pdf
//	benford_analyze --format json --output report.json statement.pdf
//
// See --help for all available options.
package main

func main() {
	Execute()
}
