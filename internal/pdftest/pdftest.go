// Package pdftest builds small, well-formed PDF documents for tests.
//
// The generated files carry a correct cross-reference table so both
// ledongthuc/pdf and pdfcpu parse them without repair.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	leftMargin = 72.0
	topLine    = 720.0
	lineHeight = 14.0
)

// Text is a string drawn at a fixed position on a page.
type Text struct {
	X, Y float64
	S    string
}

// Page is the text content of a single page.
type Page struct {
	Texts []Text
}

// Lines lays out each line left-aligned, one below the other.
func Lines(lines ...string) Page {
	p := Page{}
	for i, line := range lines {
		p.Texts = append(p.Texts, Text{X: leftMargin, Y: topLine - float64(i)*lineHeight, S: line})
	}
	return p
}

// Grid lays out rows of cells, each cell starting colWidth points after the previous one.
func Grid(colWidth float64, rows ...[]string) Page {
	p := Page{}
	for r, row := range rows {
		for c, cell := range row {
			p.Texts = append(p.Texts, Text{
				X: leftMargin + float64(c)*colWidth,
				Y: topLine - float64(r)*lineHeight,
				S: cell,
			})
		}
	}
	return p
}

// Build returns the bytes of a PDF with one page per argument.
func Build(pages ...Page) []byte {
	var objects []string

	// 1: catalog, 2: page tree, 3: font. Pages and content streams follow in pairs.
	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d /MediaBox [0 0 612 792] >>",
			strings.Join(kids, " "), len(pages)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	)

	for i, page := range pages {
		content := page.stream()
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}

// Write builds a PDF and stores it as dir/name, returning the full path.
func Write(t testing.TB, dir, name string, pages ...Page) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, Build(pages...), 0o600); err != nil {
		t.Fatalf("failed to write test PDF %s: %v", path, err)
	}
	return path
}

func (p Page) stream() string {
	var b strings.Builder
	for _, text := range p.Texts {
		fmt.Fprintf(&b, "BT /F1 12 Tf 1 0 0 1 %.2f %.2f Tm (%s) Tj ET\n", text.X, text.Y, escape(text.S))
	}
	return b.String()
}

func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}
