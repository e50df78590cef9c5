// Package analysis runs one document through text extraction, digit
// extraction, Benford evaluation and optional table extraction under a
// wall-clock timeout.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/a3tai/mcp-benford/internal/benford"
	"github.com/a3tai/mcp-benford/internal/pdf"
)

// DefaultTimeout bounds one analysis pass when no timeout is configured
const DefaultTimeout = 60 * time.Second

// Documents is the PDF collaborator the analysis depends on
type Documents interface {
	ResolvePath(path string) (string, error)
	Spool(content []byte) (string, func(), error)
	ValidateDocument(path string, checkExtension bool) error
	Inspect(path string) (*pdf.DocumentInfo, error)
	ExtractText(ctx context.Context, path string) (*pdf.TextResult, error)
	ExtractTables(ctx context.Context, path string) (*pdf.Tables, error)
}

// Options configures a Service
type Options struct {
	Timeout time.Duration
	Debug   bool
}

// Service sequences the stages of an analysis pass
type Service struct {
	docs    Documents
	timeout time.Duration
	debug   bool
	now     func() time.Time
}

// NewService creates an analysis service on top of a document collaborator
func NewService(docs Documents, opts Options) (*Service, error) {
	if docs == nil {
		return nil, fmt.Errorf("documents collaborator cannot be nil")
	}
	if opts.Timeout < 0 {
		return nil, fmt.Errorf("timeout cannot be negative")
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &Service{
		docs:    docs,
		timeout: timeout,
		debug:   opts.Debug,
		now:     time.Now,
	}, nil
}

// Timeout returns the per-document processing limit
func (s *Service) Timeout() time.Duration {
	return s.timeout
}

// Analyze processes one document. A document without digits is reported
// through Report.Status, not an error. Timeouts and extraction failures are
// returned as *Error. Uploaded content is removed before Analyze returns,
// whatever the outcome.
func (s *Service) Analyze(ctx context.Context, req Request) (*Report, error) {
	start := s.now()

	path, source, cleanup, err := s.resolve(req)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	type outcome struct {
		report *Report
		err    error
	}
	done := make(chan outcome, 1)

	// The pass runs on its own goroutine so a stuck parser cannot hold the
	// caller past the deadline. On timeout the goroutine is abandoned.
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				done <- outcome{err: newError(KindExtraction, "analyze", source, fmt.Errorf("panic: %v", rec))}
			}
		}()
		report, err := s.process(ctx, path, source, req.Content == nil, req.IncludeTables)
		done <- outcome{report: report, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			return nil, s.classify(ctx, out.err, source)
		}
		out.report.AnalyzedAt = start
		out.report.Elapsed = s.now().Sub(start)
		if s.debug {
			log.Printf("Analyzed %s in %s: status=%s verdict=%s",
				source, out.report.Elapsed, out.report.Status, out.report.Verdict())
		}
		return out.report, nil
	case <-ctx.Done():
		return nil, s.classify(ctx, ctx.Err(), source)
	}
}

// AnalyzeText runs digit extraction and evaluation on raw text
func (s *Service) AnalyzeText(text string) (*Report, error) {
	start := s.now()
	report := &Report{Source: "text"}
	if err := evaluate(report, text); err != nil {
		return nil, err
	}
	report.AnalyzedAt = start
	report.Elapsed = s.now().Sub(start)
	return report, nil
}

// resolve turns a request into a readable path and its cleanup
func (s *Service) resolve(req Request) (string, string, func(), error) {
	switch {
	case req.Path != "" && req.Content != nil:
		return "", "", nil, newError(KindInvalidInput, "resolve", "",
			errors.New("provide either a path or uploaded content, not both"))
	case req.Content != nil:
		path, cleanup, err := s.docs.Spool(req.Content)
		if err != nil {
			return "", "", nil, newError(KindInvalidInput, "spool", req.Name, err)
		}
		source := req.Name
		if source == "" {
			source = pdf.UploadFileName
		}
		return path, source, cleanup, nil
	case req.Path != "":
		path, err := s.docs.ResolvePath(req.Path)
		if err != nil {
			return "", "", nil, newError(KindInvalidInput, "resolve", req.Path, err)
		}
		return path, path, func() {}, nil
	default:
		return "", "", nil, newError(KindInvalidInput, "resolve", "",
			errors.New("no document provided"))
	}
}

// process is the linear pass: validate, inspect, text, digits, verdict, tables
func (s *Service) process(
	ctx context.Context, path, source string, checkExtension, includeTables bool,
) (*Report, error) {
	if err := s.docs.ValidateDocument(path, checkExtension); err != nil {
		return nil, newError(KindInvalidInput, "validate", source, err)
	}

	report := &Report{Source: source}

	// Inspection is informational; pdfcpu rejects some files ledongthuc reads
	if info, err := s.docs.Inspect(path); err == nil {
		info.Path = source
		report.Document = info
	} else if s.debug {
		log.Printf("Inspect %s: %v", source, err)
	}

	text, err := s.docs.ExtractText(ctx, path)
	if err != nil {
		return nil, newError(KindExtraction, "extract text", source, err)
	}
	report.Pages = text.Pages
	report.PagesWithText = text.PagesWithText
	report.Truncated = text.Truncated

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := evaluate(report, text.Text); err != nil {
		return nil, err
	}
	if report.Status == StatusNoDigits || !includeTables {
		return report, nil
	}

	report.Tables = &TableSection{}
	tables, err := s.docs.ExtractTables(ctx, path)
	switch {
	case ctx.Err() != nil:
		return nil, ctx.Err()
	case err != nil:
		report.Tables.Error = fmt.Sprintf("Error occurred during table extraction: %v", err)
	default:
		report.Tables.Tables = tables
	}

	return report, nil
}

// evaluate fills the digit and verdict fields of report from text
func evaluate(report *Report, text string) error {
	tokens := benford.ExtractDigits(text)
	if len(tokens) == 0 {
		report.Status = StatusNoDigits
		report.Warning = NoDigitsWarning
		return nil
	}

	result, err := benford.Evaluate(tokens)
	if err != nil {
		return newError(KindUnknown, "evaluate", report.Source, err)
	}

	report.Status = StatusCompleted
	report.Result = result
	report.Digits = result.Rows()
	report.Conclusion = conclusionFor(result.Verdict)
	return nil
}

// classify maps context expiry to a timeout error and keeps other errors
func (s *Service) classify(ctx context.Context, err error, source string) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return newError(KindTimeout, "analyze", source,
			fmt.Errorf("%w after %s", ErrTimeout, s.timeout))
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return newError(KindUnknown, "analyze", source, err)
}
