package mcp

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/a3tai/mcp-benford/internal/analysis"
	"github.com/a3tai/mcp-benford/internal/config"
	"github.com/a3tai/mcp-benford/internal/descriptions"
	"github.com/a3tai/mcp-benford/internal/pdf"
	"github.com/a3tai/mcp-benford/internal/report"
)

// shutdownTimeout bounds the graceful shutdown of the SSE server
const shutdownTimeout = 5 * time.Second

// Server represents the MCP server instance
type Server struct {
	config     *config.Config
	pdfService *pdf.Service
	analyzer   *analysis.Service
	mcpServer  *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, pdfService *pdf.Service, analyzer *analysis.Service) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if pdfService == nil {
		return nil, fmt.Errorf("pdfService cannot be nil")
	}
	if analyzer == nil {
		return nil, fmt.Errorf("analyzer cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
		server.WithRecovery(),
	)

	s := &Server{
		config:     cfg,
		pdfService: pdfService,
		analyzer:   analyzer,
		mcpServer:  mcpServer,
	}

	s.registerTools()

	return s, nil
}

func formatOption() mcp.ToolOption {
	return mcp.WithString("format",
		mcp.Description("Report format (default from server configuration)"),
		mcp.Enum(report.Formats()...),
	)
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	analyzeFileTool := mcp.NewTool(
		descriptions.ToolAnalyzeFile,
		mcp.WithDescription(descriptions.GetToolDescription(descriptions.ToolAnalyzeFile)),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the PDF file, absolute or relative to the document directory"),
		),
		formatOption(),
		mcp.WithBoolean("include_tables",
			mcp.Description("Extract tables after the digit analysis"),
		),
	)
	s.mcpServer.AddTool(analyzeFileTool, s.handleAnalyzeFile)

	analyzeUploadTool := mcp.NewTool(
		descriptions.ToolAnalyzeUpload,
		mcp.WithDescription(descriptions.GetToolDescription(descriptions.ToolAnalyzeUpload)),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Base64-encoded PDF bytes"),
		),
		mcp.WithString("filename",
			mcp.Description("Display name of the uploaded document"),
		),
		formatOption(),
		mcp.WithBoolean("include_tables",
			mcp.Description("Extract tables after the digit analysis"),
		),
	)
	s.mcpServer.AddTool(analyzeUploadTool, s.handleAnalyzeUpload)

	analyzeTextTool := mcp.NewTool(
		descriptions.ToolAnalyzeText,
		mcp.WithDescription(descriptions.GetToolDescription(descriptions.ToolAnalyzeText)),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Text containing the numbers to analyse"),
		),
		formatOption(),
	)
	s.mcpServer.AddTool(analyzeTextTool, s.handleAnalyzeText)

	validateFileTool := mcp.NewTool(
		descriptions.ToolValidateFile,
		mcp.WithDescription(descriptions.GetToolDescription(descriptions.ToolValidateFile)),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the PDF file, absolute or relative to the document directory"),
		),
	)
	s.mcpServer.AddTool(validateFileTool, s.handleValidateFile)

	extractTablesTool := mcp.NewTool(
		descriptions.ToolExtractTables,
		mcp.WithDescription(descriptions.GetToolDescription(descriptions.ToolExtractTables)),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the PDF file, absolute or relative to the document directory"),
		),
	)
	s.mcpServer.AddTool(extractTablesTool, s.handleExtractTables)

	searchDirectoryTool := mcp.NewTool(
		descriptions.ToolSearchDirectory,
		mcp.WithDescription(descriptions.GetToolDescription(descriptions.ToolSearchDirectory)),
		mcp.WithString("directory",
			mcp.Description("Sub-directory to search (uses the document directory if empty)"),
		),
		mcp.WithString("query",
			mcp.Description("Optional words to match against file names"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of files to return (0 for no limit)"),
		),
	)
	s.mcpServer.AddTool(searchDirectoryTool, s.handleSearchDirectory)

	serverInfoTool := mcp.NewTool(
		descriptions.ToolBenfordServerInfo,
		mcp.WithDescription(descriptions.GetToolDescription(descriptions.ToolBenfordServerInfo)),
	)
	s.mcpServer.AddTool(serverInfoTool, s.handleServerInfo)
}

// Handler functions
func (s *Server) handleAnalyzeFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	format, err := s.formatArgument(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.analyzer.Analyze(ctx, analysis.Request{
		Path:          path,
		IncludeTables: s.includeTablesArgument(request),
	})
	if err != nil {
		return mcp.NewToolResultError(errorMessage(err)), nil
	}

	return renderReport(result, format), nil
}

func (s *Server) handleAnalyzeUpload(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	encoded, err := request.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	content, err := decodeContent(encoded)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	format, err := s.formatArgument(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := request.GetArguments()
	filename, _ := args["filename"].(string)

	result, err := s.analyzer.Analyze(ctx, analysis.Request{
		Content:       content,
		Name:          filename,
		IncludeTables: s.includeTablesArgument(request),
	})
	if err != nil {
		return mcp.NewToolResultError(errorMessage(err)), nil
	}

	return renderReport(result, format), nil
}

func (s *Server) handleAnalyzeText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	format, err := s.formatArgument(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.analyzer.AnalyzeText(text)
	if err != nil {
		return mcp.NewToolResultError(errorMessage(err)), nil
	}

	return renderReport(result, format), nil
}

func (s *Server) handleValidateFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.pdfService.PDFValidateFile(pdf.PDFValidateFileRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatValidateFileResult(result)), nil
}

func (s *Server) handleExtractTables(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.analyzer.Timeout())
	defer cancel()

	result, err := s.pdfService.PDFExtractTables(ctx, pdf.PDFExtractTablesRequest{Path: path})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return mcp.NewToolResultError(
				(&analysis.Error{Kind: analysis.KindTimeout}).UserMessage()), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatTablesResult(result)), nil
}

func (s *Server) handleSearchDirectory(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	args := request.GetArguments()

	req := pdf.PDFSearchDirectoryRequest{}
	if dir, ok := args["directory"].(string); ok {
		req.Directory = dir
	}
	if q, ok := args["query"].(string); ok {
		req.Query = q
	}
	if limit, ok := args["limit"].(float64); ok && limit > 0 {
		req.Limit = int(limit)
	}

	result, err := s.pdfService.PDFSearchDirectory(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatSearchDirectoryResult(result)), nil
}

func (s *Server) handleServerInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	info := s.serverInfo()
	return mcp.NewToolResultText(formatServerInfo(info)), nil
}

// formatArgument reads the optional format argument, falling back to the
// configured default
func (s *Server) formatArgument(request mcp.CallToolRequest) (report.Format, error) {
	name := s.config.ReportFormat
	if f, ok := request.GetArguments()["format"].(string); ok && f != "" {
		name = f
	}
	return report.ParseFormat(name)
}

// includeTablesArgument reads the optional include_tables argument
func (s *Server) includeTablesArgument(request mcp.CallToolRequest) bool {
	if v, ok := request.GetArguments()["include_tables"].(bool); ok {
		return v
	}
	return s.config.ExtractTables
}

// decodeContent accepts padded and unpadded base64, optionally as a data URL
func decodeContent(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if i := strings.Index(encoded, ";base64,"); i >= 0 && strings.HasPrefix(encoded, "data:") {
		encoded = encoded[i+len(";base64,"):]
	}
	if encoded == "" {
		return nil, fmt.Errorf("content cannot be empty")
	}

	content, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		content, err = base64.RawStdEncoding.DecodeString(encoded)
	}
	if err != nil {
		return nil, fmt.Errorf("content is not valid base64: %w", err)
	}
	return content, nil
}

// renderReport turns a report into a tool result
func renderReport(result *analysis.Report, format report.Format) *mcp.CallToolResult {
	text, err := report.String(result, format)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to render report: %v", err))
	}
	return mcp.NewToolResultText(text)
}

// errorMessage returns the user-facing text of an analysis failure
func errorMessage(err error) string {
	var analysisErr *analysis.Error
	if errors.As(err, &analysisErr) {
		return analysisErr.UserMessage()
	}
	return fmt.Sprintf("An error occurred: %v", err)
}

// Formatting methods
func (s *Server) formatValidateFileResult(result *pdf.PDFValidateFileResult) string {
	if !result.Valid {
		return fmt.Sprintf("PDF validation failed for %s: %s", result.Path, result.Message)
	}

	text := fmt.Sprintf("PDF file %s is valid and readable\n", result.Path)
	if info := result.Info; info != nil {
		text += fmt.Sprintf("Pages: %d\n", info.Pages)
		text += fmt.Sprintf("Size: %d bytes\n", info.Size)
		if info.Version != "" {
			text += fmt.Sprintf("PDF Version: %s\n", info.Version)
		}
		text += fmt.Sprintf("Encrypted: %t\n", info.Encrypted)
	}
	return text
}

func (s *Server) formatTablesResult(result *pdf.Tables) string {
	if !result.Present() {
		return fmt.Sprintf("No tables found in %s", result.Path)
	}

	text := fmt.Sprintf("Found %d table(s) in %s\n", len(result.Items), result.Path)
	for i, table := range result.Items {
		text += fmt.Sprintf("\nTable %d (page %d, %d columns, confidence %.2f):\n",
			i+1, table.Page, table.Columns, table.Confidence)
		for _, row := range table.Rows {
			text += "| " + strings.Join(row, " | ") + " |\n"
		}
	}
	return text
}

func (s *Server) formatSearchDirectoryResult(result *pdf.PDFSearchDirectoryResult) string {
	if result.TotalCount == 0 {
		text := fmt.Sprintf("No PDF files found in directory: %s", result.Directory)
		if result.SearchQuery != "" {
			text += fmt.Sprintf(" (searched for: %s)", result.SearchQuery)
		}
		return text
	}

	text := fmt.Sprintf("Found %d PDF file(s) in directory: %s\n", result.TotalCount, result.Directory)
	if result.SearchQuery != "" {
		text += fmt.Sprintf("Search query: %s\n", result.SearchQuery)
	}
	text += "\nFiles:\n"

	for i, file := range result.Files {
		text += fmt.Sprintf("%d. %s\n", i+1, file.Path)
		text += fmt.Sprintf("   Size: %d bytes\n", file.Size)
		text += fmt.Sprintf("   Modified: %s\n", file.ModifiedTime)
	}
	if result.Truncated {
		text += "\nMore files match; raise the limit to see them.\n"
	}

	return text
}

// Run starts the MCP server in the configured mode
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	}
	return s.runStdioMode(ctx)
}

// runStdioMode serves MCP over stdin and stdout until ctx is cancelled
func (s *Server) runStdioMode(ctx context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting Benford MCP server in stdio mode")
		log.Printf("PDF directory: %s", s.config.PDFDirectory)
	}

	stdioServer := server.NewStdioServer(s.mcpServer)
	stdioServer.SetErrorLogger(log.New(os.Stderr, "", log.LstdFlags))

	if err := stdioServer.Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode serves MCP over HTTP with server-sent events until ctx is
// cancelled, then shuts the listener down gracefully
func (s *Server) runServerMode(ctx context.Context) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(s.config.BaseURL()))

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting Benford MCP server in SSE mode on %s", s.config.Address())
		errCh <- sseServer.Start(s.config.Address())
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve SSE: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := sseServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down SSE server: %w", err)
		}
		return nil
	}
}
