package mcp

import (
	"fmt"
	"strings"
	"time"

	"github.com/a3tai/mcp-benford/internal/benford"
	"github.com/a3tai/mcp-benford/internal/descriptions"
	"github.com/a3tai/mcp-benford/internal/pdf"
)

// serverInfoFileLimit caps the directory listing in the server info
const serverInfoFileLimit = 10

// ToolInfo summarises one registered tool
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ServerInfo is the payload of the benford_server_info tool
type ServerInfo struct {
	ServerName        string         `json:"server_name"`
	Version           string         `json:"version"`
	DefaultDirectory  string         `json:"default_directory"`
	MaxFileSize       int64          `json:"max_file_size"`
	Timeout           time.Duration  `json:"timeout"`
	ReportFormat      string         `json:"report_format"`
	ExtractTables     bool           `json:"extract_tables"`
	Threshold         float64        `json:"threshold"`
	AvailableTools    []ToolInfo     `json:"available_tools"`
	DirectoryContents []pdf.FileInfo `json:"directory_contents"`
	MoreFiles         bool           `json:"more_files"`
}

func (s *Server) serverInfo() *ServerInfo {
	info := &ServerInfo{
		ServerName:       s.config.ServerName,
		Version:          s.config.Version,
		DefaultDirectory: s.pdfService.GetConfiguredDirectory(),
		MaxFileSize:      s.pdfService.GetMaxFileSize(),
		Timeout:          s.analyzer.Timeout(),
		ReportFormat:     s.config.ReportFormat,
		ExtractTables:    s.config.ExtractTables,
		Threshold:        benford.Threshold,
	}

	for _, name := range descriptions.GetAllToolNames() {
		desc := descriptions.GetToolDescription(name)
		if i := strings.Index(desc, "\n"); i >= 0 {
			desc = desc[:i]
		}
		info.AvailableTools = append(info.AvailableTools, ToolInfo{Name: name, Description: desc})
	}

	// A missing or unreadable directory leaves the listing empty
	if result, err := s.pdfService.PDFSearchDirectory(pdf.PDFSearchDirectoryRequest{
		Limit: serverInfoFileLimit,
	}); err == nil {
		info.DirectoryContents = result.Files
		info.MoreFiles = result.Truncated
	}

	return info
}

func formatServerInfo(info *ServerInfo) string {
	text := fmt.Sprintf("📋 %s v%s - Server Information\n", info.ServerName, info.Version)
	text += fmt.Sprintf("📁 Default Directory: %s\n", info.DefaultDirectory)
	text += fmt.Sprintf("📏 Max File Size: %d MB\n", info.MaxFileSize/(1024*1024))
	text += fmt.Sprintf("⏱️  Processing Time Limit: %s\n", info.Timeout)
	text += fmt.Sprintf("📝 Default Report Format: %s (tables: %t)\n\n", info.ReportFormat, info.ExtractTables)

	if len(info.DirectoryContents) > 0 {
		text += fmt.Sprintf("📂 Directory Contents (%d PDF files shown):\n", len(info.DirectoryContents))
		for i, file := range info.DirectoryContents {
			text += fmt.Sprintf("   %d. %s (%d bytes)\n", i+1, file.Path, file.Size)
		}
		if info.MoreFiles {
			text += "   ... use pdf_search_directory to see the rest\n"
		}
		text += "\n"
	} else {
		text += "📂 Directory Contents: No PDF files found in default directory\n\n"
	}

	text += "🛠️  Available Tools:\n"
	for _, tool := range info.AvailableTools {
		text += fmt.Sprintf("• %s: %s\n", tool.Name, tool.Description)
	}

	text += "\n" + usageGuidance(info)
	return text
}

func usageGuidance(info *ServerInfo) string {
	return fmt.Sprintf(`Benford MCP Server Usage Guide:

1. FIND DOCUMENTS:
   - Use 'pdf_search_directory' to list the PDFs that can be analysed
   - Use 'pdf_validate_file' to check a file before analysing it

2. ANALYSE:
   - Use 'benford_analyze_file' for PDFs in the document directory
   - Use 'benford_analyze_upload' for PDFs sent as base64 content
   - Use 'benford_analyze_text' for figures that are already text

3. READ THE VERDICT:
   - "conforms": the leading digits follow Benford's Law
   - "deviates": |z| >= %.2f, the figures deserve a closer look
   - "insufficient-data": every number started with 0

IMPORTANT NOTES:
- Numbers starting with 0 are ignored
- Files up to %dMB are accepted
- Processing stops after %s`,
		info.Threshold, info.MaxFileSize/(1024*1024), info.Timeout)
}
