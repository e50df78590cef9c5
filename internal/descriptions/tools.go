package descriptions

import "sort"

// Tool names
const (
	ToolAnalyzeFile       = "benford_analyze_file"
	ToolAnalyzeUpload     = "benford_analyze_upload"
	ToolAnalyzeText       = "benford_analyze_text"
	ToolValidateFile      = "pdf_validate_file"
	ToolExtractTables     = "pdf_extract_tables"
	ToolSearchDirectory   = "pdf_search_directory"
	ToolBenfordServerInfo = "benford_server_info"
)

// Tool descriptions with practical examples and use cases

const (
	// Analysis Tools
	BenfordAnalyzeFileDescription = `Test the numbers in a PDF against Benford's Law and report whether their leading digits look natural.

**When to use:** Screening financial statements, invoices, expense reports or any numeric document for signs of fabricated or manipulated figures.

**Why it's useful:** Naturally occurring figures follow Benford's distribution (about 30% start with 1, under 5% with 9). A significant deviation is a cheap first signal that a document deserves a closer audit.

**Examples:**
• Audit screening: "Check quarterly-report.pdf against Benford's Law"
• Expense review: "Analyze expenses-2024.pdf and include any tables it contains"
• Machine processing: "Analyze ledger.pdf and return the result as json"

**Common workflows:**
1. Fraud screening: pdf_search_directory → benford_analyze_file → review documents that deviate
2. Evidence gathering: benford_analyze_file with include_tables → inspect the extracted tables

**Best practices:** Numbers starting with 0 are ignored. Small documents produce weak evidence; treat the verdict as a screening signal, not proof. Processing stops after the configured time limit.`

	BenfordAnalyzeUploadDescription = `Run the Benford's Law analysis on a PDF supplied as base64 content instead of a path.

**When to use:** The PDF is not in the server's document directory, for example a file attached to a conversation.

**Why it's useful:** The upload is written to a private temporary file, analysed, and removed again whatever the outcome.

**Examples:**
• "Analyze this uploaded invoice against Benford's Law"
• "Check the attached statement and show me the tables it contains"

**Best practices:** Send the raw PDF bytes base64-encoded. The same size and time limits as benford_analyze_file apply.`

	BenfordAnalyzeTextDescription = `Run the Benford's Law analysis on plain text instead of a PDF.

**When to use:** The figures are already available as text, such as a pasted table or a CSV export.

**Why it's useful:** Skips PDF parsing entirely, so it works for any source of numbers.

**Examples:**
• "Check these transaction amounts against Benford's Law: 1834.20, 291.00, 4410.75 ..."

**Best practices:** Every maximal run of ASCII or fullwidth digits counts as one number, so "1,234.56" yields the numbers 1, 234 and 56.`

	// Document Tools
	PDFValidateFileDescription = `Verify that a PDF is readable before analysing it.

**When to use:** Before analysing files of unknown origin, or to find out why an analysis was rejected.

**Why it's useful:** Reports the page count, PDF version and encryption status, and identifies corrupted or oversized files early.

**Examples:**
• "Is contract.pdf a valid PDF?"
• "Validate every statement before the monthly Benford screening"

**Best practices:** Paths are resolved inside the configured document directory.`

	PDFExtractTablesDescription = `Extract tabular data from a PDF with its row and column structure.

**When to use:** Inspecting the tables behind a Benford result, or pulling line items out of a statement.

**Why it's useful:** Detects tables from text positions, so it works on most text-based PDFs without any tagging.

**Examples:**
• "Show me the tables in balance-sheet.pdf"

**Best practices:** Scanned documents contain no text positions and yield no tables. A confidence below 0.5 means the layout was too irregular to trust.`

	PDFSearchDirectoryDescription = `List the PDFs available for analysis in the document directory.

**When to use:** Finding documents before analysing them.

**Why it's useful:** Matches file names by words, so "q3 statement" finds "Q3-Financial-Statements.pdf".

**Examples:**
• "Which PDFs can you analyse?"
• "Find the 2024 expense reports"

**Best practices:** Returned paths are relative to the document directory and can be passed straight to benford_analyze_file.`

	// Server Tools
	BenfordServerInfoDescription = `Get server status, limits, available tools and usage guidance.

**When to use:** Starting work with the server or checking its limits.

**Why it's useful:** Shows the document directory, the maximum file size, the processing time limit and the default report format.`
)

// ToolDescriptions maps tool names to their descriptions
var ToolDescriptions = map[string]string{
	ToolAnalyzeFile:       BenfordAnalyzeFileDescription,
	ToolAnalyzeUpload:     BenfordAnalyzeUploadDescription,
	ToolAnalyzeText:       BenfordAnalyzeTextDescription,
	ToolValidateFile:      PDFValidateFileDescription,
	ToolExtractTables:     PDFExtractTablesDescription,
	ToolSearchDirectory:   PDFSearchDirectoryDescription,
	ToolBenfordServerInfo: BenfordServerInfoDescription,
}

// GetToolDescription returns the description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns the names of all tools in sorted order
func GetAllToolNames() []string {
	names := make([]string, 0, len(ToolDescriptions))
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
