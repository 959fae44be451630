// Package markdown finds figure requests embedded in lesson markdown as
// fenced code blocks tagged "mathfig".
package markdown

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Language is the fence info string that marks a figure block.
const Language = "mathfig"

// FigureBlock represents a figure code block found in markdown
type FigureBlock struct {
	Content     string // The request document, indentation removed
	StartLine   int    // Line number where block starts (0-based)
	EndLine     int    // Line number where block ends
	Indent      string // Indentation before the code fence
	ContentHash string // SHA256 hash of the content
}

// ShortHash returns the first eight hex digits of the content hash.
func (b FigureBlock) ShortHash() string {
	if len(b.ContentHash) < 8 {
		return b.ContentHash
	}
	return b.ContentHash[:8]
}

// Scanner finds and extracts figure blocks from markdown content
type Scanner struct {
	lines []string
}

// NewScanner creates a new markdown scanner
func NewScanner(content string) *Scanner {
	return &Scanner{lines: strings.Split(content, "\n")}
}

// FindFigureBlocks returns every closed mathfig block in document order.
// An unterminated block at the end of the document is ignored.
func (s *Scanner) FindFigureBlocks() []FigureBlock {
	var blocks []FigureBlock
	var current *FigureBlock
	var body []string

	for i, line := range s.lines {
		trimmed := strings.TrimLeft(line, " \t")
		if current == nil {
			if !strings.HasPrefix(trimmed, "```") {
				continue
			}
			info := strings.Fields(strings.TrimPrefix(trimmed, "```"))
			if len(info) > 0 && strings.EqualFold(info[0], Language) {
				current = &FigureBlock{StartLine: i, Indent: line[:len(line)-len(trimmed)]}
				body = body[:0]
			}
			continue
		}
		if strings.HasPrefix(trimmed, "```") {
			current.EndLine = i
			current.Content = strings.Join(body, "\n")
			hash := sha256.Sum256([]byte(current.Content))
			current.ContentHash = hex.EncodeToString(hash[:])
			blocks = append(blocks, *current)
			current = nil
			continue
		}
		body = append(body, strings.TrimPrefix(line, current.Indent))
	}
	return blocks
}

// FormatBlockInfo returns a human-readable description of a block
func FormatBlockInfo(block FigureBlock, index int) string {
	// First meaningful line as a preview.
	preview := ""
	for _, line := range strings.Split(block.Content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			preview = trimmed
			if len(preview) > 50 {
				preview = preview[:47] + "..."
			}
			break
		}
	}
	return fmt.Sprintf("%d. %s (line %d): %s", index+1, Language, block.StartLine+1, preview)
}
