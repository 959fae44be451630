// Command extract collects the mathfig blocks of a markdown lesson into a
// JSON array of tool requests.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"mathfig/builders"
	"mathfig/diagram"
	"mathfig/importer"
	"mathfig/markdown"
)

// entry is one extracted request with the block it came from.
type entry struct {
	Line int `json:"line"`
	diagram.ToolRequest
}

func main() {
	var (
		inputFile = flag.String("i", "", "Markdown file path")
		output    = flag.String("o", "", "Output file path (default: stdout)")
		check     = flag.Bool("check", false, "Render every request and fail on the first error")
		list      = flag.Bool("list", false, "Only list the blocks found")
	)

	flag.Parse()

	if *inputFile == "" {
		fmt.Fprintf(os.Stderr, "Error: input file required (-i)\n")
		flag.Usage()
		os.Exit(1)
	}

	content, err := os.ReadFile(*inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input file: %v\n", err)
		os.Exit(1)
	}

	blocks := markdown.NewScanner(string(content)).FindFigureBlocks()
	if *list {
		for i, b := range blocks {
			fmt.Println(markdown.FormatBlockInfo(b, i))
		}
		return
	}

	entries, err := extract(blocks, *check)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	jsonData, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error converting to JSON: %v\n", err)
		os.Exit(1)
	}

	if *output != "" {
		if err := os.WriteFile(*output, jsonData, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Extracted %d requests to %s\n", len(entries), *output)
	} else {
		writeLine(os.Stdout, jsonData)
	}
}

// extract decodes every block. With check set each request is also rendered
// so that bad parameters are reported with their line.
func extract(blocks []markdown.FigureBlock, check bool) ([]entry, error) {
	registry := importer.NewImporterRegistry()
	engine := builders.NewEngine()
	entries := []entry{}
	for _, b := range blocks {
		reqs, err := registry.Import(b.Content)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", b.StartLine+1, err)
		}
		for _, req := range reqs {
			if check {
				if _, err := engine.Render(req); err != nil {
					return nil, fmt.Errorf("line %d: %s: %w", b.StartLine+1, req.ToolName, err)
				}
			}
			entries = append(entries, entry{Line: b.StartLine + 1, ToolRequest: req})
		}
	}
	return entries, nil
}

func writeLine(w io.Writer, data []byte) {
	w.Write(data)
	fmt.Fprintln(w)
}
