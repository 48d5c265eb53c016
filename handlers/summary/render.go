package summary

import (
	"bufio"
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Render writes the report: for every asset holding messages a header,
// its errors then its warnings, and a blank line. The unknown location
// comes last.
func (s *Summarizer) Render(w io.Writer) error {
	return s.render(w, "ERROR  ", "WARNING")
}

// RenderColor writes the same report with highlighted tags, for terminals.
func (s *Summarizer) RenderColor(w io.Writer) error {
	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow)
	red.EnableColor()
	yellow.EnableColor()
	return s.render(w, red.Sprint("ERROR")+"  ", yellow.Sprint("WARNING"))
}

func (s *Summarizer) render(w io.Writer, errTag, warnTag string) error {
	bw := bufio.NewWriter(w)
	for _, asset := range s.Assets() {
		if asset.Empty() {
			continue
		}
		fmt.Fprintf(bw, "%s :\n", asset.name)
		for _, msg := range asset.errors.items {
			fmt.Fprintf(bw, " * %s : %s\n", errTag, msg)
		}
		for _, msg := range asset.warnings.items {
			fmt.Fprintf(bw, " * %s : %s\n", warnTag, msg)
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}
