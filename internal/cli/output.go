package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
)

const (
	formatText = "text"
	formatJSON = "json"
)

type printer struct {
	format string
	w      io.Writer
}

// row is one label/value line of text output
type row struct {
	label string
	value interface{}
}

// print writes data as indented JSON, or rows as an aligned table
func (p *printer) print(data interface{}, rows []row) error {
	if p.format == formatJSON {
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}

	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	for _, r := range rows {
		fmt.Fprintf(tw, "%s:\t%v\n", r.label, r.value)
	}
	return tw.Flush()
}
