package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Kashikuroni/wb-abc/internal/model"
)

// JSONFormatter renders the whole report, metadata included, as indented
// JSON.
type JSONFormatter struct{}

// Write implements Formatter. An empty report encodes its items as [],
// never null, so consumers can iterate without a nil check.
func (f *JSONFormatter) Write(w io.Writer, r *Report) error {
	out := *r
	if out.Items == nil {
		out.Items = model.ABCItems{}
	}
	if out.Sources == nil {
		out.Sources = []string{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&out); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
