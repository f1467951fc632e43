package output

import (
	"encoding/json"
	"io"

	"github.com/phyten/what2do/internal/engine"
	"github.com/phyten/what2do/internal/model"
)

// WriteNDJSON streams items as newline-delimited JSON objects.
func WriteNDJSON(w io.Writer, items []model.Finding) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, it := range items {
		if err := enc.Encode(it); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON writes the whole result as one indented document. An empty scan
// still yields "findings": [].
func WriteJSON(w io.Writer, res *engine.Result) error {
	out := *res
	if out.Findings == nil {
		out.Findings = []model.Finding{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
