package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/faanross/stegokit/internal/config"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

// render writes v as JSON or YAML when the configured report format asks for
// it, and calls text otherwise.
func render(w io.Writer, v interface{}, text func()) error {
	switch config.CurrentConfig().Report.Format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return oops.Wrapf(err, "JSON encoding failed")
		}
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return oops.Wrapf(err, "YAML encoding failed")
		}
		if err := enc.Close(); err != nil {
			return oops.Wrapf(err, "YAML encoding failed")
		}
	default:
		text()
	}
	return nil
}

func percent(ratio float64) string {
	return fmt.Sprintf("%.1f%%", ratio*100)
}
