// Package export writes snapshots of the registry document in other formats.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gurisko/envswitch/internal/registry"
	"gopkg.in/yaml.v3"
)

// Format names an export encoding
type Format string

const (
	FormatYAML   Format = "yaml"
	FormatJSON   Format = "json"
	FormatSQLite Format = "sqlite"
)

// ParseFormat accepts yaml, yml, json, sqlite or db.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "sqlite", "sqlite3", "db":
		return FormatSQLite, nil
	}
	return "", fmt.Errorf("unknown export format %q (want yaml, json or sqlite)", s)
}

// Streamable reports whether the format can be written to an io.Writer.
// SQLite needs a file path.
func (f Format) Streamable() bool {
	return f == FormatYAML || f == FormatJSON
}

// Write encodes doc to w as YAML or JSON
func Write(w io.Writer, doc *registry.Document, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}
	return fmt.Errorf("format %s cannot be streamed", format)
}
