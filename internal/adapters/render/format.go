package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ntncli/ntn/internal/domain"
)

// Format selects one of the three output encodings.
type Format string

const (
	// FormatCompact is the tab-delimited, token-minimizing encoding.
	FormatCompact Format = "compact"
	// FormatJSON is 2-space indented JSON.
	FormatJSON Format = "json"
	// FormatPlain is the line-per-field indented encoding.
	FormatPlain Format = "plain"
)

// DefaultFormat applies when neither flag nor settings pick one.
const DefaultFormat = FormatCompact

func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case FormatCompact:
		return FormatCompact, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatPlain:
		return FormatPlain, nil
	case "":
		return DefaultFormat, nil
	default:
		return "", domain.NewInvalidInput("unknown output format %q (expected compact, json or plain)", name)
	}
}

// Encode renders v under the selected format. The value is first
// serialized so any marshalable value works; struct field order is
// preserved in all three encodings.
func Encode(w io.Writer, v any, format Format) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("serialize result: %w", err)
	}

	switch format {
	case FormatJSON:
		var out bytes.Buffer
		if err := json.Indent(&out, data, "", "  "); err != nil {
			return fmt.Errorf("indent result: %w", err)
		}
		out.WriteByte('\n')
		_, err = w.Write(out.Bytes())
		return err
	case FormatCompact, FormatPlain:
		node, err := Parse(data)
		if err != nil {
			return fmt.Errorf("parse result: %w", err)
		}
		var rendered string
		if format == FormatCompact {
			rendered = encodeCompact(node)
		} else {
			rendered = encodePlain(node)
		}
		_, err = io.WriteString(w, rendered)
		return err
	default:
		return domain.NewInvalidInput("unknown output format %q", string(format))
	}
}
