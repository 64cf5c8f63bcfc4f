package explorer

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// CellKind discriminates CellValue.
type CellKind int

// KindNone is the zero value and only describes an empty selection.
const (
	KindNone CellKind = iota
	KindText
	KindVector
	KindJSON
)

func (k CellKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindText:
		return "text"
	case KindVector:
		return "vector"
	case KindJSON:
		return "json"
	default:
		return fmt.Sprintf("CellKind(%d)", int(k))
	}
}

// DetailPlaceholder is shown when no cell is selected.
const DetailPlaceholder = "Click on a cell to view details"

// CellValue is a cell's raw value tagged with how it should be inspected.
// Only the field matching Kind is set.
type CellValue struct {
	Kind   CellKind
	Text   string
	Vector []float64
	JSON   any
}

// Classify tags v. Strings are text, the empty one included. Arrays whose
// elements are all numbers are vectors. Everything else is JSON, so a missing
// embedding or metadata inspects as null.
func Classify(v any) CellValue {
	switch t := v.(type) {
	case nil:
		return CellValue{Kind: KindJSON}
	case string:
		return CellValue{Kind: KindText, Text: t}
	case []float64:
		if t == nil {
			return CellValue{Kind: KindJSON}
		}
		return CellValue{Kind: KindVector, Vector: t}
	case []float32:
		out := make([]float64, len(t))
		for i, f := range t {
			out[i] = float64(f)
		}
		return CellValue{Kind: KindVector, Vector: out}
	case []int:
		out := make([]float64, len(t))
		for i, n := range t {
			out[i] = float64(n)
		}
		return CellValue{Kind: KindVector, Vector: out}
	case []any:
		if vec, ok := numericSlice(t); ok {
			return CellValue{Kind: KindVector, Vector: vec}
		}
		return CellValue{Kind: KindJSON, JSON: t}
	case map[string]any:
		if t == nil {
			return CellValue{Kind: KindJSON}
		}
		return CellValue{Kind: KindJSON, JSON: t}
	default:
		return CellValue{Kind: KindJSON, JSON: t}
	}
}

func numericSlice(items []any) ([]float64, bool) {
	out := make([]float64, len(items))
	for i, item := range items {
		switch n := item.(type) {
		case float64:
			out[i] = n
		case float32:
			out[i] = float64(n)
		case int:
			out[i] = float64(n)
		case int64:
			out[i] = float64(n)
		case json.Number:
			f, err := n.Float64()
			if err != nil {
				return nil, false
			}
			out[i] = f
		default:
			return nil, false
		}
	}
	return out, true
}

// CopyText is what the copy action puts on the clipboard.
func (c CellValue) CopyText() string {
	switch c.Kind {
	case KindText:
		return c.Text
	case KindVector:
		return JoinVector(c.Vector, ",")
	case KindJSON:
		return c.PrettyJSON()
	default:
		return ""
	}
}

// PrettyJSON renders the value indented by two spaces.
func (c CellValue) PrettyJSON() string {
	var v any
	switch c.Kind {
	case KindText:
		v = c.Text
	case KindVector:
		v = c.Vector
	case KindJSON:
		v = c.JSON
	default:
		return "null"
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

// JoinVector formats each component in its shortest exact form.
func JoinVector(vec []float64, sep string) string {
	parts := make([]string, len(vec))
	for i, f := range vec {
		parts[i] = strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strings.Join(parts, sep)
}
