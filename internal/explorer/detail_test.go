package explorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  CellKind
	}{
		{"nil", nil, KindJSON},
		{"string", "hello", KindText},
		{"empty string", "", KindText},
		{"float slice", []float64{1, 2, 3}, KindVector},
		{"any numbers", []any{1.0, 2.0, 3.0}, KindVector},
		{"int slice", []int{1, 2, 3}, KindVector},
		{"mixed slice", []any{1.0, "x"}, KindJSON},
		{"object", map[string]any{"foo": "bar"}, KindJSON},
		{"number", 42.0, KindJSON},
		{"bool", true, KindJSON},
		{"nil float slice", []float64(nil), KindJSON},
		{"nil map", map[string]any(nil), KindJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.input).Kind)
		})
	}
}

func TestCellValue_CopyText(t *testing.T) {
	assert.Equal(t, "hello", Classify("hello").CopyText())
	assert.Equal(t, "1,2.5,-3", Classify([]float64{1, 2.5, -3}).CopyText())
	assert.Equal(t, "{\n  \"foo\": \"bar\"\n}", Classify(map[string]any{"foo": "bar"}).CopyText())
	assert.Equal(t, "", CellValue{}.CopyText())
	assert.Equal(t, "null", CellValue{}.PrettyJSON())
}

func TestCellValue_MissingValuesInspectAsNull(t *testing.T) {
	assert.Equal(t, "null", Classify(map[string]any(nil)).CopyText())
	assert.Equal(t, "null", Classify([]float64(nil)).PrettyJSON())

	empty := Classify("")
	assert.Equal(t, KindText, empty.Kind)
	assert.Equal(t, "", empty.CopyText())
	assert.Equal(t, `""`, empty.PrettyJSON())
}
