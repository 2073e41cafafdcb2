// Package inspector draws live component values for a selected body,
// driven by `inspect` struct tags.
package inspector

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Widget selects how a field is drawn.
type Widget int

const (
	WidgetLabel Widget = iota
	WidgetVec
	WidgetBool
	WidgetSkip
)

// Field is one exported component field ready to draw.
type Field struct {
	Name   string
	Value  any
	Widget Widget
	Format string // printf verb for numbers; empty means the default
}

// parseTag reads `inspect:"widget[,fmt:verb]"`. Without a known widget
// name the widget follows the field's type.
func parseTag(tag string, v reflect.Value) (Widget, string) {
	name, rest, _ := strings.Cut(tag, ",")

	var format string
	for _, opt := range strings.Split(rest, ",") {
		if k, val, ok := strings.Cut(strings.TrimSpace(opt), ":"); ok && k == "fmt" {
			format = val
		}
	}

	switch strings.TrimSpace(name) {
	case "skip":
		return WidgetSkip, format
	case "vec":
		return WidgetVec, format
	case "bool":
		return WidgetBool, format
	case "label":
		return WidgetLabel, format
	}

	switch {
	case v.Kind() == reflect.Bool:
		return WidgetBool, format
	case v.Type() == reflect.TypeOf(mgl64.Vec3{}):
		return WidgetVec, format
	default:
		return WidgetLabel, format
	}
}

// ExtractFields lists the exported, non-skipped fields of a component
// struct or pointer to one.
func ExtractFields(component any) []Field {
	v := reflect.Indirect(reflect.ValueOf(component))
	if v.Kind() != reflect.Struct {
		return nil
	}

	t := v.Type()
	var fields []Field
	for i := range v.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		fv := v.Field(i)
		widget, format := parseTag(sf.Tag.Get("inspect"), fv)
		if widget == WidgetSkip {
			continue
		}
		fields = append(fields, Field{Name: sf.Name, Value: fv.Interface(), Widget: widget, Format: format})
	}
	return fields
}

// FormatValue renders value with format, two decimals for floats by default.
func FormatValue(value any, format string) string {
	if v, ok := value.(mgl64.Vec3); ok {
		if format == "" {
			format = "%.2f"
		}
		return fmt.Sprintf("("+format+", "+format+", "+format+")", v[0], v[1], v[2])
	}
	if format != "" {
		return fmt.Sprintf(format, value)
	}
	switch v := value.(type) {
	case float32, float64:
		return fmt.Sprintf("%.2f", v)
	default:
		return fmt.Sprint(value)
	}
}
