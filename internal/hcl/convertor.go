package hcl

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/querygrid/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// labelAttr is the attribute holding a block's display label.
const labelAttr = "label"

// Converter binds HCL attribute bodies to parameter structs.
type Converter struct{}

// NewConverter creates a new HCL converter.
func NewConverter() *Converter {
	return &Converter{}
}

// DecodeBody evaluates the attributes of body and populates the struct that
// target points to, using the `qg` tag of each field as the attribute name.
// It returns the value of the `label` attribute, if present. Attributes that
// match no field are rejected.
func (c *Converter) DecodeBody(ctx context.Context, body hcl.Body, target any) (string, error) {
	logger := ctxlog.FromContext(ctx)

	structVal := reflect.ValueOf(target)
	if structVal.Kind() != reflect.Ptr || structVal.IsNil() || structVal.Elem().Kind() != reflect.Struct {
		return "", fmt.Errorf("target must be a non-nil pointer to a struct, got %T", target)
	}
	structVal = structVal.Elem()
	structType := structVal.Type()

	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return "", diags
	}

	fields := make(map[string]reflect.Value, structType.NumField())
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		tag := field.Tag.Get("qg")
		if tag == "" || !structVal.Field(i).CanSet() {
			continue
		}
		fields[strings.Split(tag, ",")[0]] = structVal.Field(i)
	}

	var label string
	for _, name := range sortedNames(attrs) {
		attr := attrs[name]
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return "", diags
		}

		if name == labelAttr {
			if err := c.decode(ctx, val, &label); err != nil {
				return "", fmt.Errorf("%s: failed to decode argument %q: %w", attr.Range, name, err)
			}
			continue
		}

		fieldVal, ok := fields[name]
		if !ok {
			return "", fmt.Errorf("%s: unsupported argument %q", attr.Range, name)
		}
		if val.IsNull() {
			logger.Debug("Argument is null, leaving zero value.", "argument", name)
			continue
		}
		if err := c.decode(ctx, val, fieldVal.Addr().Interface()); err != nil {
			return "", fmt.Errorf("%s: failed to decode argument %q: %w", attr.Range, name, err)
		}
	}
	return label, nil
}

// decode handles the conversion and decoding of a cty.Value into a Go pointer.
func (c *Converter) decode(ctx context.Context, val cty.Value, goVal any) error {
	logger := ctxlog.FromContext(ctx)
	valPtr := reflect.ValueOf(goVal)
	if valPtr.Kind() != reflect.Ptr {
		return fmt.Errorf("target for decoding must be a pointer, got %T", goVal)
	}

	impliedType, err := gocty.ImpliedType(valPtr.Elem().Interface())
	if err != nil {
		logger.Debug("Could not imply cty.Type from Go type, attempting direct decoding.", "go_type", valPtr.Elem().Type().String(), "error", err)
		return gocty.FromCtyValue(val, goVal)
	}

	convertedVal, err := convert.Convert(val, impliedType)
	if err != nil {
		return fmt.Errorf("cannot convert %s to required type %s: %w", val.Type().FriendlyName(), impliedType.FriendlyName(), err)
	}

	if !val.Type().Equals(convertedVal.Type()) {
		logger.Debug("Implicitly converted value type.",
			"from", val.Type().FriendlyName(),
			"to", convertedVal.Type().FriendlyName(),
		)
	}

	return gocty.FromCtyValue(convertedVal, goVal)
}

func sortedNames(attrs hcl.Attributes) []string {
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
