package hcl

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/querygrid/internal/blockgraph"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Encode renders g in native HCL syntax. Zero-valued parameters are omitted,
// so Encode followed by Load yields an equal graph.
func Encode(g blockgraph.Graph) ([]byte, error) {
	f := hclwrite.NewEmptyFile()
	root := f.Body()

	for i, b := range g.Blocks {
		if i > 0 {
			root.AppendNewline()
		}
		if b.Params == nil {
			return nil, fmt.Errorf("block %q has no parameters", b.ID)
		}
		block := root.AppendNewBlock("block", []string{string(b.Params.Kind()), b.ID})
		body := block.Body()
		if b.Label != "" {
			body.SetAttributeValue(labelAttr, cty.StringVal(b.Label))
		}
		if err := encodeParams(body, b.Params); err != nil {
			return nil, fmt.Errorf("block %q: %w", b.ID, err)
		}
	}

	if len(g.Connections) > 0 && len(g.Blocks) > 0 {
		root.AppendNewline()
	}
	for _, c := range g.Connections {
		root.AppendNewBlock("connection", []string{c.Source, c.Target})
	}

	return f.Bytes(), nil
}

func encodeParams(body *hclwrite.Body, params blockgraph.Params) error {
	val := reflect.ValueOf(params)
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		tag := typ.Field(i).Tag.Get("qg")
		if tag == "" {
			continue
		}
		field := val.Field(i)
		if field.IsZero() || (field.Kind() == reflect.Slice && field.Len() == 0) {
			continue
		}

		ty, err := gocty.ImpliedType(field.Interface())
		if err != nil {
			return err
		}
		ctyVal, err := gocty.ToCtyValue(field.Interface(), ty)
		if err != nil {
			return fmt.Errorf("failed to encode argument %q: %w", tag, err)
		}
		body.SetAttributeValue(strings.Split(tag, ",")[0], ctyVal)
	}
	return nil
}
