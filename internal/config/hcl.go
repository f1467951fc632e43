package config

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// decodeHCL turns an HCL document into the generic map shape shared by the
// other formats. Top-level attributes stay flat and unlabeled blocks such as
// `scan { ... }` become nested maps. Expressions are evaluated without
// variables or functions.
func decodeHCL(data []byte, filename string) (map[string]any, error) {
	file, diags := hclsyntax.ParseConfig(data, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, diags
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("unexpected HCL body type %T", file.Body)
	}
	return hclBodyToMap(body)
}

func hclBodyToMap(body *hclsyntax.Body) (map[string]any, error) {
	out := make(map[string]any, len(body.Attributes)+len(body.Blocks))
	for name, attr := range body.Attributes {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("%s: %w", name, diags)
		}
		goVal, err := ctyToGo(val)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		out[name] = goVal
	}
	for _, block := range body.Blocks {
		if len(block.Labels) > 0 {
			return nil, fmt.Errorf("block %q: labels are not supported", block.Type)
		}
		if _, dup := out[block.Type]; dup {
			return nil, fmt.Errorf("duplicate block or attribute %q", block.Type)
		}
		sub, err := hclBodyToMap(block.Body)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", block.Type, err)
		}
		out[block.Type] = sub
	}
	return out, nil
}

func ctyToGo(v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.IsWhollyKnown() {
		return nil, errors.New("value is not known")
	}
	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil
	case ty == cty.Bool:
		return v.True(), nil
	case ty == cty.Number:
		bf := v.AsBigFloat()
		if n, acc := bf.Int64(); acc == big.Exact {
			return n, nil
		}
		f, _ := bf.Float64()
		return f, nil
	case ty.IsListType(), ty.IsSetType(), ty.IsTupleType():
		out := make([]any, 0, v.LengthInt())
		for _, el := range v.AsValueSlice() {
			goVal, err := ctyToGo(el)
			if err != nil {
				return nil, err
			}
			out = append(out, goVal)
		}
		return out, nil
	case ty.IsMapType(), ty.IsObjectType():
		out := make(map[string]any)
		for key, el := range v.AsValueMap() {
			goVal, err := ctyToGo(el)
			if err != nil {
				return nil, err
			}
			out[key] = goVal
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported value of type %s", ty.FriendlyName())
}
