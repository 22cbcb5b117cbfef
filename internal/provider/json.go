package provider

import (
	"context"
	"fmt"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"

	"github.com/postwarps/postwarps/internal/value"
)

// JSONProvider serves dynamic menu rows extracted from JSON documents with a
// JSONPath selector, one source per menu name. It backs menus whose data
// comes from exported server state rather than the warp database.
type JSONProvider struct {
	sources map[string]jsonSource
}

type jsonSource struct {
	doc  any
	expr jp.Expr
}

func NewJSONProvider() *JSONProvider {
	return &JSONProvider{sources: make(map[string]jsonSource)}
}

// Add registers doc as the data source for menuName. The selector is
// compiled once; each value it selects becomes one row. Scalar results are
// wrapped under the key "value".
func (p *JSONProvider) Add(menuName string, doc []byte, selector string) error {
	parsed, err := oj.Parse(doc)
	if err != nil {
		return fmt.Errorf("data source for %s: %w", menuName, err)
	}
	expr, err := jp.ParseString(selector)
	if err != nil {
		return fmt.Errorf("invalid jsonpath %q for %s: %w", selector, menuName, err)
	}
	p.sources[menuName] = jsonSource{doc: parsed, expr: expr}
	return nil
}

func (p *JSONProvider) Supports(menuName string) bool {
	_, ok := p.sources[menuName]
	return ok
}

func (p *JSONProvider) Fetch(ctx context.Context, _ Actor, menuName string) (Data, error) {
	if err := ctx.Err(); err != nil {
		return Data{}, err
	}
	src, ok := p.sources[menuName]
	if !ok {
		return Data{}, fmt.Errorf("no data source for %s", menuName)
	}
	results := src.expr.Get(src.doc)
	rows := make([]map[string]value.Value, 0, len(results))
	for _, r := range results {
		switch m := r.(type) {
		case map[string]any:
			row := make(map[string]value.Value, len(m))
			for k, v := range m {
				row[k] = value.From(v)
			}
			rows = append(rows, row)
		default:
			rows = append(rows, map[string]value.Value{"value": value.From(r)})
		}
	}
	return Data{Rows: rows}, nil
}
