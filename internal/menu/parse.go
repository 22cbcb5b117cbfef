package menu

import (
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/postwarps/postwarps/internal/value"
)

// fileDef mirrors the on-disk menu document. Items are keyed by layout
// symbol, so their map order is irrelevant; only the icons list inside an
// item is order-sensitive, and that is decoded from the raw node to keep
// declaration order for both the sequence and the mapping form.
type fileDef struct {
	Title           string               `yaml:"title"`
	Kind            string               `yaml:"kind"`
	OpenRequirement string               `yaml:"open_requirement"`
	Layout          []string             `yaml:"layout"`
	Content         string               `yaml:"content"`
	Items           map[string]*fileItem `yaml:"items"`
}

type fileItem struct {
	Material string    `yaml:"material"`
	Name     string    `yaml:"name"`
	Lore     yaml.Node `yaml:"lore"`
	Amount   int       `yaml:"amount"`
	Glow     bool      `yaml:"glow"`
	Actions  []string  `yaml:"actions"`
	Icons    yaml.Node `yaml:"icons"`
}

type fileVariant struct {
	Condition string    `yaml:"condition"`
	Material  string    `yaml:"material"`
	Name      string    `yaml:"name"`
	Lore      yaml.Node `yaml:"lore"`
	Amount    int       `yaml:"amount"`
	Glow      *bool     `yaml:"glow"`
	Actions   []string  `yaml:"actions"`
}

// Parse turns one menu document into an immutable Definition. Structural
// problems (no layout, unknown symbols in rows, bad icon shapes) are errors:
// the loader skips the file and keeps going. Dead variants after an
// unconditional one are dropped with a warning, not an error.
func Parse(name string, data []byte, log *slog.Logger) (*Definition, error) {
	if log == nil {
		log = slog.Default()
	}
	var f fileDef
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse menu %s: %w", name, err)
	}
	if len(f.Layout) == 0 {
		return nil, fmt.Errorf("parse menu %s: layout is required", name)
	}
	width := 0
	for _, row := range f.Layout {
		if n := len([]rune(row)); n > width {
			width = n
		}
	}
	if width == 0 {
		return nil, fmt.Errorf("parse menu %s: layout rows are empty", name)
	}

	def := &Definition{
		Name:            name,
		Title:           f.Title,
		Kind:            f.Kind,
		OpenRequirement: f.OpenRequirement,
		Layout:          f.Layout,
		Content:         f.Content,
		Items:           make(map[string]*ItemSpec, len(f.Items)),
	}
	if def.Kind == "" {
		def.Kind = KindStatic
	}
	if def.Title == "" {
		def.Title = name
	}

	for symbol, it := range f.Items {
		if len([]rune(symbol)) != 1 {
			return nil, fmt.Errorf("parse menu %s: item key %q must be a single symbol", name, symbol)
		}
		spec, err := parseItem(name, symbol, it, log)
		if err != nil {
			return nil, err
		}
		def.Items[symbol] = spec
	}

	for _, row := range f.Layout {
		for _, r := range row {
			sym := string(r)
			if sym == " " || sym == "_" {
				continue
			}
			if _, ok := def.Items[sym]; !ok {
				return nil, fmt.Errorf("parse menu %s: layout symbol %q has no item", name, sym)
			}
		}
	}
	if def.Kind == KindPaged && def.Content == "" {
		return nil, fmt.Errorf("parse menu %s: paged menu needs a content symbol", name)
	}
	if def.Content != "" {
		if _, ok := def.Items[def.Content]; !ok {
			return nil, fmt.Errorf("parse menu %s: content symbol %q has no item", name, def.Content)
		}
	}
	return def, nil
}

func parseItem(menuName, symbol string, it *fileItem, log *slog.Logger) (*ItemSpec, error) {
	if it == nil {
		return nil, fmt.Errorf("parse menu %s: item %q is empty", menuName, symbol)
	}
	lore, err := parseLore(&it.Lore)
	if err != nil {
		return nil, fmt.Errorf("parse menu %s: item %q: %w", menuName, symbol, err)
	}
	spec := &ItemSpec{
		Symbol:   symbol,
		Material: it.Material,
		Name:     it.Name,
		Lore:     lore,
		Amount:   it.Amount,
		Glow:     it.Glow,
		Actions:  it.Actions,
	}
	spec.Variants, err = parseVariants(&it.Icons)
	if err != nil {
		return nil, fmt.Errorf("parse menu %s: item %q: %w", menuName, symbol, err)
	}

	// Everything after an unconditional variant is unreachable under
	// first-match resolution.
	for i, v := range spec.Variants {
		if v.Unconditional() && i < len(spec.Variants)-1 {
			log.Warn("unreachable variants dropped",
				"menu", menuName, "item", symbol, "after", i, "dropped", len(spec.Variants)-1-i)
			spec.Variants = spec.Variants[:i+1]
			break
		}
	}
	return spec, nil
}

// parseVariants accepts icons in either shape: an ordered sequence, or a
// mapping of named variants. yaml.v3 exposes mapping entries in document
// order, so both shapes evaluate in declaration order; the sequence form
// stays the authoritative one for authors who care about ordering.
func parseVariants(node *yaml.Node) ([]VariantSpec, error) {
	if node == nil || node.Kind == 0 || node.Tag == "!!null" {
		return nil, nil
	}
	switch node.Kind {
	case yaml.SequenceNode:
		out := make([]VariantSpec, 0, len(node.Content))
		for i, el := range node.Content {
			v, err := parseVariant(el)
			if err != nil {
				return nil, fmt.Errorf("icon %d: %w", i, err)
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.MappingNode:
		out := make([]VariantSpec, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			v, err := parseVariant(node.Content[i+1])
			if err != nil {
				return nil, fmt.Errorf("icon %q: %w", node.Content[i].Value, err)
			}
			v.Key = node.Content[i].Value
			out = append(out, v)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("icons must be a sequence or a mapping")
	}
}

func parseVariant(node *yaml.Node) (VariantSpec, error) {
	var f fileVariant
	if err := node.Decode(&f); err != nil {
		return VariantSpec{}, err
	}
	lore, err := parseLore(&f.Lore)
	if err != nil {
		return VariantSpec{}, err
	}
	return VariantSpec{
		Condition: f.Condition,
		Material:  f.Material,
		Name:      f.Name,
		Lore:      lore,
		Amount:    f.Amount,
		Glow:      f.Glow,
		Actions:   f.Actions,
	}, nil
}

// parseLore accepts a bare string or a list of scalars. nil result means the
// field was absent, which for variants means "inherit".
func parseLore(node *yaml.Node) ([]string, error) {
	if node == nil || node.Kind == 0 || node.Tag == "!!null" {
		return nil, nil
	}
	var raw any
	if err := node.Decode(&raw); err != nil {
		return nil, fmt.Errorf("lore: %w", err)
	}
	lines, ok := value.From(raw).Strings()
	if !ok {
		return nil, fmt.Errorf("lore must be a string or a list of scalars")
	}
	return lines, nil
}
