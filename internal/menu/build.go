package menu

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// BuildItem merges the base spec with the winning variant (nil for none) into
// the final display object and the ordered action list for the slot. Override
// semantics are field-by-field replacement: a variant lore list fully
// replaces the base list, it is never spliced into it. The shared specs are
// never mutated, so concurrent builds for different actors over the same
// config are safe.
func BuildItem(base *ItemSpec, variant *VariantSpec, rc *Context) (DisplayItem, []string, error) {
	d := DisplayItem{
		Symbol:   base.Symbol,
		Material: base.Material,
		Name:     base.Name,
		Lore:     base.Lore,
		Amount:   base.Amount,
		Glow:     base.Glow,
	}
	actions := base.Actions

	if variant != nil {
		if variant.Material != "" {
			d.Material = variant.Material
		}
		if variant.Name != "" {
			d.Name = variant.Name
		}
		if variant.Lore != nil {
			d.Lore = variant.Lore
		}
		if variant.Amount != 0 {
			d.Amount = variant.Amount
		}
		if variant.Glow != nil {
			d.Glow = *variant.Glow
		}
		if variant.Actions != nil {
			actions = variant.Actions
		}
	}
	if d.Amount == 0 {
		d.Amount = 1
	}

	var err error
	if d.Name, err = expand(d.Name, rc); err != nil {
		return DisplayItem{}, nil, fmt.Errorf("item %q name: %w", base.Symbol, err)
	}
	if len(d.Lore) > 0 {
		lore := make([]string, len(d.Lore))
		for i, line := range d.Lore {
			if lore[i], err = expand(line, rc); err != nil {
				return DisplayItem{}, nil, fmt.Errorf("item %q lore: %w", base.Symbol, err)
			}
		}
		d.Lore = lore
	}

	if len(actions) > 0 {
		expanded := make([]string, len(actions))
		for i, a := range actions {
			if expanded[i], err = expand(a, rc); err != nil {
				return DisplayItem{}, nil, fmt.Errorf("item %q action: %w", base.Symbol, err)
			}
		}
		actions = expanded
	} else {
		// Purely decorative slot.
		actions = nil
	}
	return d, actions, nil
}

// expand renders a text/template string against the context facts. Plain
// strings pass through untouched.
func expand(s string, rc *Context) (string, error) {
	if s == "" || !strings.Contains(s, "{{") {
		return s, nil
	}
	t, err := template.New("").Option("missingkey=zero").Parse(s)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, rc.templateData()); err != nil {
		return "", err
	}
	return buf.String(), nil
}
