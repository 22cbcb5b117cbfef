// Package menu is the configuration-driven menu engine: it turns declarative
// menu files plus live player facts into concrete, cached menu surfaces and
// the action lists attached to clicked slots.
package menu

// Definition is the immutable parsed form of one menu file. A reload never
// mutates a Definition in place; it parses a replacement and swaps it in the
// definition cache, so concurrent renders keep seeing a consistent object.
type Definition struct {
	Name            string
	Title           string // text/template over render facts
	Kind            string // "static" or "paged"
	OpenRequirement string // condition; empty means open to anyone
	Layout          []string
	Content         string // symbol whose layout slots are filled from data rows
	Items           map[string]*ItemSpec
}

// Kinds understood by the bundled renderers.
const (
	KindStatic = "static"
	KindPaged  = "paged"
)

// ItemSpec is the declared configuration for one layout symbol: base display
// attributes plus an ordered variant list evaluated in declaration order.
type ItemSpec struct {
	Symbol   string
	Material string
	Name     string // text/template over render facts
	Lore     []string
	Amount   int
	Glow     bool
	Actions  []string
	Variants []VariantSpec
}

// VariantSpec is a conditional override of an ItemSpec. A variant with an
// empty Condition always matches and terminates resolution; fields left at
// their zero value inherit from the base (Lore and Actions inherit on nil and
// replace wholesale otherwise).
type VariantSpec struct {
	Key       string // set when declared in mapping form
	Condition string
	Material  string
	Name      string
	Lore      []string
	Amount    int
	Glow      *bool
	Actions   []string
}

// Unconditional reports whether v matches every actor.
func (v *VariantSpec) Unconditional() bool { return v.Condition == "" }

// DisplayItem is the fully materialized display state of one slot, ready for
// the presentation layer. A zero DisplayItem (Material "") is an empty slot.
type DisplayItem struct {
	Symbol   string
	Material string
	Name     string
	Lore     []string
	Amount   int
	Glow     bool
}

// Empty reports whether the slot shows nothing.
func (d DisplayItem) Empty() bool { return d.Material == "" }

// Surface is the renderable result of one open: a titled slot grid plus the
// paging position it was rendered at. It is handed to the presentation layer
// and never cached (it depends on live facts).
type Surface struct {
	Menu      string
	Title     string
	Width     int
	Slots     []DisplayItem
	Page      int
	PageCount int
}
