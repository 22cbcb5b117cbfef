package menu

import (
	"github.com/RoaringBitmap/roaring"
)

// LayoutIndex is the pre-flattened render metadata derived from one
// Definition: slot→symbol mapping plus occupancy bitmaps. It is
// session-agnostic, so it lives in the derived cache space and is rebuilt
// only after invalidation.
type LayoutIndex struct {
	Width int
	Rows  int

	// symbols[slot] is the layout symbol at that slot, "" when blank.
	symbols []string

	// Populated marks slots backed by an ItemSpec; Interactive marks the
	// subset whose base or any variant declares actions. Content lists the
	// slots bearing the menu's content symbol, in layout order.
	Populated   *roaring.Bitmap
	Interactive *roaring.Bitmap
	Content     []uint32
}

// blank symbols leave a layout position empty on purpose.
func isBlank(sym string) bool { return sym == " " || sym == "_" }

// BuildLayoutIndex flattens def's layout rows into slot-addressed metadata.
func BuildLayoutIndex(def *Definition) *LayoutIndex {
	width := 0
	for _, row := range def.Layout {
		if n := len([]rune(row)); n > width {
			width = n
		}
	}
	idx := &LayoutIndex{
		Width:       width,
		Rows:        len(def.Layout),
		symbols:     make([]string, width*len(def.Layout)),
		Populated:   roaring.New(),
		Interactive: roaring.New(),
	}
	for r, row := range def.Layout {
		for c, ch := range []rune(row) {
			slot := uint32(r*width + c)
			sym := string(ch)
			if isBlank(sym) {
				continue
			}
			spec, ok := def.Items[sym]
			if !ok {
				continue
			}
			idx.symbols[slot] = sym
			idx.Populated.Add(slot)
			if hasActions(spec) {
				idx.Interactive.Add(slot)
			}
			if def.Content != "" && sym == def.Content {
				idx.Content = append(idx.Content, slot)
			}
		}
	}
	return idx
}

func hasActions(spec *ItemSpec) bool {
	if len(spec.Actions) > 0 {
		return true
	}
	for _, v := range spec.Variants {
		if len(v.Actions) > 0 {
			return true
		}
	}
	return false
}

// Symbol returns the layout symbol at slot, ok=false when the slot is out of
// range or deliberately blank.
func (i *LayoutIndex) Symbol(slot int) (string, bool) {
	if slot < 0 || slot >= len(i.symbols) || i.symbols[slot] == "" {
		return "", false
	}
	return i.symbols[slot], true
}

// Size is the slot count of the full grid.
func (i *LayoutIndex) Size() int { return len(i.symbols) }

// PageSize is how many data rows fit on one page of a paged menu.
func (i *LayoutIndex) PageSize() int { return len(i.Content) }

// ContentPosition maps slot to its ordinal among the content slots, ok=false
// when the slot is not a content slot.
func (i *LayoutIndex) ContentPosition(slot int) (int, bool) {
	for pos, s := range i.Content {
		if int(s) == slot {
			return pos, true
		}
	}
	return 0, false
}
