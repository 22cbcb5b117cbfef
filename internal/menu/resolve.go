package menu

import (
	"github.com/postwarps/postwarps/internal/condition"
	"github.com/postwarps/postwarps/internal/provider"
)

// ResolveVariant picks the winning variant for one item: the first variant in
// declared order whose condition is absent or holds. Returns nil when nothing
// matches; the caller then falls back to the base ItemSpec attributes, never
// to a synthesized placeholder. First-match-wins is what lets authors write
// "specific conditions first, default last" and is deliberately identical to
// how the renderer registry is consulted.
func ResolveVariant(ev *condition.Evaluator, variants []VariantSpec, actor provider.Actor, facts condition.Facts) *VariantSpec {
	for i := range variants {
		v := &variants[i]
		if v.Unconditional() || ev.Eval(v.Condition, actor, facts) {
			return v
		}
	}
	return nil
}
