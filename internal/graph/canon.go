package graph

// Canonicalize folds group cases whose targets are structurally equal
// events into the first occurrence, summing weights:
//
//	[(1,'A'), (1,'A2'), (1,'B')]  →  [(2,'A'), (1,'B')]
//
// when A and A2 have identical content. Quadratic in entity comparisons
// per group, which is fine for pools of at most a few dozen cases. Case
// lists are rewritten in place; this is the only mutation after the build
// phase.
func Canonicalize(g *Graph) {
	for _, group := range g.Groups {
		group.Cases = mergeCases(g, group.Cases)
	}
}

func mergeCases(g *Graph, cases []Case) []Case {
	merged := make([]Case, 0, len(cases))
	for _, c := range cases {
		target := g.Events[c.Target]
		folded := false
		if target != nil {
			for i := range merged {
				if target.StructurallyEqual(g.Events[merged[i].Target]) {
					merged[i].Weight += c.Weight
					folded = true
					break
				}
			}
		}
		if !folded {
			merged = append(merged, c)
		}
	}
	return merged
}
