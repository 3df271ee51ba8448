package forms

import "sort"

// Section is one group of the questionnaire with its questions in display
// order.
type Section struct {
	Group     Group
	Questions []Question
}

// Label returns the section heading.
func (s Section) Label() string {
	return s.Group.Label()
}

// Sections partitions qs into the canonical group order. Groups without
// questions are omitted and questions without a recognised group land in
// GroupOther. Within a group questions are sorted by Order; ties keep their
// original sequence.
func Sections(qs []Question) []Section {
	var out []Section
	partition(qs, func(q Question) Question { return q }, func(g Group, list []Question) {
		out = append(out, Section{Group: g, Questions: list})
	})
	return out
}

// partition groups items by the question they carry and calls emit once per
// non-empty group, in canonical order, with the items stably sorted by Order.
func partition[T any](items []T, question func(T) Question, emit func(Group, []T)) {
	byGroup := make(map[Group][]T)
	for _, it := range items {
		g := ParseGroup(string(question(it).Group))
		byGroup[g] = append(byGroup[g], it)
	}
	for _, g := range Groups() {
		list := byGroup[g]
		if len(list) == 0 {
			continue
		}
		sort.SliceStable(list, func(i, j int) bool {
			return question(list[i]).Order < question(list[j]).Order
		})
		emit(g, list)
	}
}
