package importer

import "github.com/okian/waterradar/internal/domain/model"

// Merge overlays incoming on base by id. A matching id replaces the base
// record in place; new ids are appended in incoming order. Inputs are not
// modified.
func Merge(base, incoming []model.Water) []model.Water {
	out := make([]model.Water, 0, len(base)+len(incoming))
	pos := make(map[string]int, len(base)+len(incoming))
	for _, w := range base {
		if i, ok := pos[w.ID]; ok {
			out[i] = w
			continue
		}
		pos[w.ID] = len(out)
		out = append(out, w)
	}
	for _, w := range incoming {
		if i, ok := pos[w.ID]; ok {
			out[i] = w
			continue
		}
		pos[w.ID] = len(out)
		out = append(out, w)
	}
	return out
}
