package ingredient

import "strings"

// MergeLists 合併兩份清單：A 在前、B 在後。
// B 的項目併入第一個名稱相同（不分大小寫）且單位相容的 A 項目，否則附加在最後。
func MergeLists(a, b []Record) []Record {
	out := make([]Record, 0, len(a)+len(b))
	for _, r := range a {
		out = append(out, cloneRecord(r))
	}
	fromA := len(out)

	for _, rb := range b {
		merged := false
		for i := 0; i < fromA; i++ {
			if !sameName(out[i].Name, rb.Name) {
				continue
			}
			if combined, ok := combine(out[i], rb); ok {
				out[i] = combined
				merged = true
				break
			}
		}
		if !merged {
			out = append(out, cloneRecord(rb))
		}
	}
	return out
}

// Consolidate 由左至右依序合併多份清單
func Consolidate(lists ...[]Record) []Record {
	var out []Record
	for i, list := range lists {
		if i == 0 {
			out = MergeLists(list, nil)
			continue
		}
		out = MergeLists(out, list)
	}
	if out == nil {
		out = []Record{}
	}
	return out
}

func sameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// combine 依單位決定能否相加；名稱與單位以 a 為準
func combine(a, b Record) (Record, bool) {
	qb := b.Quantity
	if a.Unit != b.Unit {
		converted, ok := Convert(b.Quantity, b.Unit, a.Unit)
		if !ok {
			return a, false
		}
		qb = converted
	}

	out := a
	out.Quantity = a.Quantity.Add(qb)
	if out.SortKey == "" {
		out.SortKey = b.SortKey
	}
	if out.Preparation == "" {
		out.Preparation = b.Preparation
	}
	if out.Notes == "" {
		out.Notes = b.Notes
	}
	if b.Confidence < out.Confidence {
		out.Confidence = b.Confidence
	}
	out.RecipeIDs = unionIDs(recipeIDsOf(a), recipeIDsOf(b))
	return out, true
}

func recipeIDsOf(r Record) []string {
	if len(r.RecipeIDs) > 0 {
		return r.RecipeIDs
	}
	if r.RecipeID != "" {
		return []string{r.RecipeID}
	}
	return nil
}

func unionIDs(a, b []string) []string {
	if len(b) == 0 {
		return a
	}
	out := append([]string(nil), a...)
	seen := make(map[string]struct{}, len(a)+len(b))
	for _, id := range out {
		seen[id] = struct{}{}
	}
	for _, id := range b {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func cloneRecord(r Record) Record {
	if r.RecipeIDs != nil {
		r.RecipeIDs = append([]string(nil), r.RecipeIDs...)
	}
	return r
}
