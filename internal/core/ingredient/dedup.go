package ingredient

import (
	"strings"
	"unicode/utf8"
)

// Dedupe 同一份清單內依比對鍵去重，每組保留原始字串最長的一筆。
// 數量不相加；比對鍵為空的項目一律保留。
func Dedupe(records []Record) []Record {
	out := make([]Record, 0, len(records))
	index := make(map[string]int, len(records))

	for _, r := range records {
		if r.SortKey == "" {
			out = append(out, cloneRecord(r))
			continue
		}
		i, seen := index[r.SortKey]
		if !seen {
			index[r.SortKey] = len(out)
			out = append(out, cloneRecord(r))
			continue
		}
		if utf8.RuneCountInString(r.Original) > utf8.RuneCountInString(out[i].Original) {
			out[i] = cloneRecord(r)
		}
	}
	return out
}

// DedupeLines 以字串形式去重，回傳保留的原始行
func DedupeLines(lines []string) []string {
	records := make([]Record, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		r := Parse(line, "")
		r.Original = line
		records = append(records, r)
	}
	kept := Dedupe(records)
	out := make([]string, 0, len(kept))
	for _, r := range kept {
		out = append(out, r.Original)
	}
	return out
}
