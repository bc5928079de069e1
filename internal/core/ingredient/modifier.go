package ingredient

import (
	"regexp"
	"sort"
	"strings"
	"sync"
)

// descriptorWords 開頭的描述詞，不影響採買品項
var descriptorWords = map[string]struct{}{
	"fresh": {}, "freshly": {}, "dried": {}, "dry": {}, "organic": {}, "raw": {}, "ripe": {},
	"large": {}, "small": {}, "medium": {}, "extra-large": {}, "jumbo": {}, "big": {},
	"boneless": {}, "skinless": {}, "bone-in": {}, "skin-on": {},
	"whole": {}, "unsalted": {}, "salted": {}, "lean": {}, "thick": {}, "thin": {},
	"heaping": {}, "level": {}, "packed": {}, "lightly": {}, "firmly": {}, "good": {}, "quality": {},
	"store-bought": {}, "homemade": {}, "cold": {}, "warm": {},
	"plain": {}, "pure": {}, "extra": {}, "additional": {}, "about": {}, "approximately": {},
}

// preparationPhrases 處理方式
var preparationPhrases = []string{
	"finely chopped", "roughly chopped", "coarsely chopped", "chopped",
	"finely diced", "diced", "finely minced", "minced",
	"thinly sliced", "thickly sliced", "sliced",
	"finely grated", "freshly grated", "grated", "shredded",
	"freshly ground",
	"melted", "softened", "beaten", "lightly beaten", "whisked",
	"crushed", "peeled", "peeled and deveined", "deveined", "cubed", "julienned",
	"halved", "quartered", "mashed", "zested", "juiced", "toasted",
	"rinsed", "drained", "rinsed and drained", "thawed", "pitted", "seeded",
	"trimmed", "torn", "sifted", "cooked", "crumbled", "cut into cubes",
	"cut into pieces", "cut into chunks", "cut into wedges", "cut into strips",
	"at room temperature", "room temperature",
}

// notesPhrases 備註
var notesPhrases = []string{
	"to taste", "or to taste", "plus more to taste", "optional", "divided",
	"for serving", "plus more for serving", "for garnish", "to garnish", "for topping",
	"as needed", "if needed", "for frying", "for greasing", "for dusting", "for drizzling",
	"or more", "or less", "to serve",
}

type phraseMatcher struct {
	phrase string
	re     *regexp.Regexp
}

// compilePhrases 依長度由長到短排序並編譯
func compilePhrases(phrases []string) []phraseMatcher {
	sorted := append([]string(nil), phrases...)
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
	out := make([]phraseMatcher, 0, len(sorted))
	for _, p := range sorted {
		out = append(out, phraseMatcher{
			phrase: p,
			re:     regexp.MustCompile(`(?i)(?:^|[\s,;])` + regexp.QuoteMeta(p) + `(?:$|[\s,;.])`),
		})
	}
	return out
}

var (
	preparationMatchers = sync.OnceValue(func() []phraseMatcher { return compilePhrases(preparationPhrases) })
	notesMatchers       = sync.OnceValue(func() []phraseMatcher { return compilePhrases(notesPhrases) })
)

var (
	reParenthetical = regexp.MustCompile(`\([^)]*\)|\[[^\]]*\]`)
	reUnclosed      = regexp.MustCompile(`[(\[].*$`)
	reSpaces        = regexp.MustCompile(`\s+`)
	reCommaSpaces   = regexp.MustCompile(`\s*,\s*`)
)

// stripParentheticals 括號內容（副單位、品牌說明）整段移除
func stripParentheticals(s string) string {
	s = reParenthetical.ReplaceAllString(s, " ")
	s = reUnclosed.ReplaceAllString(s, " ")
	return collapseSpaces(s)
}

func collapseSpaces(s string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}

// stripLeadingDescriptors 重複移除開頭的描述詞與 "of"
func stripLeadingDescriptors(s string) string {
	fields := strings.Fields(s)
	i := 0
	for i < len(fields) {
		word := strings.ToLower(strings.Trim(fields[i], ",;"))
		if _, ok := descriptorWords[word]; ok || word == "of" {
			i++
			continue
		}
		break
	}
	return strings.Join(fields[i:], " ")
}

// removePhrase 找出第一個符合的片語並移除
func removePhrase(s string, matchers []phraseMatcher) (string, string) {
	for _, m := range matchers {
		loc := m.re.FindStringIndex(s)
		if loc == nil {
			continue
		}
		out := s[:loc[0]] + " " + s[loc[1]:]
		return out, m.phrase
	}
	return s, ""
}

// tidy 清除移除片語後殘留的標點與連接詞
func tidy(s string) string {
	s = reCommaSpaces.ReplaceAllString(collapseSpaces(s), ", ")
	for {
		before := s
		s = strings.Trim(s, " ,;:.-")
		lower := strings.ToLower(s)
		for _, w := range []string{" and", " or", " plus"} {
			if strings.HasSuffix(lower, w) {
				s = s[:len(s)-len(w)]
			}
		}
		if s == before {
			return s
		}
	}
}

// Modifiers 名稱以外的資訊
type Modifiers struct {
	Name        string
	Preparation string
	Notes       string
}

// ExtractModifiers 移除描述詞、處理方式與備註，剩下的就是顯示名稱
func ExtractModifiers(rest string) Modifiers {
	s := stripParentheticals(rest)
	s = stripLeadingDescriptors(s)

	s, notes := removePhrase(s, notesMatchers())
	s, prep := removePhrase(s, preparationMatchers())
	s = tidy(s)

	if prep == "" {
		if head, tail, ok := strings.Cut(s, ","); ok {
			s = tidy(head)
			prep = tidy(tail)
		}
	} else if head, _, ok := strings.Cut(s, ","); ok {
		s = tidy(head)
	}

	// 處理方式被移除後，開頭可能又露出描述詞，例如 "freshly ground black pepper"
	s = stripLeadingDescriptors(s)

	return Modifiers{
		Name:        collapseSpaces(s),
		Preparation: prep,
		Notes:       notes,
	}
}

// stripAllModifiers 移除所有描述詞、處理方式與備註；用於比對鍵
func stripAllModifiers(s string) string {
	s = stripParentheticals(s)
	for _, group := range [][]phraseMatcher{notesMatchers(), preparationMatchers()} {
		for {
			next, found := removePhrase(s, group)
			if found == "" {
				break
			}
			s = next
		}
	}
	fields := strings.Fields(strings.NewReplacer(",", " ", ";", " ").Replace(s))
	kept := fields[:0]
	for _, f := range fields {
		if _, ok := descriptorWords[f]; ok {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}
