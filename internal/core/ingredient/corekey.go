package ingredient

import (
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/agnivade/levenshtein"
	"github.com/kljensen/snowball"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stopWords 取最後一個 token 時略過
var stopWords = map[string]struct{}{
	"of": {}, "in": {}, "with": {}, "for": {}, "to": {}, "a": {}, "an": {}, "the": {},
}

// synonymGroups 規範名稱 -> 各種寫法
var synonymGroups = map[string][]string{
	"salt":            {"kosher salt", "sea salt", "table salt", "flaky salt", "flaky sea salt", "fine salt", "coarse salt", "iodized salt"},
	"oil":             {"olive oil", "extra-virgin olive oil", "extra virgin olive oil", "virgin olive oil", "evoo", "vegetable oil", "canola oil", "neutral oil", "cooking oil", "sunflower oil", "avocado oil"},
	"flour":           {"all-purpose flour", "all purpose flour", "ap flour", "plain flour", "white flour"},
	"bread flour":     {"strong flour", "strong white flour"},
	"tomatoes":        {"tomato", "roma tomatoes", "roma tomato", "plum tomatoes", "plum tomato", "cherry tomatoes", "cherry tomato", "grape tomatoes", "vine tomatoes", "heirloom tomatoes"},
	"garlic":          {"garlic clove", "garlic cloves", "clove garlic", "cloves garlic", "cloves of garlic", "clove of garlic", "garlic bulb"},
	"onions":          {"onion", "yellow onion", "yellow onions", "white onion", "white onions", "brown onion", "brown onions", "sweet onion"},
	"red onions":      {"red onion", "purple onion"},
	"green onions":    {"green onion", "scallion", "scallions", "spring onion", "spring onions"},
	"butter":          {"unsalted butter", "salted butter", "stick butter", "sticks butter"},
	"eggs":            {"egg", "large eggs", "whole eggs", "free-range eggs"},
	"egg yolks":       {"egg yolk", "yolks", "yolk"},
	"egg whites":      {"egg white"},
	"sugar":           {"white sugar", "granulated sugar", "caster sugar", "cane sugar", "superfine sugar"},
	"brown sugar":     {"light brown sugar", "dark brown sugar", "packed brown sugar"},
	"powdered sugar":  {"icing sugar", "confectioners sugar", "confectioners' sugar"},
	"black pepper":    {"ground black pepper", "cracked black pepper", "black peppercorns"},
	"heavy cream":     {"heavy whipping cream", "whipping cream", "double cream", "thickened cream"},
	"milk":            {"whole milk", "2% milk", "skim milk", "low-fat milk"},
	"chicken breast":  {"chicken breasts"},
	"chicken thighs":  {"chicken thigh"},
	"ground beef":     {"minced beef", "beef mince", "lean ground beef"},
	"parmesan":        {"parmesan cheese", "parmigiano reggiano", "parmigiano-reggiano", "grated parmesan"},
	"cilantro":        {"fresh coriander", "chinese parsley"},
	"parsley":         {"flat-leaf parsley", "flat leaf parsley", "italian parsley"},
	"soy sauce":       {"light soy sauce", "low-sodium soy sauce", "low sodium soy sauce", "shoyu", "tamari"},
	"lemon juice":     {"juice of lemon", "fresh lemon juice"},
	"lime juice":      {"juice of lime", "fresh lime juice"},
	"lemons":          {"lemon"},
	"limes":           {"lime"},
	"water":           {"cold water", "warm water", "hot water", "boiling water", "ice water"},
	"rice":            {"white rice", "long-grain rice", "long grain rice", "jasmine rice", "basmati rice"},
	"baking soda":     {"bicarbonate of soda", "bicarb soda", "sodium bicarbonate"},
	"chicken stock":   {"chicken broth", "low-sodium chicken broth", "low sodium chicken broth"},
	"vanilla extract": {"vanilla", "pure vanilla extract", "vanilla essence"},
	"bell peppers":    {"bell pepper", "red bell pepper", "green bell pepper", "yellow bell pepper", "capsicum"},
	"potatoes":        {"potato", "russet potatoes", "yukon gold potatoes", "russet potato"},
	"carrots":         {"carrot"},
	"salt and pepper": {"salt & pepper"},
}

// distinctProducts 結尾與通用名稱相同但屬於不同商品，本身即為規範名稱
var distinctProducts = []string{
	"garlic salt", "celery salt", "onion salt",
	"garlic powder", "onion powder", "chili powder", "baking powder", "cocoa powder", "curry powder",
	"cayenne pepper", "red pepper flakes", "white pepper",
	"sesame oil", "coconut oil", "peanut oil",
	"coconut milk", "almond milk", "oat milk", "coconut cream", "sour cream", "ice cream", "cream cheese",
	"peanut butter", "almond butter",
	"tomato paste", "tomato sauce", "fish sauce", "hot sauce",
	"cake flour", "corn flour", "rice flour", "almond flour",
	"rice vinegar", "rice noodles", "half and half",
}

// formNouns 結尾的形狀名詞，前面還有其他 token 時略過，例如 "basil leaves" -> "basil"
var formNouns = map[string]struct{}{
	"leaves": {}, "leaf": {}, "fillets": {}, "fillet": {}, "florets": {}, "floret": {},
	"pieces": {}, "chunks": {}, "halves": {}, "strips": {}, "cubes": {}, "wedges": {}, "segments": {},
}

// synonymTable 寫法 -> 規範名稱；每個規範名稱也對應到自己，確保冪等
var synonymTable = sync.OnceValue(func() map[string]string {
	table := make(map[string]string)
	for canonical, variants := range synonymGroups {
		table[canonical] = canonical
		for _, v := range variants {
			table[v] = canonical
		}
	}
	for _, p := range distinctProducts {
		table[p] = p
	}
	return table
})

// stemmedSynonyms 以詞幹比對的對照表
var stemmedSynonyms = sync.OnceValue(func() map[string]string {
	table := make(map[string]string)
	for variant, canonical := range synonymTable() {
		stem := stemPhrase(variant)
		if _, exists := table[stem]; !exists || variant == canonical {
			table[stem] = canonical
		}
	}
	return table
})

var (
	foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	reKeyPunct  = regexp.MustCompile(`[^a-z0-9%&'\- ]+`)
)

const (
	fuzzyThreshold = 0.85
	fuzzyMinLength = 5
)

// foldText 小寫並去除重音符號，例如 jalapeño -> jalapeno
func foldText(s string) string {
	out, _, err := transform.String(foldAccents, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

func stemPhrase(s string) string {
	fields := strings.Fields(s)
	for i, f := range fields {
		stem, err := snowball.Stem(f, "english", false)
		if err == nil && stem != "" {
			fields[i] = stem
		}
	}
	return strings.Join(fields, " ")
}

func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := len([]rune(a))
	if lb := len([]rune(b)); lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshtein.ComputeDistance(a, b))/float64(maxLen)
}

// keyMatcher 比對鍵的啟發式規則，依序嘗試直到有結果
type keyMatcher func(tokens []string) (string, bool)

// suffixes 由長到短列出 token 後綴
func suffixes(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		out = append(out, strings.Join(tokens[i:], " "))
	}
	return out
}

func matchExactSynonym(tokens []string) (string, bool) {
	table := synonymTable()
	for _, s := range suffixes(tokens) {
		if canonical, ok := table[s]; ok {
			return canonical, true
		}
	}
	return "", false
}

func matchStemmedSynonym(tokens []string) (string, bool) {
	table := stemmedSynonyms()
	for _, s := range suffixes(tokens) {
		if canonical, ok := table[stemPhrase(s)]; ok {
			return canonical, true
		}
	}
	return "", false
}

func matchFuzzySynonym(tokens []string) (string, bool) {
	table := synonymTable()
	for _, s := range suffixes(tokens) {
		if len(s) < fuzzyMinLength {
			continue
		}
		best, bestScore := "", 0.0
		for variant, canonical := range table {
			if len(variant) < fuzzyMinLength {
				continue
			}
			score := similarity(s, variant)
			if score > bestScore || (score == bestScore && canonical < best) {
				best, bestScore = canonical, score
			}
		}
		if bestScore >= fuzzyThreshold {
			return best, true
		}
	}
	return "", false
}

func matchLastToken(tokens []string) (string, bool) {
	for i := len(tokens) - 1; i >= 0; i-- {
		if _, stop := stopWords[tokens[i]]; stop {
			continue
		}
		return tokens[i], true
	}
	return "", false
}

// trimTokens 去掉頭尾的停用詞以及結尾的形狀名詞
func trimTokens(tokens []string) []string {
	for len(tokens) > 0 {
		if _, stop := stopWords[tokens[0]]; !stop {
			break
		}
		tokens = tokens[1:]
	}
	for len(tokens) > 0 {
		last := tokens[len(tokens)-1]
		if _, stop := stopWords[last]; stop {
			tokens = tokens[:len(tokens)-1]
			continue
		}
		if _, form := formNouns[last]; form && len(tokens) > 1 {
			tokens = tokens[:len(tokens)-1]
			continue
		}
		break
	}
	return tokens
}

var keyMatchers = []keyMatcher{
	matchExactSynonym,
	matchStemmedSynonym,
	matchFuzzySynonym,
	matchLastToken,
}

// CoreKey 推導比對鍵：只用於分組與比對，不用於顯示
func CoreKey(s string) string {
	text := foldText(s)

	// 呼叫端可能直接傳入原始字串
	if _, rest, found := LexQuantity(text); found {
		_, rest = ExtractUnit(rest)
		text = rest
	}

	text = stripAllModifiers(text)
	text = reKeyPunct.ReplaceAllString(text, " ")

	tokens := trimTokens(strings.Fields(text))
	if len(tokens) == 0 {
		return ""
	}

	for _, match := range keyMatchers {
		if key, ok := match(tokens); ok {
			return key
		}
	}
	return ""
}
