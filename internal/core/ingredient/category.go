package ingredient

import (
	"regexp"
	"strings"
	"sync"
)

// Category 採買分類
type Category string

const (
	CategoryProduce     Category = "produce"
	CategoryMeatSeafood Category = "meat-seafood"
	CategoryDairyEggs   Category = "dairy-eggs"
	CategoryPantry      Category = "pantry"
	CategorySpices      Category = "spices"
	CategoryFrozen      Category = "frozen"
	CategoryBakery      Category = "bakery"
	CategoryOther       Category = "other"
)

// Categories 顯示順序
var Categories = []Category{
	CategoryProduce,
	CategoryMeatSeafood,
	CategoryDairyEggs,
	CategoryPantry,
	CategorySpices,
	CategoryFrozen,
	CategoryBakery,
	CategoryOther,
}

type categoryRule struct {
	category Category
	keywords []string
}

// categoryOverrides 優先於 categoryRules，處理以其他分類關鍵字組成的加工品
var categoryOverrides = []categoryRule{
	{CategorySpices, []string{
		"garlic powder", "onion powder", "garlic salt", "onion salt", "celery salt", "celery seed",
		"ground ginger", "red pepper flake", "dried herb", "herbes de provence",
	}},
	{CategoryPantry, []string{
		"stock", "broth", "bouillon", "sauce", "paste", "vinegar", "noodle", "pasta",
		"peanut butter", "almond butter", "coconut milk", "almond milk", "oat milk", "coconut cream",
		"cream of tartar", "breadcrumb", "bread crumb", "panko",
	}},
}

// categoryRules 依序比對，第一個命中的分類勝出
var categoryRules = []categoryRule{
	{CategoryProduce, []string{
		"apple", "avocado", "banana", "basil", "bean sprout", "beet", "bell pepper", "berry", "berries",
		"blueberry", "blueberries", "bok choy", "broccoli", "broccolini", "brussels sprout", "cabbage",
		"carrot", "cauliflower", "celery", "chard", "chive", "cilantro", "coriander leaves", "corn on the cob",
		"cucumber", "dill", "eggplant", "fennel", "garlic", "ginger", "grape", "green bean", "green onion",
		"herb", "jalapeno", "kale", "leek", "lemon", "lettuce", "lime", "mango", "mint", "mushroom",
		"onion", "orange", "parsley", "peach", "pear", "pea pod", "potato", "pumpkin", "radish",
		"raspberry", "raspberries", "rosemary", "sage", "scallion", "shallot", "snow pea", "spinach",
		"sprout", "squash", "strawberry", "strawberries", "sweet potato", "thyme", "tomato",
		"zucchini", "arugula", "asparagus", "chili pepper", "chile", "serrano", "poblano",
	}},
	{CategoryMeatSeafood, []string{
		"bacon", "beef", "brisket", "chicken", "chorizo", "clam", "cod", "crab", "duck", "fish",
		"ground beef", "ground pork", "ham", "lamb", "lobster", "mince", "mussel", "pancetta", "pork",
		"prawn", "prosciutto", "salami", "salmon", "sausage", "scallop", "shrimp", "steak", "tilapia",
		"tuna", "turkey", "veal", "anchovy", "anchovies", "halibut", "thigh", "breast", "drumstick",
	}},
	{CategoryDairyEggs, []string{
		"butter", "buttermilk", "cheddar", "cheese", "cream", "creme fraiche", "egg", "feta", "ghee",
		"half and half", "milk", "mozzarella", "parmesan", "ricotta", "sour cream", "yogurt", "yoghurt",
		"yolk", "egg white", "mascarpone", "gruyere", "brie",
	}},
	{CategorySpices, []string{
		"allspice", "bay leaf", "bay leaves", "black pepper", "cardamom", "cayenne", "chili powder",
		"chili flake", "cinnamon", "clove", "cumin", "curry powder", "garam masala", "nutmeg", "oregano",
		"paprika", "pepper", "peppercorn", "red pepper flake", "saffron", "salt", "seasoning", "spice",
		"star anise", "turmeric", "vanilla", "za'atar", "five spice", "mustard seed", "fennel seed",
		"garlic powder", "onion powder", "coriander",
	}},
	{CategoryFrozen, []string{
		"frozen", "ice cube", "sorbet", "popsicle", "gelato",
	}},
	{CategoryBakery, []string{
		"bagel", "baguette", "bread", "brioche", "bun", "ciabatta", "croissant", "flatbread", "naan",
		"pita", "roll", "sourdough", "tortilla", "muffin",
	}},
}

type compiledRule struct {
	category Category
	re       *regexp.Regexp
}

// compiledCategoryRules 每個分類一個正規表示式，允許複數字尾
var compiledCategoryRules = sync.OnceValue(func() []compiledRule {
	rules := append(append([]categoryRule(nil), categoryOverrides...), categoryRules...)
	out := make([]compiledRule, 0, len(rules))
	for _, rule := range rules {
		quoted := make([]string, 0, len(rule.keywords))
		for _, kw := range rule.keywords {
			quoted = append(quoted, regexp.QuoteMeta(kw))
		}
		out = append(out, compiledRule{
			category: rule.category,
			re:       regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)(?:e?s)?\b`),
		})
	}
	return out
})

// Classify 依顯示名稱判斷分類；找不到時歸入 pantry
func Classify(name string) Category {
	text := collapseSpaces(foldText(name))
	if text == "" {
		return CategoryOther
	}
	for _, rule := range compiledCategoryRules() {
		if rule.re.MatchString(text) {
			return rule.category
		}
	}
	return CategoryPantry
}

// ParseCategory 將字串轉回 Category；未知值回傳 other
func ParseCategory(s string) Category {
	for _, c := range Categories {
		if string(c) == strings.ToLower(strings.TrimSpace(s)) {
			return c
		}
	}
	return CategoryOther
}
