package ingredient

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"recipe-grocery/internal/pkg/common"
)

// DefaultLowConfidence 低於此分數的解析結果會被記錄
const DefaultLowConfidence = 0.6

// Record 一行食材解析後的結構化結果
type Record struct {
	Name        string   `json:"name"`
	SortKey     string   `json:"sort_key"`
	Quantity    Quantity `json:"quantity"`
	Unit        Unit     `json:"unit"`
	Preparation string   `json:"preparation,omitempty"`
	Notes       string   `json:"notes,omitempty"`
	Category    Category `json:"category"`
	Original    string   `json:"original"`
	RecipeID    string   `json:"recipe_id,omitempty"`
	RecipeIDs   []string `json:"recipe_ids,omitempty"`
	Confidence  float64  `json:"confidence"`
}

// DisplayQuantity 顯示用數量字串
func (r Record) DisplayQuantity() string {
	return r.Quantity.Display()
}

// Parser 解析器設定
type Parser struct {
	// LowConfidence 低於此分數時寫 debug 日誌
	LowConfidence float64
}

// NewParser 建立解析器，threshold <= 0 時使用預設值
func NewParser(threshold float64) *Parser {
	if threshold <= 0 {
		threshold = DefaultLowConfidence
	}
	return &Parser{LowConfidence: threshold}
}

var defaultParser = NewParser(DefaultLowConfidence)

var (
	reBullet        = regexp.MustCompile(`^(?:[-*•·]+|\d+[.)])\s+`)
	reApprox        = regexp.MustCompile(`(?i)^(?:about|approximately|approx\.?|around|roughly|~)\s*`)
	reLeadingParen  = regexp.MustCompile(`^(?:\([^)]*\)|\[[^\]]*\])\s*`)
	reDigit         = regexp.MustCompile(`\d`)
	reLeadingSymbol = regexp.MustCompile(`^(?:%|[x×](?:\s|$))\s*`)
)

// Parse 使用預設設定解析一行食材
func Parse(line, recipeID string) Record {
	return defaultParser.Parse(line, recipeID)
}

// ParseLines 逐行解析，空行略過
func ParseLines(lines []string, recipeID string) []Record {
	return defaultParser.ParseLines(lines, recipeID)
}

// ParseLines 逐行解析，空行略過
func (p *Parser) ParseLines(lines []string, recipeID string) []Record {
	out := make([]Record, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, p.Parse(line, recipeID))
	}
	return out
}

// Parse 依序執行數量、單位、修飾詞、比對鍵與分類；任何輸入都會得到結果
func (p *Parser) Parse(line, recipeID string) Record {
	original := collapseSpaces(line)
	s := reBullet.ReplaceAllString(original, "")
	s = reApprox.ReplaceAllString(s, "")

	q, rest, found := LexQuantity(s)

	rest = reLeadingParen.ReplaceAllString(rest, "")
	if found {
		rest = reLeadingSymbol.ReplaceAllString(rest, "")
	}

	unit, afterUnit := ExtractUnit(rest)
	// 整行只有單位字時當作食材名稱，例如 "cloves"
	if unit != UnitNone && strings.TrimSpace(afterUnit) == "" {
		unit = UnitNone
	} else {
		rest = afterUnit
	}

	if found {
		var extended bool
		q, rest, extended = continueRange(q, rest)
		if extended {
			if u, r := ExtractUnit(rest); u != UnitNone && (unit == UnitNone || u == unit) && strings.TrimSpace(r) != "" {
				unit, rest = u, r
			}
		}
	}

	mods := ExtractModifiers(rest)
	name := mods.Name

	sortKey := CoreKey(name)
	if sortKey == "" {
		sortKey = CoreKey(original)
	}

	rec := Record{
		Name:        name,
		SortKey:     sortKey,
		Quantity:    q,
		Unit:        unit,
		Preparation: mods.Preparation,
		Notes:       mods.Notes,
		Category:    Classify(name),
		Original:    original,
		RecipeID:    recipeID,
		Confidence:  confidence(s, name, found),
	}
	if recipeID != "" {
		rec.RecipeIDs = []string{recipeID}
	}

	if rec.Confidence < p.LowConfidence {
		common.LogDebug("Low confidence ingredient parse",
			zap.String("line", original),
			zap.String("name", rec.Name),
			zap.Float64("confidence", rec.Confidence),
		)
	}
	return rec
}

// confidence 解析可信度：資訊遺失越多分數越低
func confidence(text, name string, found bool) float64 {
	switch {
	case name == "":
		return 0.3
	case !found && reDigit.MatchString(text):
		// 有數字卻解析不出數量
		return 0.5
	case !found:
		return 0.8
	default:
		return 1.0
	}
}
