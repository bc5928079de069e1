package ingredient

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// QuantityKind 數量型態
type QuantityKind int

const (
	// KindSingle 單一數值
	KindSingle QuantityKind = iota
	// KindRange 範圍 {min, max}
	KindRange
)

// Quantity 數量，單一數值或範圍兩者擇一
type Quantity struct {
	kind QuantityKind
	min  float64
	max  float64
}

// Single 建立單一數值
func Single(v float64) Quantity {
	return Quantity{kind: KindSingle, min: v, max: v}
}

// NewRange 建立範圍；兩端都必須 > 0 且 min <= max
func NewRange(min, max float64) (Quantity, bool) {
	if !(min > 0) || !(max > 0) || min > max {
		return Quantity{}, false
	}
	return Quantity{kind: KindRange, min: min, max: max}, true
}

// DefaultQuantity 未偵測到數量時的預設值
func DefaultQuantity() Quantity {
	return Single(1)
}

func (q Quantity) Kind() QuantityKind { return q.kind }

func (q Quantity) IsRange() bool { return q.kind == KindRange }

// Bounds 回傳上下界，單一數值時兩者相同
func (q Quantity) Bounds() (float64, float64) {
	return q.min, q.max
}

// Value 單一數值本身；範圍時為中點
func (q Quantity) Value() float64 {
	if q.kind == KindRange {
		return (q.min + q.max) / 2
	}
	return q.min
}

// Add 相加：任一方為範圍時，上下界分別相加
func (q Quantity) Add(o Quantity) Quantity {
	if q.IsRange() || o.IsRange() {
		r, ok := NewRange(q.min+o.min, q.max+o.max)
		if ok {
			return r
		}
	}
	return Single(q.Value() + o.Value())
}

// Scale 依倍率縮放
func (q Quantity) Scale(f float64) Quantity {
	if q.IsRange() {
		if r, ok := NewRange(roundTo(q.min*f, 6), roundTo(q.max*f, 6)); ok {
			return r
		}
	}
	return Single(roundTo(q.Value()*f, 6))
}

// Display 顯示用字串
func (q Quantity) Display() string {
	if q.IsRange() {
		return formatNumber(q.min) + "-" + formatNumber(q.max)
	}
	return formatNumber(q.min)
}

func (q Quantity) String() string { return q.Display() }

type quantityJSON struct {
	Value   float64  `json:"value"`
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Display string   `json:"display,omitempty"`
}

// MarshalJSON 範圍時輸出 min/max
func (q Quantity) MarshalJSON() ([]byte, error) {
	out := quantityJSON{Value: q.Value(), Display: q.Display()}
	if q.IsRange() {
		min, max := q.min, q.max
		out.Min, out.Max = &min, &max
	}
	return json.Marshal(out)
}

// UnmarshalJSON 同時帶 min 與 max 才視為範圍
func (q *Quantity) UnmarshalJSON(data []byte) error {
	var in quantityJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.Min != nil && in.Max != nil {
		r, ok := NewRange(*in.Min, *in.Max)
		if !ok {
			return fmt.Errorf("invalid quantity range %v-%v", *in.Min, *in.Max)
		}
		*q = r
		return nil
	}
	if in.Value <= 0 {
		*q = DefaultQuantity()
		return nil
	}
	*q = Single(in.Value)
	return nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(roundTo(v, 3), 'f', -1, 64)
}

func roundTo(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

var vulgarFractions = map[rune]string{
	'½': "1/2",
	'¼': "1/4",
	'¾': "3/4",
	'⅓': "1/3",
	'⅔': "2/3",
	'⅛': "1/8",
	'⅜': "3/8",
	'⅝': "5/8",
	'⅞': "7/8",
	'⅕': "1/5",
	'⅖': "2/5",
	'⅗': "3/5",
	'⅘': "4/5",
	'⅙': "1/6",
	'⅚': "5/6",
}

var wordNumbers = map[string]float64{
	"a": 1, "an": 1, "one": 1, "two": 2, "three": 3, "four": 4,
	"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9,
	"ten": 10, "eleven": 11, "twelve": 12,
	"half": 0.5, "dozen": 12,
}

const numberExpr = `(\d+\s+\d+/\d+|\d+/\d+|\d+(?:\.\d+)?|\.\d+)`

var (
	reRange      = regexp.MustCompile(`^` + numberExpr + `\s*(?:-|–|—|\bto\b)\s*` + numberExpr)
	reNumber     = regexp.MustCompile(`^` + numberExpr)
	reContinue   = regexp.MustCompile(`^(?:-|–|—|to\b)\s*` + numberExpr)
	reWordNumber = regexp.MustCompile(`^([a-z]+)\s+`)
)

// normalizeFractions 將 Unicode 分數轉為 n/d，前一字元為數字時視為帶分數
func normalizeFractions(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 8)
	var prev rune
	for _, r := range s {
		if frac, ok := vulgarFractions[r]; ok {
			if unicode.IsDigit(prev) {
				sb.WriteByte(' ')
			}
			sb.WriteString(frac)
			prev = r
			continue
		}
		if r == '⁄' {
			r = '/'
		}
		sb.WriteRune(r)
		prev = r
	}
	return sb.String()
}

// parseNumber 解析帶分數、分數、小數或整數
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if fields := strings.Fields(s); len(fields) == 2 {
		whole, ok := parseNumber(fields[0])
		if !ok {
			return 0, false
		}
		frac, ok := parseNumber(fields[1])
		if !ok {
			return 0, false
		}
		return whole + frac, true
	}
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, false
		}
		d, err := strconv.ParseFloat(den, 64)
		if err != nil || d == 0 {
			return 0, false
		}
		return n / d, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// LexQuantity 解析開頭的數量表達式，回傳數量、剩餘文字以及是否找到數量
func LexQuantity(text string) (Quantity, string, bool) {
	s := strings.TrimSpace(normalizeFractions(text))

	if m := reRange.FindStringSubmatch(s); m != nil {
		lo, okLo := parseNumber(m[1])
		hi, okHi := parseNumber(m[2])
		if okLo && okHi {
			if r, ok := NewRange(lo, hi); ok {
				return r, strings.TrimSpace(s[len(m[0]):]), true
			}
		}
		// 任一端無效時退回單一數值
	}

	if m := reNumber.FindStringSubmatch(s); m != nil {
		if v, ok := parseNumber(m[1]); ok && v > 0 {
			return Single(v), strings.TrimSpace(s[len(m[0]):]), true
		}
		return DefaultQuantity(), strings.TrimSpace(s[len(m[0]):]), false
	}

	if m := reWordNumber.FindStringSubmatch(strings.ToLower(s)); m != nil {
		rest := strings.TrimSpace(s[len(m[0]):])
		// "half and half" 是食材名稱
		if v, ok := wordNumbers[m[1]]; ok && !strings.HasPrefix(strings.ToLower(rest), "and ") {
			return Single(v), rest, true
		}
	}

	return DefaultQuantity(), s, false
}

// ParseQuantity 整段文字必須是一個數量表達式，不允許剩餘文字
func ParseQuantity(text string) (Quantity, bool) {
	q, rest, found := LexQuantity(text)
	if !found || rest != "" {
		return DefaultQuantity(), false
	}
	return q, true
}

// continueRange 處理單位夾在兩個數字中間的範圍，例如「½ teaspoon to ¾」
func continueRange(q Quantity, rest string) (Quantity, string, bool) {
	if q.IsRange() {
		return q, rest, false
	}
	m := reContinue.FindStringSubmatch(strings.ToLower(rest))
	if m == nil {
		return q, rest, false
	}
	hi, ok := parseNumber(m[1])
	if !ok {
		return q, rest, false
	}
	r, ok := NewRange(q.Value(), hi)
	if !ok {
		return q, rest, false
	}
	return r, strings.TrimSpace(rest[len(m[0]):]), true
}
