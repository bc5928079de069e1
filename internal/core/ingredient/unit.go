package ingredient

import (
	"strings"
	"sync"
)

// Unit 正規化後的單位名稱，空字串代表無單位
type Unit string

const (
	UnitNone Unit = ""

	// 體積
	UnitTeaspoon   Unit = "teaspoon"
	UnitTablespoon Unit = "tablespoon"
	UnitFluidOunce Unit = "fluid ounce"
	UnitCup        Unit = "cup"
	UnitPint       Unit = "pint"
	UnitQuart      Unit = "quart"
	UnitGallon     Unit = "gallon"
	UnitMilliliter Unit = "milliliter"
	UnitLiter      Unit = "liter"
	UnitDeciliter  Unit = "deciliter"
	UnitCentiliter Unit = "centiliter"

	// 重量
	UnitMilligram Unit = "milligram"
	UnitGram      Unit = "gram"
	UnitKilogram  Unit = "kilogram"
	UnitOunce     Unit = "ounce"
	UnitPound     Unit = "pound"

	// 計數與容器
	UnitClove   Unit = "clove"
	UnitPiece   Unit = "piece"
	UnitSlice   Unit = "slice"
	UnitCan     Unit = "can"
	UnitJar     Unit = "jar"
	UnitBottle  Unit = "bottle"
	UnitPackage Unit = "package"
	UnitBag     Unit = "bag"
	UnitBox     Unit = "box"
	UnitBunch   Unit = "bunch"
	UnitHead    Unit = "head"
	UnitSprig   Unit = "sprig"
	UnitStalk   Unit = "stalk"
	UnitStick   Unit = "stick"
	UnitPinch   Unit = "pinch"
	UnitDash    Unit = "dash"
	UnitHandful Unit = "handful"
)

// Family 單位族群，族群之間互不相交
type Family int

const (
	FamilyNone Family = iota
	FamilyVolume
	FamilyWeight
	FamilyCount
)

func (f Family) String() string {
	switch f {
	case FamilyVolume:
		return "volume"
	case FamilyWeight:
		return "weight"
	case FamilyCount:
		return "count"
	default:
		return "none"
	}
}

var unitFamilies = map[Unit]Family{
	UnitTeaspoon:   FamilyVolume,
	UnitTablespoon: FamilyVolume,
	UnitFluidOunce: FamilyVolume,
	UnitCup:        FamilyVolume,
	UnitPint:       FamilyVolume,
	UnitQuart:      FamilyVolume,
	UnitGallon:     FamilyVolume,
	UnitMilliliter: FamilyVolume,
	UnitLiter:      FamilyVolume,
	UnitDeciliter:  FamilyVolume,
	UnitCentiliter: FamilyVolume,

	UnitMilligram: FamilyWeight,
	UnitGram:      FamilyWeight,
	UnitKilogram:  FamilyWeight,
	UnitOunce:     FamilyWeight,
	UnitPound:     FamilyWeight,

	UnitClove:   FamilyCount,
	UnitPiece:   FamilyCount,
	UnitSlice:   FamilyCount,
	UnitCan:     FamilyCount,
	UnitJar:     FamilyCount,
	UnitBottle:  FamilyCount,
	UnitPackage: FamilyCount,
	UnitBag:     FamilyCount,
	UnitBox:     FamilyCount,
	UnitBunch:   FamilyCount,
	UnitHead:    FamilyCount,
	UnitSprig:   FamilyCount,
	UnitStalk:   FamilyCount,
	UnitStick:   FamilyCount,
	UnitPinch:   FamilyCount,
	UnitDash:    FamilyCount,
	UnitHandful: FamilyCount,
}

// Family 回傳單位所屬族群
func (u Unit) Family() Family {
	return unitFamilies[u]
}

// unitAliases 拼寫與縮寫對照表，單字與雙字並存
var unitAliases = sync.OnceValue(func() map[string]Unit {
	aliases := map[string]Unit{
		"tsp": UnitTeaspoon, "tsps": UnitTeaspoon, "teaspoons": UnitTeaspoon,
		"tbsp": UnitTablespoon, "tbsps": UnitTablespoon, "tbs": UnitTablespoon, "tbl": UnitTablespoon,
		"tablespoons": UnitTablespoon,
		"fl oz": UnitFluidOunce, "fl. oz": UnitFluidOunce, "fluid ounces": UnitFluidOunce, "floz": UnitFluidOunce,
		"cups": UnitCup,
		"pints": UnitPint, "pt": UnitPint,
		"quarts": UnitQuart, "qt": UnitQuart,
		"gallons": UnitGallon, "gal": UnitGallon,
		"ml": UnitMilliliter, "milliliters": UnitMilliliter, "millilitres": UnitMilliliter, "millilitre": UnitMilliliter,
		"l": UnitLiter, "liters": UnitLiter, "litres": UnitLiter, "litre": UnitLiter,
		"dl": UnitDeciliter, "deciliters": UnitDeciliter,
		"cl": UnitCentiliter, "centiliters": UnitCentiliter,

		"mg": UnitMilligram, "milligrams": UnitMilligram,
		"g": UnitGram, "gr": UnitGram, "grams": UnitGram, "gramme": UnitGram, "grammes": UnitGram,
		"kg": UnitKilogram, "kgs": UnitKilogram, "kilograms": UnitKilogram, "kilo": UnitKilogram, "kilos": UnitKilogram,
		"oz": UnitOunce, "ounces": UnitOunce,
		"lb": UnitPound, "lbs": UnitPound, "pounds": UnitPound,

		"cloves": UnitClove,
		"pieces": UnitPiece, "pc": UnitPiece, "pcs": UnitPiece,
		"slices": UnitSlice,
		"cans": UnitCan, "tin": UnitCan, "tins": UnitCan,
		"jars": UnitJar,
		"bottles": UnitBottle,
		"packages": UnitPackage, "pkg": UnitPackage, "pkgs": UnitPackage, "packet": UnitPackage, "packets": UnitPackage,
		"bags": UnitBag,
		"boxes": UnitBox,
		"bunches": UnitBunch,
		"heads": UnitHead,
		"sprigs": UnitSprig,
		"stalks": UnitStalk,
		"sticks": UnitStick,
		"pinches": UnitPinch,
		"dashes": UnitDash,
		"handfuls": UnitHandful,
	}
	for u := range unitFamilies {
		aliases[string(u)] = u
	}
	return aliases
})

// NormalizeUnit 將任意拼寫轉成正規單位
func NormalizeUnit(s string) (Unit, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.TrimRight(key, ".,;:")
	key = strings.Join(strings.Fields(key), " ")
	u, ok := unitAliases()[key]
	return u, ok
}

// ExtractUnit 掃描剩餘文字的前兩個 token；雙字單位優先
func ExtractUnit(rest string) (Unit, string) {
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return UnitNone, rest
	}
	if len(fields) >= 2 {
		if u, ok := NormalizeUnit(fields[0] + " " + fields[1]); ok {
			return u, strings.Join(fields[2:], " ")
		}
	}
	if u, ok := NormalizeUnit(fields[0]); ok {
		return u, strings.Join(fields[1:], " ")
	}
	return UnitNone, rest
}
