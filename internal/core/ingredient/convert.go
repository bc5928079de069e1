package ingredient

// 體積以毫升為基準，重量以公克為基準
const (
	mlPerCup  = 236.5882365
	mlPerFlOz = 29.5735295625
	gPerOunce = 28.349523125
	gPerPound = 453.59237
)

var baseFactors = map[Unit]float64{
	UnitTeaspoon:   mlPerCup / 48,
	UnitTablespoon: mlPerCup / 16,
	UnitFluidOunce: mlPerFlOz,
	UnitCup:        mlPerCup,
	UnitPint:       mlPerCup * 2,
	UnitQuart:      mlPerCup * 4,
	UnitGallon:     mlPerCup * 16,
	UnitMilliliter: 1,
	UnitLiter:      1000,
	UnitDeciliter:  100,
	UnitCentiliter: 10,

	UnitMilligram: 0.001,
	UnitGram:      1,
	UnitKilogram:  1000,
	UnitOunce:     gPerOunce,
	UnitPound:     gPerPound,
}

// Convertible 兩個單位是否可互相換算；計數單位只能與自己相加
func Convertible(from, to Unit) bool {
	if from == to {
		return true
	}
	_, okFrom := baseFactors[from]
	_, okTo := baseFactors[to]
	return okFrom && okTo && from.Family() == to.Family()
}

// Convert 將數量從 from 換算成 to，範圍的上下界分別換算
func Convert(q Quantity, from, to Unit) (Quantity, bool) {
	if from == to {
		return q, true
	}
	if !Convertible(from, to) {
		return q, false
	}
	return q.Scale(baseFactors[from] / baseFactors[to]), true
}

// Measurement 換算後的數量與單位
type Measurement struct {
	Quantity Quantity `json:"quantity"`
	Unit     Unit     `json:"unit"`
}

// ConvertedMeasurement 公制與英制兩種表示，無法換算時為 nil
type ConvertedMeasurement struct {
	Metric   *Measurement `json:"metric,omitempty"`
	Imperial *Measurement `json:"imperial,omitempty"`
}

// Measurements 依數量大小挑選易讀的公制與英制單位
func Measurements(q Quantity, unit Unit) ConvertedMeasurement {
	factor, ok := baseFactors[unit]
	if !ok {
		return ConvertedMeasurement{}
	}
	base := q.Value() * factor

	var metricUnit, imperialUnit Unit
	switch unit.Family() {
	case FamilyVolume:
		metricUnit = UnitMilliliter
		if base >= 1000 {
			metricUnit = UnitLiter
		}
		switch {
		case base >= mlPerCup/8:
			imperialUnit = UnitCup
		case base >= mlPerCup/16:
			imperialUnit = UnitTablespoon
		default:
			imperialUnit = UnitTeaspoon
		}
	case FamilyWeight:
		metricUnit = UnitGram
		if base >= 1000 {
			metricUnit = UnitKilogram
		}
		imperialUnit = UnitOunce
		if base >= gPerPound {
			imperialUnit = UnitPound
		}
	default:
		return ConvertedMeasurement{}
	}

	out := ConvertedMeasurement{}
	if mq, ok := Convert(q, unit, metricUnit); ok {
		out.Metric = &Measurement{Quantity: mq, Unit: metricUnit}
	}
	if iq, ok := Convert(q, unit, imperialUnit); ok {
		out.Imperial = &Measurement{Quantity: iq, Unit: imperialUnit}
	}
	return out
}
