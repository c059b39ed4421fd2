package usecase

import (
	"math"
	"strings"
	"unicode/utf8"

	"hospital-scheduling/internal/delivery/dto"
	"hospital-scheduling/internal/domain/entity"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// Column limits of the encounters table.
const (
	bloodPressureMaxLen = 20
	temperatureScale    = 1
	weightScale         = 2
)

var (
	temperatureLimit = decimal.NewFromInt(1000)
	weightLimit      = decimal.NewFromInt(10000)
)

// applyVitals copies the measurements onto the encounter. Each field is
// parsed on its own; a value that does not parse or does not fit its column
// is stored as absent and never fails the request.
func applyVitals(encounter *entity.Encounter, vitals dto.VitalsRequest) {
	encounter.BloodPressure = coerceText(vitals.BloodPressure, bloodPressureMaxLen)
	encounter.Glycemia = coerceInt(vitals.Glycemia)
	encounter.OxygenSaturation = coerceInt(vitals.OxygenSaturation)
	encounter.TemperatureC = coerceDecimal(vitals.TemperatureC, temperatureScale, temperatureLimit)
	encounter.WeightKg = coerceDecimal(vitals.WeightKg, weightScale, weightLimit)
	encounter.HeightCm = coerceInt(vitals.HeightCm)
}

func coerceText(v interface{}, maxLen int) *string {
	switch v.(type) {
	case nil, bool, map[string]interface{}, []interface{}:
		return nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > maxLen {
		return nil
	}
	return &s
}

// coerceInt truncates fractional input, so "98.6" becomes 98. Values outside
// the INTEGER column range are absent.
func coerceInt(v interface{}) *int {
	f, ok := coerceFloat(v)
	if !ok {
		return nil
	}
	f = math.Trunc(f)
	if f < math.MinInt32 || f > math.MaxInt32 {
		return nil
	}
	n := int(f)
	return &n
}

// coerceDecimal rounds to the column scale and drops values whose magnitude
// reaches limit.
func coerceDecimal(v interface{}, scale int32, limit decimal.Decimal) *decimal.Decimal {
	var d decimal.Decimal
	if s, ok := v.(string); ok {
		parsed, err := decimal.NewFromString(strings.TrimSpace(s))
		if err != nil {
			return nil
		}
		d = parsed
	} else {
		f, ok := coerceFloat(v)
		if !ok {
			return nil
		}
		d = decimal.NewFromFloat(f)
	}
	d = d.Round(scale)
	if d.Abs().GreaterThanOrEqual(limit) {
		return nil
	}
	return &d
}

func coerceFloat(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case nil, bool:
		return 0, false
	case string:
		val = strings.TrimSpace(val)
		if val == "" {
			return 0, false
		}
		v = val
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
