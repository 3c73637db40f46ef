package valuation

import (
	"github.com/shopspring/decimal"

	"github.com/mamadbah2/herdvalue/internal/domain/models"
)

var (
	hundred  = decimal.NewFromInt(100)
	arrobaKg = decimal.NewFromFloat(models.ArrobaKg)
)

// ComputeValuation projects the batch to the end of its period and prices
// the resulting carcass with quote. It never fails and never mutates its
// inputs; out-of-range values such as a yield above 100 flow through
// arithmetically.
func ComputeValuation(params models.BatchParameters, quote models.Quote) models.ResultSummary {
	head := decimal.NewFromInt(int64(params.BatchSize))
	initial := decimal.NewFromFloat(params.InitialWeightKg)

	perAnimal := finalWeight(params)
	totalInitial := head.Mul(initial)
	totalFinal := head.Mul(perAnimal)
	carcass := totalFinal.Mul(decimal.NewFromFloat(params.CarcassYieldPercent)).Div(hundred)
	units := toSaleUnits(carcass, quote.Unit)
	value := units.Mul(decimal.NewFromFloat(quote.Price))

	return models.ResultSummary{
		Params:               params.Clone(),
		FinalWeightPerAnimal: perAnimal.InexactFloat64(),
		TotalInitialWeight:   totalInitial.InexactFloat64(),
		TotalFinalWeight:     totalFinal.InexactFloat64(),
		TotalCarcassWeight:   carcass.InexactFloat64(),
		TotalUnits:           units.InexactFloat64(),
		TotalValue:           value.InexactFloat64(),
		WeightGain:           totalFinal.Sub(totalInitial).InexactFloat64(),
		Quote:                quote,
	}
}

// FinalWeightPerAnimal is the live weight of one animal at the end of the
// period, using the gain and period currently set on params.
func FinalWeightPerAnimal(params models.BatchParameters) float64 {
	return finalWeight(params).InexactFloat64()
}

// ConvertToSaleUnits expresses a carcass weight in the quote's unit.
func ConvertToSaleUnits(carcassKg float64, unit models.Unit) float64 {
	return toSaleUnits(decimal.NewFromFloat(carcassKg), unit).InexactFloat64()
}

func finalWeight(params models.BatchParameters) decimal.Decimal {
	gain := decimal.NewFromFloat(params.DailyGainKg).Mul(decimal.NewFromInt(int64(params.PeriodDays)))
	return decimal.NewFromFloat(params.InitialWeightKg).Add(gain)
}

func toSaleUnits(carcassKg decimal.Decimal, unit models.Unit) decimal.Decimal {
	if unit == models.UnitArroba {
		return carcassKg.Div(arrobaKg)
	}
	return carcassKg
}
