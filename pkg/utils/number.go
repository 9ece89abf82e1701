package utils

import "math"

const microsPerUnit = 1_000_000

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}

	return math.Round(f*100) / 100
}

// Ratio devolve numerator/denominator arredondado; denominador zero vira zero
func Ratio(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return RoundWithTwoDecimalPlace(numerator / denominator)
}

// FromMicros converte valores monetários da plataforma (micros) para a unidade da moeda
func FromMicros(micros float64) float64 {
	return RoundWithTwoDecimalPlace(micros / microsPerUnit)
}
