package inventory

import "github.com/shopspring/decimal"

// Remaining devuelve la cantidad planificada que quedó sin realizar (nunca negativa).
// Sobre-recolecciones devuelven cero: no generan backorder.
func Remaining(planned, done decimal.Decimal) decimal.Decimal {
	rest := planned.Sub(done)
	if rest.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return rest
}

// AdjustmentDelta es la diferencia que un conteo aplica sobre las existencias.
// Positivo: aparecieron unidades; negativo: faltan.
func AdjustmentDelta(onHand, counted decimal.Decimal) decimal.Decimal {
	return counted.Sub(onHand)
}

// PackageWeight suma cantidad * peso unitario de cada línea empacada.
func PackageWeight(quantities, unitWeights []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for i := range quantities {
		if i >= len(unitWeights) {
			break
		}
		total = total.Add(quantities[i].Mul(unitWeights[i]))
	}
	return total
}
