package reconcile

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/medtrack-api/internal/domain/entity"
)

// MatchedQuantities calcula por clave el mínimo transferible entre la
// magnitud despachada y la inspeccionada. Las claves con mínimo cero se
// omiten del resultado.
//
// Esto es deliberadamente independiente de Classify: una clave puede tener
// a la vez una discrepancia (ej. SURPLUS) y una cantidad conciliada mayor
// que cero (la porción en la que ambas partes coinciden); el traslado se
// rige solo por este mínimo, nunca por las razones de discrepancia.
func MatchedQuantities(outgoing, inspected []*entity.SpecItem) map[entity.ItemKey]decimal.Decimal {
	outAbs := SumAbsolute(outgoing)
	inAbs := SumAbsolute(inspected)

	matched := make(map[entity.ItemKey]decimal.Decimal)
	for k, out := range outAbs {
		in, ok := inAbs[k]
		if !ok {
			continue
		}
		m := decimal.Min(out, in)
		if m.Sign() > 0 {
			matched[k] = m
		}
	}
	return matched
}
