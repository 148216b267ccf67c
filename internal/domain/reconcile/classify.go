package reconcile

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/medtrack-api/internal/domain/entity"
)

// Report resultado de clasificar las salidas contra las inspecciones de
// una fecha. Las claves conciliadas se cuentan pero no generan registro.
type Report struct {
	Records        []*entity.Discrepancy
	MatchedKeys    int
	MismatchedKeys int
	OutgoingItems  int
	InspectedItems int
	ByReason       map[string]int
}

// Classify compara las partidas de salida e inspección de una misma fecha
// y produce exactamente un registro de discrepancia por clave no
// conciliada, con cantidad siempre positiva.
//
// Regla de decisión por clave, con out/in como magnitudes agregadas y
// total = in - out:
//
//	total == 0               → conciliado (sin registro)
//	out == 0 y in > 0        → NOT_SHIPPED_BUT_INSPECTED, cantidad in
//	in == 0 y out > 0        → NOT_INSPECTED, cantidad out
//	total < 0                → SHORTFALL, cantidad -total
//	total > 0                → SURPLUS, cantidad total
func Classify(companyID string, date time.Time, outgoing, inspected []*entity.SpecItem) *Report {
	outAbs := SumAbsolute(outgoing)
	inAbs := SumAbsolute(inspected)
	names := medicationNames(inspected, outgoing)

	rep := &Report{
		OutgoingItems:  len(outgoing),
		InspectedItems: len(inspected),
		ByReason:       make(map[string]int),
	}

	for _, k := range unionKeys(outAbs, inAbs) {
		out := outAbs[k] // magnitud despachada
		in := inAbs[k]   // magnitud inspeccionada
		total := in.Sub(out)

		var reason string
		var qty decimal.Decimal
		switch {
		case total.IsZero():
			rep.MatchedKeys++
			continue
		case out.IsZero() && in.Sign() > 0:
			reason, qty = entity.ReasonNotShipped, in
		case in.IsZero() && out.Sign() > 0:
			reason, qty = entity.ReasonNotInspected, out
		case total.Sign() < 0:
			reason, qty = entity.ReasonShortfall, total.Neg()
		default:
			reason, qty = entity.ReasonSurplus, total
		}

		rep.MismatchedKeys++
		rep.ByReason[reason]++
		rep.Records = append(rep.Records, &entity.Discrepancy{
			CompanyID:      companyID,
			Date:           date,
			ProductNum:     k.ProductNum,
			Expiry:         k.ExpiryTime(),
			Lot:            k.Lot,
			MedicationName: names[k],
			Reason:         reason,
			Quantity:       qty,
		})
	}
	return rep
}
