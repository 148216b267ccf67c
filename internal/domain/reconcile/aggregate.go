// Package reconcile contiene el núcleo puro de la conciliación de
// inventario: agregación por clave, clasificación de discrepancias,
// cálculo del mínimo transferible y planificación de mutaciones.
// No hace I/O; los casos de uso persisten los planes que produce.
package reconcile

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/medtrack-api/internal/domain/entity"
)

// SumSigned agrega ambas colecciones en una sola vista combinada por clave:
// las salidas aportan -|q| y las inspecciones +|q|. Un total de cero
// significa clave conciliada. Una partida sin cantidad aporta cero y una
// clave presente en una sola colección igual aparece en el resultado.
func SumSigned(outgoing, inspected []*entity.SpecItem) map[entity.ItemKey]decimal.Decimal {
	sums := make(map[entity.ItemKey]decimal.Decimal, len(outgoing)+len(inspected))
	for _, it := range outgoing {
		k := it.Key()
		sums[k] = sums[k].Sub(it.Qty().Abs())
	}
	for _, it := range inspected {
		k := it.Key()
		sums[k] = sums[k].Add(it.Qty().Abs())
	}
	return sums
}

// SumAbsolute agrega una colección por clave en magnitudes sin signo.
// No mezclar con SumSigned: cada modo sirve una salida distinta
// (reporte de discrepancias vs plan de traslado).
func SumAbsolute(items []*entity.SpecItem) map[entity.ItemKey]decimal.Decimal {
	sums := make(map[entity.ItemKey]decimal.Decimal, len(items))
	for _, it := range items {
		k := it.Key()
		sums[k] = sums[k].Add(it.Qty().Abs())
	}
	return sums
}

// unionKeys devuelve la unión ordenada de las claves de ambos mapas,
// para que los recorridos sean deterministas.
func unionKeys(a, b map[entity.ItemKey]decimal.Decimal) []entity.ItemKey {
	seen := make(map[entity.ItemKey]struct{}, len(a)+len(b))
	keys := make([]entity.ItemKey, 0, len(a)+len(b))
	for k := range a {
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	for k := range b {
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	sortKeys(keys)
	return keys
}

func sortKeys(keys []entity.ItemKey) {
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].ProductNum != keys[j].ProductNum {
			return keys[i].ProductNum < keys[j].ProductNum
		}
		if keys[i].Expiry != keys[j].Expiry {
			return keys[i].Expiry < keys[j].Expiry
		}
		return keys[i].Lot < keys[j].Lot
	})
}

// medicationNames recuerda el primer nombre de medicamento visto por clave
// para enriquecer los registros de discrepancia (campo opcional).
func medicationNames(collections ...[]*entity.SpecItem) map[entity.ItemKey]string {
	names := make(map[entity.ItemKey]string)
	for _, items := range collections {
		for _, it := range items {
			if it.MedicationName == "" {
				continue
			}
			k := it.Key()
			if _, ok := names[k]; !ok {
				names[k] = it.MedicationName
			}
		}
	}
	return names
}
