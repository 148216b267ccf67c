package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direcciones de una partida según la colección de la que proviene.
const (
	DirectionOutgoing  = "OUTGOING"  // salida registrada por la compañía que despacha
	DirectionInspected = "INSPECTED" // recepción verificada por la compañía receptora
)

// SpecItem representa una partida (línea) de un movimiento: qué producto,
// de qué lote y vencimiento, y en qué cantidad. La dirección (salida o
// inspección) la aporta la colección de la que proviene, no la entidad.
type SpecItem struct {
	ID             string
	CompanyID      string
	Date           time.Time
	ProductNum     string
	MedicationName string
	Expiry         time.Time
	Lot            string
	Quantity       *decimal.Decimal // nil = sin cantidad registrada; cuenta como cero
	CreatedAt      time.Time
}

// Key devuelve la clave de identidad (producto, vencimiento, lote).
func (s *SpecItem) Key() ItemKey {
	return NewItemKey(s.ProductNum, s.Expiry, s.Lot)
}

// Qty cantidad efectiva de la partida (nil cuenta como cero).
func (s *SpecItem) Qty() decimal.Decimal {
	if s.Quantity == nil {
		return decimal.Zero
	}
	return *s.Quantity
}
