package entity

import "time"

// ItemKey identifica de forma única un lote de medicamento entre los
// inventarios de ambas compañías: (código de producto, vencimiento, lote).
// El vencimiento se normaliza a fecha (YYYY-MM-DD) para que la clave sea
// comparable y usable como clave de mapa.
type ItemKey struct {
	ProductNum string
	Expiry     string
	Lot        string
}

// NewItemKey construye la clave canónica. Un lote vacío o un vencimiento
// cero son partes válidas de la clave, no un error.
func NewItemKey(productNum string, expiry time.Time, lot string) ItemKey {
	e := ""
	if !expiry.IsZero() {
		e = expiry.Format("2006-01-02")
	}
	return ItemKey{ProductNum: productNum, Expiry: e, Lot: lot}
}

// ExpiryTime devuelve el vencimiento de la clave como time.Time
// (cero si la clave no tiene vencimiento).
func (k ItemKey) ExpiryTime() time.Time {
	if k.Expiry == "" {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", k.Expiry)
	if err != nil {
		return time.Time{}
	}
	return t
}
