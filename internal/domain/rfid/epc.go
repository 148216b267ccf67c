// Package rfid decodifica etiquetas EPC de medicamentos y genera los
// alias de lote que viajan dentro de ellas.
package rfid

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/tu-usuario/medtrack-api/internal/domain"
)

// Estructura de una etiqueta: prefijo(4) + producto(5) + vencimiento
// YYMMDD(6) + alias de lote(9).
const (
	prefixLen  = 4
	productLen = 5
	expiryLen  = 6

	// HashLength largo del alias de lote dentro de la etiqueta.
	HashLength = 9

	// MaxHashAttempts sufijos probados antes de declarar agotado el
	// espacio de alias para un lote.
	MaxHashAttempts = 10000

	// TagLength largo total de una etiqueta válida.
	TagLength = prefixLen + productLen + expiryLen + HashLength
)

// Ventana de vencimientos plausibles; fuera de ella la etiqueta se
// considera corrupta.
var (
	MinExpiryDate = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	MaxExpiryDate = time.Date(2100, 12, 31, 0, 0, 0, 0, time.UTC)
)

// Tag campos decodificados de una etiqueta EPC.
type Tag struct {
	ProductNum string
	Expiry     time.Time
	HashedLot  string
}

// ParseTag decodifica una etiqueta EPC. Devuelve domain.ErrInvalidInput
// envuelto cuando el largo, el vencimiento o la ventana no cuadran.
func ParseTag(epc string) (*Tag, error) {
	epc = strings.TrimSpace(epc)
	if len(epc) != TagLength {
		return nil, fmt.Errorf("%w: etiqueta de largo %d, esperado %d", domain.ErrInvalidInput, len(epc), TagLength)
	}

	product := epc[prefixLen : prefixLen+productLen]
	rawExpiry := epc[prefixLen+productLen : prefixLen+productLen+expiryLen]
	hashedLot := epc[prefixLen+productLen+expiryLen:]

	expiry, err := time.Parse("060102", rawExpiry)
	if err != nil {
		return nil, fmt.Errorf("%w: vencimiento ilegible %q", domain.ErrInvalidInput, rawExpiry)
	}
	if expiry.Before(MinExpiryDate) || expiry.After(MaxExpiryDate) {
		return nil, fmt.Errorf("%w: vencimiento %s fuera de ventana", domain.ErrInvalidInput, expiry.Format("2006-01-02"))
	}

	return &Tag{
		ProductNum: product,
		Expiry:     expiry,
		HashedLot:  hashedLot,
	}, nil
}

// HashLot genera un alias determinista de 9 caracteres para un número
// de lote, probando sufijos crecientes hasta encontrar uno que no
// colisione con los alias ya existentes. Con el mismo conjunto de
// existentes el resultado es reproducible.
func HashLot(code string, existing map[string]struct{}) (string, error) {
	for i := 0; i < MaxHashAttempts; i++ {
		sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%d", code, i)))
		candidate := strings.ToUpper(hex.EncodeToString(sum[:])[:HashLength])
		if _, taken := existing[candidate]; !taken {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: lote %q", domain.ErrHashExhausted, code)
}
