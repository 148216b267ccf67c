package rfid

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/medtrack-api/internal/domain"
)

func TestParseTagValida(t *testing.T) {
	// prefijo(4) + producto(5) + vencimiento(6) + alias(9)
	tag, err := ParseTag("AB01P1234261231A1B2C3D4E")

	require.NoError(t, err)
	assert.Equal(t, "P1234", tag.ProductNum)
	assert.True(t, tag.Expiry.Equal(time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "A1B2C3D4E", tag.HashedLot)
}

func TestParseTagRecortaEspacios(t *testing.T) {
	tag, err := ParseTag("  AB01P1234261231A1B2C3D4E\n")

	require.NoError(t, err)
	assert.Equal(t, "P1234", tag.ProductNum)
}

func TestParseTagLargoInvalido(t *testing.T) {
	_, err := ParseTag("CORTA")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseTagVencimientoIlegible(t *testing.T) {
	_, err := ParseTag("AB01P1234XXYYZZA1B2C3D4E")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseTagVencimientoFueraDeVentana(t *testing.T) {
	// 2024 queda antes del inicio de la ventana.
	_, err := ParseTag("AB01P1234240101A1B2C3D4E")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHashLotDeterminista(t *testing.T) {
	a, err := HashLot("LOT-2025-001", nil)
	require.NoError(t, err)
	b, err := HashLot("LOT-2025-001", nil)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a, HashLength)
	assert.Equal(t, strings.ToUpper(a), a, "el alias siempre va en mayúsculas")
}

func TestHashLotEvitaColisiones(t *testing.T) {
	first, err := HashLot("LOT-2025-001", nil)
	require.NoError(t, err)

	existing := map[string]struct{}{first: {}}
	second, err := HashLot("LOT-2025-001", existing)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Len(t, second, HashLength)
}
