package reconcile

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/medtrack-api/internal/domain/entity"
)

func TestSumSignedSalidaNegativaInspeccionPositiva(t *testing.T) {
	out := []*entity.SpecItem{specItem("P0001", "L1", "10")}
	in := []*entity.SpecItem{specItem("P0001", "L1", "7")}

	sums := SumSigned(out, in)

	require.Len(t, sums, 1)
	got := sums[out[0].Key()]
	assert.True(t, got.Equal(decimal.NewFromInt(-3)), "esperado -3, obtenido %s", got)
}

func TestSumSignedMagnitudesSinImportarSigno(t *testing.T) {
	// -10 en salida pesa igual que 10.
	out := []*entity.SpecItem{specItem("P0001", "L1", "-10")}
	in := []*entity.SpecItem{specItem("P0001", "L1", "10")}

	sums := SumSigned(out, in)
	assert.True(t, sums[out[0].Key()].IsZero())
}

func TestSumSignedClaveDeUnSoloLado(t *testing.T) {
	in := []*entity.SpecItem{specItem("P0002", "L1", "4")}

	sums := SumSigned(nil, in)

	require.Len(t, sums, 1)
	assert.True(t, sums[in[0].Key()].Equal(decimal.NewFromInt(4)))
}

func TestSumAbsoluteAgregaPorClave(t *testing.T) {
	items := []*entity.SpecItem{
		specItem("P0001", "L1", "4"),
		specItem("P0001", "L1", "-6"),
		specItem("P0002", "L1", "3"),
	}

	sums := SumAbsolute(items)

	require.Len(t, sums, 2)
	assert.True(t, sums[items[0].Key()].Equal(decimal.NewFromInt(10)))
	assert.True(t, sums[items[2].Key()].Equal(decimal.NewFromInt(3)))
}

func TestSumAbsoluteCantidadNulaAportaCero(t *testing.T) {
	item := specItem("P0001", "L1", "0")
	item.Quantity = nil

	sums := SumAbsolute([]*entity.SpecItem{item})

	require.Len(t, sums, 1)
	assert.True(t, sums[item.Key()].IsZero())
}

func TestUnionKeysOrdenDeterminista(t *testing.T) {
	a := SumAbsolute([]*entity.SpecItem{
		specItem("P0002", "L1", "1"),
		specItem("P0001", "L2", "1"),
	})
	b := SumAbsolute([]*entity.SpecItem{
		specItem("P0001", "L1", "1"),
		specItem("P0002", "L1", "1"),
	})

	keys := unionKeys(a, b)

	require.Len(t, keys, 3)
	assert.Equal(t, "P0001", keys[0].ProductNum)
	assert.Equal(t, "L1", keys[0].Lot)
	assert.Equal(t, "P0001", keys[1].ProductNum)
	assert.Equal(t, "L2", keys[1].Lot)
	assert.Equal(t, "P0002", keys[2].ProductNum)
}

func TestMedicationNamesPrimerNombreVisto(t *testing.T) {
	first := specItem("P0001", "L1", "1")
	first.MedicationName = "Amoxicilina 500mg"
	second := specItem("P0001", "L1", "1")
	second.MedicationName = "Otro nombre"
	empty := specItem("P0002", "L1", "1")
	empty.MedicationName = ""

	names := medicationNames([]*entity.SpecItem{first, second, empty})

	assert.Equal(t, "Amoxicilina 500mg", names[first.Key()])
	_, ok := names[empty.Key()]
	assert.False(t, ok, "una partida sin nombre no debe registrar entrada")
}
