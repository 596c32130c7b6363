package seed_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tenebrio-farm/internal/infrastructure/seed"
)

func TestReadCSV_AgrupaSalasYLotes(t *testing.T) {
	csv := "sala;lote;pallet;bandejas\n" +
		"Sala 1;2026-01;PAL-001;10\n" +
		"Sala 1;2026-01;PAL-002;8\n" +
		"Sala 2;2026-02;PAL-003;12\n"

	ref, err := seed.ReadCSV(strings.NewReader(csv), "")
	require.NoError(t, err)

	require.Len(t, ref.Rooms, 2)
	require.Len(t, ref.BatchMonths, 2)
	require.Len(t, ref.Pallets, 3)

	assert.Equal(t, "Sala 1", ref.Rooms[0].Name)
	assert.Equal(t, "2026-01-31", ref.BatchMonths[0].EndDate.Format("2006-01-02"))
	assert.Equal(t, "2026-02-28", ref.BatchMonths[1].EndDate.Format("2006-01-02"))
	assert.Equal(t, 8, ref.Pallets[1].TrayCount)
	assert.Equal(t, seed.RoomID("Sala 1"), ref.Pallets[1].RoomID)
	assert.Equal(t, seed.PalletID("PAL-003"), ref.Pallets[2].ID)
}

func TestReadCSV_Latin1(t *testing.T) {
	// "Sala Añejo" en ISO-8859-1: ñ = 0xF1
	raw := []byte("Sala A\xf1ejo;2026-03;PAL-009;5\n")
	ref, err := seed.ReadCSV(bytes.NewReader(raw), "latin1")
	require.NoError(t, err)
	require.Len(t, ref.Rooms, 1)
	assert.Equal(t, "Sala Añejo", ref.Rooms[0].Name)
}

func TestReadCSV_Errores(t *testing.T) {
	_, err := seed.ReadCSV(strings.NewReader("Sala 1;2026-01;PAL-001;diez\n"), "")
	assert.Error(t, err, "bandejas no numéricas")

	_, err = seed.ReadCSV(strings.NewReader("Sala 1;enero;PAL-001;10\n"), "")
	assert.Error(t, err, "lote sin formato YYYY-MM")

	_, err = seed.ReadCSV(strings.NewReader("Sala 1;2026-01;PAL-001;10\n"), "ebcdic")
	assert.Error(t, err)
}

func TestStatements_EscapaComillas(t *testing.T) {
	ref, err := seed.ReadCSV(strings.NewReader("Sala d'Or;2026-01;PAL-001;10\n"), "")
	require.NoError(t, err)

	stmts := seed.Statements(ref)
	require.Len(t, stmts, 3)
	assert.Contains(t, stmts[0], "'Sala d''Or'")
	assert.Contains(t, stmts[2], "ON CONFLICT DO NOTHING")
}
