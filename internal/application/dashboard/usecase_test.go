package dashboard

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

func TestFillSeries_CompletaMesesSinVentas(t *testing.T) {
	now := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	rows := []repository.MonthTotal{
		{Month: "2024-01", Total: decimal.RequireFromString("120.50")},
		{Month: "2024-03", Total: decimal.RequireFromString("80.00")},
	}

	out := fillSeries(rows, now, 3)
	require.Len(t, out, 3)
	assert.Equal(t, "2024-01", out[0].Month)
	assert.True(t, out[0].Total.Equal(decimal.RequireFromString("120.50")))
	assert.Equal(t, "2024-02", out[1].Month)
	assert.True(t, out[1].Total.IsZero(), "el mes sin ventas va en cero")
	assert.Equal(t, "2024-03", out[2].Month)
}

func TestFillSeries_CruzaElCambioDeAnio(t *testing.T) {
	now := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)

	out := fillSeries(nil, now, 4)
	require.Len(t, out, 4)
	assert.Equal(t, "2023-11", out[0].Month)
	assert.Equal(t, "2024-02", out[3].Month)
}

func TestFillCountSeries_CompletaMesesSinAltas(t *testing.T) {
	now := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	rows := []repository.MonthCount{{Month: "2024-02", Total: 3}}

	out := fillCountSeries(rows, now, 3)
	require.Len(t, out, 3)
	assert.Equal(t, 0, out[0].Total)
	assert.Equal(t, 3, out[1].Total)
	assert.Equal(t, 0, out[2].Total)
}
