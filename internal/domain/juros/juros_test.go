package juros

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dia(ano, mes, d int) time.Time {
	return time.Date(ano, time.Month(mes), d, 0, 0, 0, 0, time.UTC)
}

func TestDiasAtraso(t *testing.T) {
	venc := dia(2025, 3, 10)

	assert.Equal(t, 0, DiasAtraso(venc, dia(2025, 3, 10)))
	assert.Equal(t, 0, DiasAtraso(venc, dia(2025, 3, 1)))
	assert.Equal(t, 1, DiasAtraso(venc, dia(2025, 3, 11)))
	assert.Equal(t, 31, DiasAtraso(venc, dia(2025, 4, 10)))

	// A hora do dia não conta: só datas truncadas entram no cálculo.
	tarde := time.Date(2025, 3, 11, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, 1, DiasAtraso(venc, tarde))
}

func TestCalcularEmDia(t *testing.T) {
	base := decimal.RequireFromString("100.00")
	venc := dia(2025, 3, 10)

	dias, valor := Calcular(base, venc, venc)
	assert.Equal(t, 0, dias)
	assert.True(t, base.Equal(valor), "valor em dia deve ser a base intacta: %s", valor)

	dias, valor = Calcular(base, venc, dia(2025, 3, 5))
	assert.Equal(t, 0, dias)
	assert.True(t, base.Equal(valor))
}

func TestCalcularComAtraso(t *testing.T) {
	base := decimal.RequireFromString("100.00")
	venc := dia(2025, 3, 10)

	// 100.00 + 2% de multa + 10 dias * 0.1% = 103.00
	dias, valor := Calcular(base, venc, dia(2025, 3, 20))
	require.Equal(t, 10, dias)
	assert.Equal(t, "103.00", valor.StringFixed(2))

	// 1 dia: 100.00 + 2.00 + 0.10
	_, valor = Calcular(base, venc, dia(2025, 3, 11))
	assert.Equal(t, "102.10", valor.StringFixed(2))
}

func TestCalcularArredondaParaDuasCasas(t *testing.T) {
	base := decimal.RequireFromString("33.33")
	venc := dia(2025, 1, 31)

	// 33.33 + 0.6666 + 7 * 0.03333 = 34.22991 -> 34.23
	_, valor := Calcular(base, venc, dia(2025, 2, 7))
	assert.Equal(t, "34.23", valor.StringFixed(2))
	assert.True(t, valor.Exponent() >= -2)
}

func TestCalcularMonotonoNoAtraso(t *testing.T) {
	base := decimal.RequireFromString("250.50")
	venc := dia(2025, 6, 1)

	anterior := base
	for d := 1; d <= 60; d++ {
		_, valor := Calcular(base, venc, venc.AddDate(0, 0, d))
		assert.True(t, valor.GreaterThan(anterior),
			"valor com %d dias deve superar o do dia anterior", d)
		anterior = valor
	}
}
