package report

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linhasDeTeste() []LinhaExtrato {
	pago := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)
	return []LinhaExtrato{
		{
			Associado:      "João da Silva",
			CPF:            "123.456.789-00",
			Tipo:           "Mensalidade Social",
			Valor:          decimal.RequireFromString("150.00"),
			DataVencimento: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			Status:         "pago",
			DataPagamento:  &pago,
			FormaPagamento: "pix",
		},
		{
			Associado:      "Maria, Oliveira \"Neta\"",
			CPF:            "987.654.321-00",
			Tipo:           "Taxa Extra",
			Valor:          decimal.RequireFromString("75.50"),
			DataVencimento: time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC),
			Status:         "atrasado",
			Observacoes:    "parcela única",
		},
	}
}

func TestEscreverCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EscreverCSV(&buf, linhasDeTeste()))

	registros, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, registros, 3)

	assert.Equal(t, cabecalhoCSV, registros[0])

	primeira := registros[1]
	assert.Equal(t, "João da Silva", primeira[0])
	assert.Equal(t, "150.00", primeira[3])
	assert.Equal(t, "10/03/2025", primeira[4])
	assert.Equal(t, "pago", primeira[5])
	assert.Equal(t, "15/03/2025", primeira[6])
	assert.Equal(t, "pix", primeira[7])

	// Vírgula e aspas no nome sobrevivem ao ciclo de escrita e leitura.
	segunda := registros[2]
	assert.Equal(t, `Maria, Oliveira "Neta"`, segunda[0])
	assert.Empty(t, segunda[6])
	assert.Empty(t, segunda[7])
	assert.Equal(t, "parcela única", segunda[8])
}

func TestEscreverCSVVazio(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EscreverCSV(&buf, nil))

	registros, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, registros, 1)
	assert.Equal(t, cabecalhoCSV, registros[0])
}

func TestNomeArquivoCarne(t *testing.T) {
	data := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "carne_Joao_da_Silva_20250310.pdf",
		NomeArquivoCarne("João da Silva", data))
	assert.Equal(t, "carne_Maria_Jose_d_Avila_20250310.pdf",
		NomeArquivoCarne("  Maria-José d'Ávila  ", data))
}

func TestEscreverXLSX(t *testing.T) {
	saida, err := EscreverXLSX(linhasDeTeste())
	require.NoError(t, err)
	// XLSX é um ZIP: assinatura PK.
	assert.True(t, bytes.HasPrefix(saida, []byte("PK")))
}

func TestEscreverRelatorioPDF(t *testing.T) {
	saida, err := EscreverRelatorioPDF("Relatório de Mensalidades", linhasDeTeste())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(saida, []byte("%PDF")))
}
