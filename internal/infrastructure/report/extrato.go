// Package report gera os artefatos de exportação do extrato de mensalidades:
// CSV, planilha XLSX e relatório tabular em PDF.
package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// LinhaExtrato é uma linha do extrato pronta para exportar. Status já vem na
// forma exibida (pendente, pago, cancelado ou atrasado, derivado na leitura).
type LinhaExtrato struct {
	Associado      string
	CPF            string
	Tipo           string
	Valor          decimal.Decimal
	DataVencimento time.Time
	Status         string
	DataPagamento  *time.Time
	FormaPagamento string
	Observacoes    string
}

func formatarData(t time.Time) string {
	return t.Format("02/01/2006")
}

func formatarDataOpcional(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatarData(*t)
}
