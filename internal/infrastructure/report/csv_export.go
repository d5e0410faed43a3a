package report

import (
	"encoding/csv"
	"fmt"
	"io"
)

var cabecalhoCSV = []string{
	"Associado", "CPF", "Tipo", "Valor", "Data Vencimento",
	"Status", "Data Pagamento", "Forma Pagamento", "Observações",
}

// EscreverCSV grava o extrato em CSV com cabeçalho fixo e datas dd/mm/aaaa.
func EscreverCSV(w io.Writer, linhas []LinhaExtrato) error {
	escritor := csv.NewWriter(w)
	if err := escritor.Write(cabecalhoCSV); err != nil {
		return fmt.Errorf("escrever cabeçalho CSV: %w", err)
	}
	for _, l := range linhas {
		registro := []string{
			l.Associado,
			l.CPF,
			l.Tipo,
			l.Valor.StringFixed(2),
			formatarData(l.DataVencimento),
			l.Status,
			formatarDataOpcional(l.DataPagamento),
			l.FormaPagamento,
			l.Observacoes,
		}
		if err := escritor.Write(registro); err != nil {
			return fmt.Errorf("escrever linha CSV: %w", err)
		}
	}
	escritor.Flush()
	return escritor.Error()
}
