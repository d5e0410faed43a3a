package report

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/abmepi/financeiro-api/internal/domain/entity"
)

// EscreverXLSX monta a planilha do extrato com uma aba de resumo e uma de
// mensalidades, e devolve os bytes do arquivo.
func EscreverXLSX(linhas []LinhaExtrato) ([]byte, error) {
	f := excelize.NewFile()
	resumo := "Resumo"
	detalhe := "Mensalidades"
	f.SetSheetName("Sheet1", resumo)
	if _, err := f.NewSheet(detalhe); err != nil {
		return nil, fmt.Errorf("criar aba de mensalidades: %w", err)
	}

	total := decimal.Zero
	totalPago := decimal.Zero
	totalPendente := decimal.Zero
	for _, l := range linhas {
		total = total.Add(l.Valor)
		switch l.Status {
		case entity.StatusPago:
			totalPago = totalPago.Add(l.Valor)
		case entity.StatusCancelado:
		default: // pendente e atrasado
			totalPendente = totalPendente.Add(l.Valor)
		}
	}

	_ = f.SetCellValue(resumo, "A1", "Extrato de Mensalidades")
	_ = f.SetCellValue(resumo, "A3", "Quantidade")
	_ = f.SetCellValue(resumo, "B3", len(linhas))
	_ = f.SetCellValue(resumo, "A4", "Valor total")
	_ = f.SetCellValue(resumo, "B4", total.StringFixed(2))
	_ = f.SetCellValue(resumo, "A5", "Total pago")
	_ = f.SetCellValue(resumo, "B5", totalPago.StringFixed(2))
	_ = f.SetCellValue(resumo, "A6", "Total em aberto")
	_ = f.SetCellValue(resumo, "B6", totalPendente.StringFixed(2))

	for col, titulo := range cabecalhoCSV {
		celula, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(detalhe, celula, titulo)
	}
	for i, l := range linhas {
		valores := []any{
			l.Associado, l.CPF, l.Tipo, l.Valor.StringFixed(2),
			formatarData(l.DataVencimento), l.Status,
			formatarDataOpcional(l.DataPagamento), l.FormaPagamento, l.Observacoes,
		}
		for col, v := range valores {
			celula, _ := excelize.CoordinatesToCellName(col+1, i+2)
			_ = f.SetCellValue(detalhe, celula, v)
		}
	}
	_ = f.SetColWidth(detalhe, "A", "A", 32)
	_ = f.SetColWidth(detalhe, "B", "I", 16)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("gravar planilha: %w", err)
	}
	return buf.Bytes(), nil
}
