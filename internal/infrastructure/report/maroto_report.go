package report

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
)

var (
	corPrimaria = &props.Color{Red: 0, Green: 70, Blue: 127}
	corCinza    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// EscreverRelatorioPDF gera o relatório tabular do extrato em A4 retrato,
// com cabeçalho, tabela de mensalidades e total geral.
func EscreverRelatorioPDF(titulo string, linhas []LinhaExtrato) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(titulo, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(cabecalhoRelatorio(titulo, len(linhas)))
	m.AddRows(line.NewRow(1, props.Line{Color: corPrimaria, Thickness: 0.5}))
	m.AddRows(cabecalhoTabela())
	for _, l := range linhas {
		m.AddRows(linhaTabela(l))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: corPrimaria, Thickness: 0.3}))
	m.AddRows(totalRelatorio(linhas))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("gerar relatório PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func cabecalhoRelatorio(titulo string, quantidade int) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(titulo, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: corPrimaria, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("%d mensalidade(s)", quantidade), props.Text{
				Size: 9, Align: align.Right, Top: 3, Color: corCinza,
			}),
		),
	)
}

func cabecalhoTabela() core.Row {
	negrito := props.Text{Style: fontstyle.Bold, Size: 8, Color: corPrimaria}
	direita := props.Text{Style: fontstyle.Bold, Size: 8, Color: corPrimaria, Align: align.Right}
	return row.New(7).Add(
		col.New(4).Add(text.New("Associado", negrito)),
		col.New(2).Add(text.New("Tipo", negrito)),
		col.New(2).Add(text.New("Vencimento", negrito)),
		col.New(2).Add(text.New("Status", negrito)),
		col.New(2).Add(text.New("Valor", direita)),
	)
}

func linhaTabela(l LinhaExtrato) core.Row {
	normal := props.Text{Size: 8}
	direita := props.Text{Size: 8, Align: align.Right}
	return row.New(5).Add(
		col.New(4).Add(text.New(l.Associado, normal)),
		col.New(2).Add(text.New(l.Tipo, normal)),
		col.New(2).Add(text.New(formatarData(l.DataVencimento), normal)),
		col.New(2).Add(text.New(l.Status, normal)),
		col.New(2).Add(text.New("R$ "+l.Valor.StringFixed(2), direita)),
	)
}

func totalRelatorio(linhas []LinhaExtrato) core.Row {
	total := decimal.Zero
	for _, l := range linhas {
		total = total.Add(l.Valor)
	}
	return row.New(8).Add(
		col.New(8).Add(text.New("TOTAL", props.Text{
			Style: fontstyle.Bold, Size: 10, Top: 2,
		})),
		col.New(4).Add(text.New("R$ "+total.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2, Color: corPrimaria,
		})),
	)
}
