package billing

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/abmepi/financeiro-api/internal/domain/entity"
	"github.com/abmepi/financeiro-api/internal/domain/repository"
	"github.com/abmepi/financeiro-api/internal/infrastructure/report"
)

// StatusAtrasado é derivado na leitura: mensalidade pendente com vencimento
// no passado. Nunca é gravado no banco.
const StatusAtrasado = "atrasado"

// ItemExtrato é uma mensalidade enriquecida para exibição e exportação.
type ItemExtrato struct {
	Mensalidade     *entity.Mensalidade
	NomeAssociado   string
	CPF             string
	NomeTipo        string
	StatusExibicao  string
	DiasAtraso      int
	ValorAtualizado decimal.Decimal
}

// ExtratoUseCase lista e exporta o extrato de mensalidades.
type ExtratoUseCase struct {
	mensalidadeRepo repository.MensalidadeRepository
	associadoRepo   repository.AssociadoRepository
	tipoRepo        repository.TipoMensalidadeRepository

	agora func() time.Time
}

// NewExtratoUseCase constrói o caso de uso.
func NewExtratoUseCase(
	mensalidadeRepo repository.MensalidadeRepository,
	associadoRepo repository.AssociadoRepository,
	tipoRepo repository.TipoMensalidadeRepository,
) *ExtratoUseCase {
	return &ExtratoUseCase{
		mensalidadeRepo: mensalidadeRepo,
		associadoRepo:   associadoRepo,
		tipoRepo:        tipoRepo,
		agora:           time.Now,
	}
}

// Listar devolve o extrato com status de exibição, dias de atraso e valor
// atualizado derivados na hora da consulta.
func (uc *ExtratoUseCase) Listar(ctx context.Context, f repository.MensalidadeFilter) ([]ItemExtrato, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// O filtro por "atrasado" é resolvido aqui: no banco só existem
	// pendente, pago e cancelado.
	filtrarAtrasadas := f.Status == StatusAtrasado
	if filtrarAtrasadas {
		f.Status = entity.StatusPendente
	}

	mensalidades, err := uc.mensalidadeRepo.List(f)
	if err != nil {
		return nil, fmt.Errorf("listar mensalidades: %w", err)
	}

	hoje := uc.agora()
	associados := map[string]*entity.Associado{}
	tipos := map[string]*entity.TipoMensalidade{}

	var itens []ItemExtrato
	for _, m := range mensalidades {
		dias := m.DiasAtraso(hoje)
		if filtrarAtrasadas && dias == 0 {
			continue
		}

		associado, ok := associados[m.AssociadoID]
		if !ok {
			if associado, err = uc.associadoRepo.GetByID(m.AssociadoID); err != nil {
				return nil, fmt.Errorf("buscar associado %s: %w", m.AssociadoID, err)
			}
			associados[m.AssociadoID] = associado
		}
		tipo, ok := tipos[m.TipoID]
		if !ok {
			if tipo, err = uc.tipoRepo.GetByID(m.TipoID); err != nil {
				return nil, fmt.Errorf("buscar tipo %s: %w", m.TipoID, err)
			}
			tipos[m.TipoID] = tipo
		}

		status := m.Status
		if dias > 0 {
			status = StatusAtrasado
		}
		itens = append(itens, ItemExtrato{
			Mensalidade:     m,
			NomeAssociado:   associado.Nome,
			CPF:             associado.CPF,
			NomeTipo:        tipo.Nome,
			StatusExibicao:  status,
			DiasAtraso:      dias,
			ValorAtualizado: m.ValorAtualizado(hoje),
		})
	}
	return itens, nil
}

// ExportarCSV grava o extrato filtrado em CSV.
func (uc *ExtratoUseCase) ExportarCSV(ctx context.Context, w io.Writer, f repository.MensalidadeFilter) error {
	itens, err := uc.Listar(ctx, f)
	if err != nil {
		return err
	}
	return report.EscreverCSV(w, linhasDe(itens))
}

// ExportarXLSX devolve a planilha do extrato filtrado.
func (uc *ExtratoUseCase) ExportarXLSX(ctx context.Context, f repository.MensalidadeFilter) ([]byte, error) {
	itens, err := uc.Listar(ctx, f)
	if err != nil {
		return nil, err
	}
	return report.EscreverXLSX(linhasDe(itens))
}

// RelatorioPDF devolve o relatório tabular do extrato filtrado.
func (uc *ExtratoUseCase) RelatorioPDF(ctx context.Context, titulo string, f repository.MensalidadeFilter) ([]byte, error) {
	itens, err := uc.Listar(ctx, f)
	if err != nil {
		return nil, err
	}
	return report.EscreverRelatorioPDF(titulo, linhasDe(itens))
}

func linhasDe(itens []ItemExtrato) []report.LinhaExtrato {
	linhas := make([]report.LinhaExtrato, 0, len(itens))
	for _, it := range itens {
		m := it.Mensalidade
		linhas = append(linhas, report.LinhaExtrato{
			Associado:      it.NomeAssociado,
			CPF:            it.CPF,
			Tipo:           it.NomeTipo,
			Valor:          m.Valor,
			DataVencimento: m.DataVencimento,
			Status:         it.StatusExibicao,
			DataPagamento:  m.DataPagamento,
			FormaPagamento: m.FormaPagamento,
			Observacoes:    m.Observacoes,
		})
	}
	return linhas
}
