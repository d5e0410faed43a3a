package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/abmepi/financeiro-api/internal/domain"
	"github.com/abmepi/financeiro-api/internal/domain/entity"
	"github.com/abmepi/financeiro-api/internal/domain/repository"
)

var formasValidas = map[string]bool{
	entity.FormaPix:           true,
	entity.FormaBoleto:        true,
	entity.FormaCartaoCredito: true,
	entity.FormaCartaoDebito:  true,
	entity.FormaDinheiro:      true,
	entity.FormaTransferencia: true,
	entity.FormaOutro:         true,
}

// ParamsPagamento descreve a quitação de uma mensalidade.
type ParamsPagamento struct {
	MensalidadeID  string
	FormaPagamento string
	DataPagamento  time.Time
	// ValorPago zero significa o valor atualizado (com multa e juros) na data
	// do pagamento.
	ValorPago   decimal.Decimal
	Comprovante string
	Observacoes string
}

// PagamentoUseCase registra quitações e executa as ações em lote do extrato.
type PagamentoUseCase struct {
	txRunner        TxRunner
	mensalidadeRepo repository.MensalidadeRepository
}

// NewPagamentoUseCase constrói o caso de uso.
func NewPagamentoUseCase(txRunner TxRunner, mensalidadeRepo repository.MensalidadeRepository) *PagamentoUseCase {
	return &PagamentoUseCase{txRunner: txRunner, mensalidadeRepo: mensalidadeRepo}
}

// Registrar quita a mensalidade e grava o registro de pagamento na mesma
// transação. Mensalidade já paga ou cancelada devolve domain.ErrJaQuitada.
func (uc *PagamentoUseCase) Registrar(ctx context.Context, p ParamsPagamento) (*entity.Pagamento, error) {
	if p.MensalidadeID == "" {
		return nil, domain.ErrEntradaInvalida
	}
	if !formasValidas[p.FormaPagamento] {
		return nil, fmt.Errorf("forma de pagamento %q: %w", p.FormaPagamento, domain.ErrEntradaInvalida)
	}
	if p.DataPagamento.IsZero() {
		p.DataPagamento = time.Now()
	}

	var pagamento *entity.Pagamento
	err := uc.txRunner.WithinTx(ctx, func(
		mensalidadeRepo repository.MensalidadeRepository,
		pagamentoRepo repository.PagamentoRepository,
	) error {
		m, err := mensalidadeRepo.GetByID(p.MensalidadeID)
		if err != nil {
			return fmt.Errorf("buscar mensalidade: %w", err)
		}

		ok, err := mensalidadeRepo.MarkPaidIfPending(p.MensalidadeID, p.DataPagamento, p.FormaPagamento)
		if err != nil {
			return fmt.Errorf("quitar mensalidade: %w", err)
		}
		if !ok {
			return fmt.Errorf("mensalidade %s: %w", p.MensalidadeID, domain.ErrJaQuitada)
		}

		valor := p.ValorPago
		if valor.IsZero() {
			valor = m.ValorAtualizado(p.DataPagamento)
		}
		pagamento = &entity.Pagamento{
			MensalidadeID:  m.ID,
			ValorPago:      valor,
			FormaPagamento: p.FormaPagamento,
			DataPagamento:  p.DataPagamento,
			Comprovante:    p.Comprovante,
			Observacoes:    p.Observacoes,
		}
		return pagamentoRepo.Create(pagamento)
	})
	if err != nil {
		return nil, err
	}
	return pagamento, nil
}

// BaixaEmLote dá baixa nas mensalidades pendentes do associado. O escopo por
// associado é obrigatório: um lote nunca atinge mensalidades de terceiros.
func (uc *PagamentoUseCase) BaixaEmLote(ctx context.Context, ids []string, associadoID string, dataPagamento time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(ids) == 0 || associadoID == "" {
		return 0, domain.ErrEntradaInvalida
	}
	if dataPagamento.IsZero() {
		dataPagamento = time.Now()
	}
	return uc.mensalidadeRepo.BulkMarkPaid(ids, associadoID, dataPagamento)
}

// ExcluirEmLote exclui mensalidades do associado, com a mesma guarda de escopo.
func (uc *PagamentoUseCase) ExcluirEmLote(ctx context.Context, ids []string, associadoID string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(ids) == 0 || associadoID == "" {
		return 0, domain.ErrEntradaInvalida
	}
	return uc.mensalidadeRepo.BulkDelete(ids, associadoID)
}
