package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/abmepi/financeiro-api/internal/application/billing"
	"github.com/abmepi/financeiro-api/internal/domain/repository"
)

// Ensure TxRunner implements billing.TxRunner.
var _ billing.TxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// WithinTx inicia uma transação, executa fn com repos atados à tx e faz
// Commit ou Rollback.
func (r *TxRunner) WithinTx(ctx context.Context, fn func(
	mensalidadeRepo repository.MensalidadeRepository,
	pagamentoRepo repository.PagamentoRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	mensalidadeRepo := NewMensalidadeRepository(tx)
	pagamentoRepo := NewPagamentoRepository(tx)

	if err := fn(mensalidadeRepo, pagamentoRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
