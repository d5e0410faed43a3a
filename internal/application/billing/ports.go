package billing

import (
	"context"

	"github.com/abmepi/financeiro-api/internal/domain/repository"
)

// TxRunner executa um callback com repositórios atados a uma mesma
// transação. A implementação Postgres faz commit/rollback; a de memória
// executa direto.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(
		mensalidadeRepo repository.MensalidadeRepository,
		pagamentoRepo repository.PagamentoRepository,
	) error) error
}
