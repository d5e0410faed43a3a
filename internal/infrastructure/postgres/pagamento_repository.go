package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abmepi/financeiro-api/internal/domain/entity"
	"github.com/abmepi/financeiro-api/internal/domain/repository"
)

var _ repository.PagamentoRepository = (*PagamentoRepo)(nil)

// PagamentoRepo implementação de PagamentoRepository (usável com pool ou tx).
type PagamentoRepo struct {
	q Querier
}

// NewPagamentoRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewPagamentoRepository(q Querier) *PagamentoRepo {
	return &PagamentoRepo{q: q}
}

// Create registra uma quitação.
func (r *PagamentoRepo) Create(p *entity.Pagamento) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.CreatedAt = time.Now()

	query := `
		INSERT INTO pagamentos (id, mensalidade_id, valor_pago, forma_pagamento, data_pagamento, comprovante, observacoes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.MensalidadeID, p.ValorPago, p.FormaPagamento, p.DataPagamento,
		nullIfEmpty(p.Comprovante), nullIfEmpty(p.Observacoes), p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert pagamento: %w", err)
	}
	return nil
}

// ListByMensalidade devolve os pagamentos de uma mensalidade em ordem cronológica.
func (r *PagamentoRepo) ListByMensalidade(mensalidadeID string) ([]*entity.Pagamento, error) {
	query := `
		SELECT id, mensalidade_id, valor_pago, forma_pagamento, data_pagamento, comprovante, observacoes, created_at
		FROM pagamentos WHERE mensalidade_id = $1
		ORDER BY data_pagamento`
	rows, err := r.q.Query(context.Background(), query, mensalidadeID)
	if err != nil {
		return nil, fmt.Errorf("list pagamentos: %w", err)
	}
	defer rows.Close()

	var out []*entity.Pagamento
	for rows.Next() {
		var p entity.Pagamento
		var comprovante, observacoes *string
		if err := rows.Scan(&p.ID, &p.MensalidadeID, &p.ValorPago, &p.FormaPagamento,
			&p.DataPagamento, &comprovante, &observacoes, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pagamento: %w", err)
		}
		if comprovante != nil {
			p.Comprovante = *comprovante
		}
		if observacoes != nil {
			p.Observacoes = *observacoes
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
