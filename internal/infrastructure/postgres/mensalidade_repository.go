package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/abmepi/financeiro-api/internal/domain"
	"github.com/abmepi/financeiro-api/internal/domain/entity"
	"github.com/abmepi/financeiro-api/internal/domain/repository"
)

var _ repository.MensalidadeRepository = (*MensalidadeRepo)(nil)

// MensalidadeRepo implementação de MensalidadeRepository (usável com pool ou tx).
type MensalidadeRepo struct {
	q Querier
}

// NewMensalidadeRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewMensalidadeRepository(q Querier) *MensalidadeRepo {
	return &MensalidadeRepo{q: q}
}

// Create persiste a mensalidade. O número sequencial de documento vem da
// sequence da tabela. A unicidade por (associado, tipo, competência) é do
// índice único parcial: violação vira domain.ErrDuplicado.
func (r *MensalidadeRepo) Create(m *entity.Mensalidade) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	agora := time.Now()
	m.CreatedAt = agora
	m.UpdatedAt = agora

	query := `
		INSERT INTO mensalidades (id, associado_id, tipo_id, valor, data_vencimento, status, observacoes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING numero`
	err := r.q.QueryRow(context.Background(), query,
		m.ID, m.AssociadoID, m.TipoID, m.Valor, m.DataVencimento,
		m.Status, nullIfEmpty(m.Observacoes), m.CreatedAt, m.UpdatedAt,
	).Scan(&m.Numero)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("mensalidade já existe para a competência: %w", domain.ErrDuplicado)
		}
		return fmt.Errorf("insert mensalidade: %w", err)
	}
	return nil
}

// GetByID busca uma mensalidade pelo ID.
func (r *MensalidadeRepo) GetByID(id string) (*entity.Mensalidade, error) {
	query := `
		SELECT id, numero, associado_id, tipo_id, valor, data_vencimento,
		       data_pagamento, status, forma_pagamento, observacoes,
		       created_at, updated_at
		FROM mensalidades WHERE id = $1`
	m, err := scanMensalidade(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNaoEncontrado
		}
		return nil, fmt.Errorf("get mensalidade: %w", err)
	}
	return m, nil
}

// List consulta mensalidades aplicando os filtros não vazios, ordenadas por
// vencimento e número.
func (r *MensalidadeRepo) List(f repository.MensalidadeFilter) ([]*entity.Mensalidade, error) {
	query := `
		SELECT m.id, m.numero, m.associado_id, m.tipo_id, m.valor, m.data_vencimento,
		       m.data_pagamento, m.status, m.forma_pagamento, m.observacoes,
		       m.created_at, m.updated_at
		FROM mensalidades m`

	var condicoes []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Categoria != "" {
		query += ` JOIN tipos_mensalidade t ON t.id = m.tipo_id`
		condicoes = append(condicoes, "t.categoria = "+arg(f.Categoria))
	}
	if len(f.IDs) > 0 {
		condicoes = append(condicoes, "m.id = ANY("+arg(f.IDs)+")")
	}
	if f.AssociadoID != "" {
		condicoes = append(condicoes, "m.associado_id = "+arg(f.AssociadoID))
	}
	if f.TipoID != "" {
		condicoes = append(condicoes, "m.tipo_id = "+arg(f.TipoID))
	}
	if f.Status != "" {
		condicoes = append(condicoes, "m.status = "+arg(f.Status))
	}
	if f.VencimentoDe != nil {
		condicoes = append(condicoes, "m.data_vencimento >= "+arg(*f.VencimentoDe))
	}
	if f.VencimentoAte != nil {
		condicoes = append(condicoes, "m.data_vencimento <= "+arg(*f.VencimentoAte))
	}
	if len(condicoes) > 0 {
		query += " WHERE " + strings.Join(condicoes, " AND ")
	}
	query += " ORDER BY m.data_vencimento, m.numero"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list mensalidades: %w", err)
	}
	defer rows.Close()

	var out []*entity.Mensalidade
	for rows.Next() {
		m, err := scanMensalidade(rows)
		if err != nil {
			return nil, fmt.Errorf("scan mensalidade: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ExistsForCompetencia consulta se já existe mensalidade não cancelada para
// (associado, tipo, mês, ano).
func (r *MensalidadeRepo) ExistsForCompetencia(associadoID, tipoID string, mes, ano int) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM mensalidades
			WHERE associado_id = $1 AND tipo_id = $2
			  AND EXTRACT(MONTH FROM data_vencimento) = $3
			  AND EXTRACT(YEAR FROM data_vencimento) = $4
			  AND status <> 'cancelado'
		)`
	var existe bool
	err := r.q.QueryRow(context.Background(), query, associadoID, tipoID, mes, ano).Scan(&existe)
	if err != nil {
		return false, fmt.Errorf("exists competencia: %w", err)
	}
	return existe, nil
}

// MarkPaidIfPending transiciona pendente -> pago de forma atômica. false sem
// erro significa que a mensalidade existia mas não estava pendente.
func (r *MensalidadeRepo) MarkPaidIfPending(id string, dataPagamento time.Time, formaPagamento string) (bool, error) {
	query := `
		UPDATE mensalidades
		SET status = 'pago', data_pagamento = $2, forma_pagamento = $3, updated_at = $4
		WHERE id = $1 AND status = 'pendente'`
	tag, err := r.q.Exec(context.Background(), query, id, dataPagamento, formaPagamento, time.Now())
	if err != nil {
		return false, fmt.Errorf("marcar pago: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return true, nil
	}

	var existe bool
	err = r.q.QueryRow(context.Background(), `SELECT EXISTS (SELECT 1 FROM mensalidades WHERE id = $1)`, id).Scan(&existe)
	if err != nil {
		return false, fmt.Errorf("verificar mensalidade: %w", err)
	}
	if !existe {
		return false, domain.ErrNaoEncontrado
	}
	return false, nil
}

// BulkDelete exclui somente mensalidades do associado informado.
func (r *MensalidadeRepo) BulkDelete(ids []string, associadoID string) (int64, error) {
	query := `DELETE FROM mensalidades WHERE id = ANY($1) AND associado_id = $2`
	tag, err := r.q.Exec(context.Background(), query, ids, associadoID)
	if err != nil {
		return 0, fmt.Errorf("excluir em lote: %w", err)
	}
	return tag.RowsAffected(), nil
}

// BulkMarkPaid dá baixa nas pendentes do associado informado.
func (r *MensalidadeRepo) BulkMarkPaid(ids []string, associadoID string, dataPagamento time.Time) (int64, error) {
	query := `
		UPDATE mensalidades
		SET status = 'pago', data_pagamento = $3, updated_at = $4
		WHERE id = ANY($1) AND associado_id = $2 AND status = 'pendente'`
	tag, err := r.q.Exec(context.Background(), query, ids, associadoID, dataPagamento, time.Now())
	if err != nil {
		return 0, fmt.Errorf("baixa em lote: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanMensalidade(row pgx.Row) (*entity.Mensalidade, error) {
	var m entity.Mensalidade
	var formaPagamento, observacoes *string
	err := row.Scan(
		&m.ID, &m.Numero, &m.AssociadoID, &m.TipoID, &m.Valor, &m.DataVencimento,
		&m.DataPagamento, &m.Status, &formaPagamento, &observacoes,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if formaPagamento != nil {
		m.FormaPagamento = *formaPagamento
	}
	if observacoes != nil {
		m.Observacoes = *observacoes
	}
	return &m, nil
}
