package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/abmepi/financeiro-api/internal/domain"
	"github.com/abmepi/financeiro-api/internal/domain/entity"
	"github.com/abmepi/financeiro-api/internal/domain/repository"
)

var _ repository.TipoMensalidadeRepository = (*TipoMensalidadeRepo)(nil)

// TipoMensalidadeRepo implementação de TipoMensalidadeRepository.
type TipoMensalidadeRepo struct {
	q Querier
}

// NewTipoMensalidadeRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewTipoMensalidadeRepository(q Querier) *TipoMensalidadeRepo {
	return &TipoMensalidadeRepo{q: q}
}

// Create persiste um tipo de cobrança.
func (r *TipoMensalidadeRepo) Create(t *entity.TipoMensalidade) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	agora := time.Now()
	t.CreatedAt = agora
	t.UpdatedAt = agora

	query := `
		INSERT INTO tipos_mensalidade (id, nome, descricao, valor, categoria, recorrente, ativo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.Nome, nullIfEmpty(t.Descricao), t.Valor, t.Categoria,
		t.Recorrente, t.Ativo, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("tipo de mensalidade já existe: %w", domain.ErrDuplicado)
		}
		return fmt.Errorf("insert tipo: %w", err)
	}
	return nil
}

// GetByID busca um tipo pelo ID.
func (r *TipoMensalidadeRepo) GetByID(id string) (*entity.TipoMensalidade, error) {
	query := `
		SELECT id, nome, descricao, valor, categoria, recorrente, ativo, created_at, updated_at
		FROM tipos_mensalidade WHERE id = $1`
	t, err := scanTipo(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNaoEncontrado
		}
		return nil, fmt.Errorf("get tipo: %w", err)
	}
	return t, nil
}

// ListAtivos devolve os tipos ativos, opcionalmente por categoria.
func (r *TipoMensalidadeRepo) ListAtivos(categoria string) ([]*entity.TipoMensalidade, error) {
	query := `
		SELECT id, nome, descricao, valor, categoria, recorrente, ativo, created_at, updated_at
		FROM tipos_mensalidade WHERE ativo`
	var args []any
	if categoria != "" {
		query += " AND categoria = $1"
		args = append(args, categoria)
	}
	query += " ORDER BY nome"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tipos: %w", err)
	}
	defer rows.Close()

	var out []*entity.TipoMensalidade
	for rows.Next() {
		t, err := scanTipo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tipo: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Deactivate marca o tipo como inativo; mensalidades geradas permanecem.
func (r *TipoMensalidadeRepo) Deactivate(id string) error {
	query := `UPDATE tipos_mensalidade SET ativo = false, updated_at = $2 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, time.Now())
	if err != nil {
		return fmt.Errorf("desativar tipo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNaoEncontrado
	}
	return nil
}

func scanTipo(row pgx.Row) (*entity.TipoMensalidade, error) {
	var t entity.TipoMensalidade
	var descricao *string
	err := row.Scan(&t.ID, &t.Nome, &descricao, &t.Valor, &t.Categoria,
		&t.Recorrente, &t.Ativo, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if descricao != nil {
		t.Descricao = *descricao
	}
	return &t, nil
}
