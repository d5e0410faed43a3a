package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/abmepi/financeiro-api/internal/domain"
	"github.com/abmepi/financeiro-api/internal/domain/entity"
	"github.com/abmepi/financeiro-api/internal/domain/repository"
)

var _ repository.AssociadoRepository = (*AssociadoRepo)(nil)

// AssociadoRepo leitura do cadastro de associados. A tabela pertence ao
// módulo de cadastro; aqui não há escrita.
type AssociadoRepo struct {
	q Querier
}

// NewAssociadoRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewAssociadoRepository(q Querier) *AssociadoRepo {
	return &AssociadoRepo{q: q}
}

const colunasAssociado = `id, nome, cpf, matricula, rua, numero, complemento, bairro, cidade, estado, cep, ativo`

// GetByID busca um associado pelo ID.
func (r *AssociadoRepo) GetByID(id string) (*entity.Associado, error) {
	query := `SELECT ` + colunasAssociado + ` FROM associados WHERE id = $1`
	a, err := scanAssociado(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNaoEncontrado
		}
		return nil, fmt.Errorf("get associado: %w", err)
	}
	return a, nil
}

// ListAtivos devolve os associados ativos em ordem alfabética.
func (r *AssociadoRepo) ListAtivos() ([]*entity.Associado, error) {
	query := `SELECT ` + colunasAssociado + ` FROM associados WHERE ativo ORDER BY nome`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list associados: %w", err)
	}
	defer rows.Close()
	return collectAssociados(rows)
}

// GetAtivosByIDs devolve os associados ativos dentre os IDs pedidos.
func (r *AssociadoRepo) GetAtivosByIDs(ids []string) ([]*entity.Associado, error) {
	query := `SELECT ` + colunasAssociado + ` FROM associados WHERE id = ANY($1) AND ativo ORDER BY nome`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return nil, fmt.Errorf("get associados: %w", err)
	}
	defer rows.Close()
	return collectAssociados(rows)
}

func collectAssociados(rows pgx.Rows) ([]*entity.Associado, error) {
	var out []*entity.Associado
	for rows.Next() {
		a, err := scanAssociado(rows)
		if err != nil {
			return nil, fmt.Errorf("scan associado: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAssociado(row pgx.Row) (*entity.Associado, error) {
	var a entity.Associado
	var complemento *string
	err := row.Scan(&a.ID, &a.Nome, &a.CPF, &a.Matricula, &a.Rua, &a.Numero,
		&complemento, &a.Bairro, &a.Cidade, &a.Estado, &a.CEP, &a.Ativo)
	if err != nil {
		return nil, err
	}
	if complemento != nil {
		a.Complemento = *complemento
	}
	return &a, nil
}
