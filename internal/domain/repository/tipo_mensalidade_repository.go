package repository

import "github.com/abmepi/financeiro-api/internal/domain/entity"

// TipoMensalidadeRepository é o catálogo de tipos de cobrança.
type TipoMensalidadeRepository interface {
	Create(t *entity.TipoMensalidade) error
	GetByID(id string) (*entity.TipoMensalidade, error)
	// ListAtivos devolve os tipos ativos, opcionalmente filtrados por categoria.
	ListAtivos(categoria string) ([]*entity.TipoMensalidade, error)
	// Deactivate esconde o tipo de gerações futuras; mensalidades existentes
	// não são afetadas (o valor delas é snapshot).
	Deactivate(id string) error
}
