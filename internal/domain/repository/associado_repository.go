package repository

import "github.com/abmepi/financeiro-api/internal/domain/entity"

// AssociadoRepository expõe leitura do cadastro de associados, mantido por
// outro módulo. Este subsistema nunca grava associados.
type AssociadoRepository interface {
	GetByID(id string) (*entity.Associado, error)
	ListAtivos() ([]*entity.Associado, error)
	// GetAtivosByIDs devolve somente os associados ativos dentre os IDs
	// informados, na ordem em que foram pedidos.
	GetAtivosByIDs(ids []string) ([]*entity.Associado, error)
}
