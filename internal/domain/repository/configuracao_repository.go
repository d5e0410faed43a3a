package repository

import "github.com/abmepi/financeiro-api/internal/domain/entity"

// ConfiguracaoCobrancaRepository gerencia a configuração de cobrança.
// A invariante "exatamente uma ativa" é responsabilidade da implementação:
// Activate e Save com Ativo=true desativam as demais na mesma transação.
type ConfiguracaoCobrancaRepository interface {
	GetActive() (*entity.ConfiguracaoCobranca, error) // nil quando não há ativa
	GetByID(id string) (*entity.ConfiguracaoCobranca, error)
	List() ([]*entity.ConfiguracaoCobranca, error)
	Save(cfg *entity.ConfiguracaoCobranca) error
	Activate(id string) error
}
