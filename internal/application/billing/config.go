package billing

import (
	"context"
	"fmt"

	"github.com/abmepi/financeiro-api/internal/domain/entity"
	"github.com/abmepi/financeiro-api/internal/domain/repository"
)

// ConfiguracaoUseCase gerencia a configuração de cobrança do carnê.
type ConfiguracaoUseCase struct {
	configRepo repository.ConfiguracaoCobrancaRepository
}

// NewConfiguracaoUseCase constrói o caso de uso.
func NewConfiguracaoUseCase(configRepo repository.ConfiguracaoCobrancaRepository) *ConfiguracaoUseCase {
	return &ConfiguracaoUseCase{configRepo: configRepo}
}

// ObterAtiva devolve a configuração ativa. Quando nenhuma existe, a padrão é
// criada e devolvida, para que a emissão de carnê nunca fique sem dados de
// cobrança.
func (uc *ConfiguracaoUseCase) ObterAtiva(ctx context.Context) (*entity.ConfiguracaoCobranca, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg, err := uc.configRepo.GetActive()
	if err != nil {
		return nil, fmt.Errorf("buscar configuração ativa: %w", err)
	}
	if cfg != nil {
		return cfg, nil
	}

	cfg = entity.ConfiguracaoPadrao()
	if err := uc.configRepo.Save(cfg); err != nil {
		return nil, fmt.Errorf("criar configuração padrão: %w", err)
	}
	return cfg, nil
}

// Salvar grava a configuração. Marcá-la ativa desativa as demais.
func (uc *ConfiguracaoUseCase) Salvar(ctx context.Context, cfg *entity.ConfiguracaoCobranca) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return uc.configRepo.Save(cfg)
}

// Ativar torna a configuração informada a única ativa.
func (uc *ConfiguracaoUseCase) Ativar(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return uc.configRepo.Activate(id)
}

// Listar devolve todas as configurações cadastradas.
func (uc *ConfiguracaoUseCase) Listar(ctx context.Context) ([]*entity.ConfiguracaoCobranca, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return uc.configRepo.List()
}
