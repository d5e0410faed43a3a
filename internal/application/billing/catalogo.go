package billing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/abmepi/financeiro-api/internal/domain"
	"github.com/abmepi/financeiro-api/internal/domain/entity"
	"github.com/abmepi/financeiro-api/internal/domain/repository"
)

// CatalogoUseCase mantém o catálogo de tipos de cobrança.
type CatalogoUseCase struct {
	tipoRepo repository.TipoMensalidadeRepository
}

// NewCatalogoUseCase constrói o caso de uso.
func NewCatalogoUseCase(tipoRepo repository.TipoMensalidadeRepository) *CatalogoUseCase {
	return &CatalogoUseCase{tipoRepo: tipoRepo}
}

// Criar cadastra um tipo de cobrança ativo.
func (uc *CatalogoUseCase) Criar(ctx context.Context, nome, descricao string, valor decimal.Decimal, categoria string, recorrente bool) (*entity.TipoMensalidade, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if nome == "" {
		return nil, fmt.Errorf("nome do tipo é obrigatório: %w", domain.ErrEntradaInvalida)
	}
	if valor.IsNegative() {
		return nil, fmt.Errorf("valor %s negativo: %w", valor, domain.ErrEntradaInvalida)
	}
	if categoria != entity.CategoriaMensalidade && categoria != entity.CategoriaAvulsa {
		return nil, fmt.Errorf("categoria %q desconhecida: %w", categoria, domain.ErrEntradaInvalida)
	}

	tipo := &entity.TipoMensalidade{
		Nome:       nome,
		Descricao:  descricao,
		Valor:      valor,
		Categoria:  categoria,
		Recorrente: recorrente,
		Ativo:      true,
	}
	if err := uc.tipoRepo.Create(tipo); err != nil {
		return nil, err
	}
	return tipo, nil
}

// ListarAtivos devolve os tipos disponíveis para geração.
func (uc *CatalogoUseCase) ListarAtivos(ctx context.Context, categoria string) ([]*entity.TipoMensalidade, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return uc.tipoRepo.ListAtivos(categoria)
}

// Desativar esconde o tipo de gerações futuras.
func (uc *CatalogoUseCase) Desativar(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return uc.tipoRepo.Deactivate(id)
}
