package billing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abmepi/financeiro-api/internal/domain/entity"
	"github.com/abmepi/financeiro-api/internal/infrastructure/memory"
)

func TestObterAtivaCriaPadraoQuandoNaoExiste(t *testing.T) {
	store := memory.NewStore()
	uc := NewConfiguracaoUseCase(store.Configuracoes())

	cfg, err := uc.ObterAtiva(context.Background())
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.True(t, cfg.Ativo)
	assert.Equal(t, "86 988197790", cfg.ChavePix)
	assert.Equal(t, 15, cfg.QRCodeTamanho)
	assert.NotEmpty(t, cfg.ID)

	// Segunda chamada devolve a mesma, sem criar outra.
	outra, err := uc.ObterAtiva(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cfg.ID, outra.ID)

	todas, err := uc.Listar(context.Background())
	require.NoError(t, err)
	assert.Len(t, todas, 1)
}

func TestAtivarDesativaAsDemais(t *testing.T) {
	store := memory.NewStore()
	uc := NewConfiguracaoUseCase(store.Configuracoes())

	primeira := entity.ConfiguracaoPadrao()
	require.NoError(t, uc.Salvar(context.Background(), primeira))

	segunda := entity.ConfiguracaoPadrao()
	segunda.Nome = "Conta Nova"
	segunda.Banco = "CAIXA"
	segunda.Ativo = false
	require.NoError(t, uc.Salvar(context.Background(), segunda))

	require.NoError(t, uc.Ativar(context.Background(), segunda.ID))

	ativa, err := store.Configuracoes().GetActive()
	require.NoError(t, err)
	require.NotNil(t, ativa)
	assert.Equal(t, segunda.ID, ativa.ID)

	// Exatamente uma ativa.
	todas, err := uc.Listar(context.Background())
	require.NoError(t, err)
	var ativas int
	for _, c := range todas {
		if c.Ativo {
			ativas++
		}
	}
	assert.Equal(t, 1, ativas)
}

func TestSalvarAtivaDesativaAsDemais(t *testing.T) {
	store := memory.NewStore()
	uc := NewConfiguracaoUseCase(store.Configuracoes())

	primeira := entity.ConfiguracaoPadrao()
	require.NoError(t, uc.Salvar(context.Background(), primeira))

	segunda := entity.ConfiguracaoPadrao()
	segunda.Nome = "Conta Nova"
	require.NoError(t, uc.Salvar(context.Background(), segunda)) // Ativo = true

	antiga, err := store.Configuracoes().GetByID(primeira.ID)
	require.NoError(t, err)
	assert.False(t, antiga.Ativo)
}
