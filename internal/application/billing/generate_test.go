package billing

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abmepi/financeiro-api/internal/domain"
	"github.com/abmepi/financeiro-api/internal/domain/entity"
	"github.com/abmepi/financeiro-api/internal/domain/repository"
	"github.com/abmepi/financeiro-api/internal/infrastructure/memory"
)

func novoCenario(t *testing.T, quantosAssociados int) (*memory.Store, *entity.TipoMensalidade, []*entity.Associado) {
	t.Helper()
	store := memory.NewStore()

	tipo := &entity.TipoMensalidade{
		ID:         "tipo-social",
		Nome:       "Mensalidade Social",
		Valor:      decimal.RequireFromString("100.00"),
		Categoria:  entity.CategoriaMensalidade,
		Recorrente: true,
		Ativo:      true,
	}
	store.SeedTipo(tipo)

	associados := make([]*entity.Associado, quantosAssociados)
	for i := range associados {
		associados[i] = &entity.Associado{
			ID:     fmt.Sprintf("associado-%d", i+1),
			Nome:   fmt.Sprintf("Associado %d", i+1),
			CPF:    fmt.Sprintf("%011d", i+1),
			Rua:    "Rua A",
			Numero: "1",
			Bairro: "Centro",
			Cidade: "Teresina",
			Estado: "PI",
			CEP:    "64000-000",
			Ativo:  true,
		}
		store.SeedAssociado(associados[i])
	}
	return store, tipo, associados
}

func usecaseGeracao(store *memory.Store) *GerarMensalidadesUseCase {
	return NewGerarMensalidadesUseCase(store.Mensalidades(), store.Tipos(), store.Associados())
}

func TestGerarLoteCompleto(t *testing.T) {
	store, tipo, _ := novoCenario(t, 3)
	uc := usecaseGeracao(store)

	resultado, err := uc.Gerar(context.Background(), ParamsGeracao{
		TipoID:          tipo.ID,
		MesInicial:      1,
		Ano:             2025,
		QuantidadeMeses: 2,
		DiaVencimento:   10,
	})
	require.NoError(t, err)

	// 3 associados x 2 competências.
	assert.Equal(t, 6, resultado.Criadas)
	assert.Zero(t, resultado.Duplicadas)
	assert.Empty(t, resultado.Falhas)

	todas, err := store.Mensalidades().List(repository.MensalidadeFilter{})
	require.NoError(t, err)
	require.Len(t, todas, 6)
	for _, m := range todas {
		assert.Equal(t, entity.StatusPendente, m.Status)
		assert.True(t, tipo.Valor.Equal(m.Valor))
		assert.Equal(t, 10, m.DataVencimento.Day())
	}
}

func TestGerarEIdempotente(t *testing.T) {
	store, tipo, _ := novoCenario(t, 3)
	uc := usecaseGeracao(store)
	params := ParamsGeracao{
		TipoID:          tipo.ID,
		MesInicial:      1,
		Ano:             2025,
		QuantidadeMeses: 2,
		DiaVencimento:   10,
	}

	primeiro, err := uc.Gerar(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, 6, primeiro.Criadas)

	// Repetir o lote não duplica nada: tudo vira contagem de duplicadas.
	segundo, err := uc.Gerar(context.Background(), params)
	require.NoError(t, err)
	assert.Zero(t, segundo.Criadas)
	assert.Equal(t, 6, segundo.Duplicadas)
	assert.Empty(t, segundo.Falhas)

	todas, err := store.Mensalidades().List(repository.MensalidadeFilter{})
	require.NoError(t, err)
	assert.Len(t, todas, 6)
}

// mensalidadeRepoSemInsert rejeita qualquer insert. Serve para provar que
// competências já cobradas são detectadas pela consulta e nem chegam ao
// repositório.
type mensalidadeRepoSemInsert struct {
	repository.MensalidadeRepository
}

func (r mensalidadeRepoSemInsert) Create(*entity.Mensalidade) error {
	return errors.New("insert inesperado")
}

func TestGerarConsultaCompetenciaAntesDeInserir(t *testing.T) {
	store, tipo, _ := novoCenario(t, 1)
	uc := usecaseGeracao(store)

	primeiro, err := uc.Gerar(context.Background(), ParamsGeracao{
		TipoID:          tipo.ID,
		MesInicial:      3,
		Ano:             2025,
		QuantidadeMeses: 1,
		DiaVencimento:   10,
	})
	require.NoError(t, err)
	require.Equal(t, 1, primeiro.Criadas)

	ucSemInsert := NewGerarMensalidadesUseCase(
		mensalidadeRepoSemInsert{store.Mensalidades()}, store.Tipos(), store.Associados())

	// Mesmo mês com outro dia de vencimento: a competência já cobrada é
	// contada como duplicada sem tentar um novo insert.
	resultado, err := ucSemInsert.Gerar(context.Background(), ParamsGeracao{
		TipoID:          tipo.ID,
		MesInicial:      3,
		Ano:             2025,
		QuantidadeMeses: 1,
		DiaVencimento:   25,
	})
	require.NoError(t, err)
	assert.Zero(t, resultado.Criadas)
	assert.Equal(t, 1, resultado.Duplicadas)
	assert.Empty(t, resultado.Falhas)
}

func TestGerarViradaDeAno(t *testing.T) {
	store, tipo, _ := novoCenario(t, 1)
	uc := usecaseGeracao(store)

	resultado, err := uc.Gerar(context.Background(), ParamsGeracao{
		TipoID:          tipo.ID,
		MesInicial:      11,
		Ano:             2025,
		QuantidadeMeses: 4,
		DiaVencimento:   5,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, resultado.Criadas)

	todas, err := store.Mensalidades().List(repository.MensalidadeFilter{})
	require.NoError(t, err)
	require.Len(t, todas, 4)

	competencias := make([]string, len(todas))
	for i, m := range todas {
		competencias[i] = m.DataVencimento.Format("2006-01")
	}
	assert.Equal(t, []string{"2025-11", "2025-12", "2026-01", "2026-02"}, competencias)
}

func TestGerarAjustaDiaAoFimDoMes(t *testing.T) {
	store, tipo, _ := novoCenario(t, 1)
	uc := usecaseGeracao(store)

	resultado, err := uc.Gerar(context.Background(), ParamsGeracao{
		TipoID:          tipo.ID,
		MesInicial:      1,
		Ano:             2025,
		QuantidadeMeses: 4,
		DiaVencimento:   31,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, resultado.Criadas)

	todas, err := store.Mensalidades().List(repository.MensalidadeFilter{})
	require.NoError(t, err)
	require.Len(t, todas, 4)

	dias := make([]int, len(todas))
	for i, m := range todas {
		dias[i] = m.DataVencimento.Day()
	}
	// jan=31, fev=28 (2025 não é bissexto), mar=31, abr=30.
	assert.Equal(t, []int{31, 28, 31, 30}, dias)
}

func TestGerarFevereiroBissexto(t *testing.T) {
	store, tipo, _ := novoCenario(t, 1)
	uc := usecaseGeracao(store)

	_, err := uc.Gerar(context.Background(), ParamsGeracao{
		TipoID:          tipo.ID,
		MesInicial:      2,
		Ano:             2028,
		QuantidadeMeses: 1,
		DiaVencimento:   30,
	})
	require.NoError(t, err)

	todas, err := store.Mensalidades().List(repository.MensalidadeFilter{})
	require.NoError(t, err)
	require.Len(t, todas, 1)
	assert.Equal(t, 29, todas[0].DataVencimento.Day())
}

func TestGerarValidacaoAbortaSemEfeito(t *testing.T) {
	store, tipo, _ := novoCenario(t, 2)
	uc := usecaseGeracao(store)

	_, err := uc.Gerar(context.Background(), ParamsGeracao{
		TipoID:          tipo.ID,
		MesInicial:      13,
		Ano:             2019,
		QuantidadeMeses: 0,
		DiaVencimento:   32,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)

	var ev *ErroValidacao
	require.ErrorAs(t, err, &ev)
	assert.Len(t, ev.Problemas, 4)

	todas, err := store.Mensalidades().List(repository.MensalidadeFilter{})
	require.NoError(t, err)
	assert.Empty(t, todas, "validação rejeitada não pode gerar nada")
}

func TestGerarTipoInativo(t *testing.T) {
	store, tipo, _ := novoCenario(t, 1)
	require.NoError(t, store.Tipos().Deactivate(tipo.ID))
	uc := usecaseGeracao(store)

	_, err := uc.Gerar(context.Background(), ParamsGeracao{
		TipoID:          tipo.ID,
		MesInicial:      1,
		Ano:             2025,
		QuantidadeMeses: 1,
		DiaVencimento:   10,
	})
	assert.ErrorIs(t, err, domain.ErrInativo)
}

func TestGerarIgnoraAssociadosInativos(t *testing.T) {
	store, tipo, associados := novoCenario(t, 3)
	inativo := *associados[2]
	inativo.Ativo = false
	store.SeedAssociado(&inativo)

	uc := usecaseGeracao(store)
	resultado, err := uc.Gerar(context.Background(), ParamsGeracao{
		TipoID:          tipo.ID,
		MesInicial:      6,
		Ano:             2025,
		QuantidadeMeses: 1,
		DiaVencimento:   15,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resultado.Criadas)
}

func TestGerarSubconjuntoDeAssociados(t *testing.T) {
	store, tipo, associados := novoCenario(t, 3)
	uc := usecaseGeracao(store)

	resultado, err := uc.Gerar(context.Background(), ParamsGeracao{
		TipoID:          tipo.ID,
		MesInicial:      6,
		Ano:             2025,
		QuantidadeMeses: 1,
		DiaVencimento:   15,
		AssociadoIDs:    []string{associados[0].ID},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resultado.Criadas)

	todas, err := store.Mensalidades().List(repository.MensalidadeFilter{})
	require.NoError(t, err)
	require.Len(t, todas, 1)
	assert.Equal(t, associados[0].ID, todas[0].AssociadoID)
}

func TestCriarAvulsa(t *testing.T) {
	store, _, associados := novoCenario(t, 1)
	avulsa := &entity.TipoMensalidade{
		ID:        "tipo-taxa",
		Nome:      "Taxa de Evento",
		Valor:     decimal.RequireFromString("35.00"),
		Categoria: entity.CategoriaAvulsa,
		Ativo:     true,
	}
	store.SeedTipo(avulsa)
	uc := usecaseGeracao(store)

	vencimento := time.Date(2025, 7, 20, 0, 0, 0, 0, time.UTC)
	m, err := uc.CriarAvulsa(context.Background(), associados[0].ID, avulsa.ID, vencimento, "evento de julho")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPendente, m.Status)
	assert.True(t, avulsa.Valor.Equal(m.Valor))
	assert.Equal(t, "evento de julho", m.Observacoes)
	assert.NotEmpty(t, m.ID)
	assert.Positive(t, m.Numero)

	// Mesma competência e tipo: segunda avulsa é barrada pela unicidade.
	_, err = uc.CriarAvulsa(context.Background(), associados[0].ID, avulsa.ID, vencimento, "")
	assert.ErrorIs(t, err, domain.ErrDuplicado)
}
