package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abmepi/financeiro-api/internal/domain"
	"github.com/abmepi/financeiro-api/internal/domain/entity"
	"github.com/abmepi/financeiro-api/internal/domain/repository"
)

// Limites de validação da geração em lote.
const (
	anoMinimo   = 2020
	anoMaximo   = 2030
	mesesMaximo = 12
)

// ParamsGeracao descreve um lote de geração de mensalidades.
type ParamsGeracao struct {
	TipoID          string
	MesInicial      int
	Ano             int
	QuantidadeMeses int
	DiaVencimento   int
	// AssociadoIDs vazio significa todos os associados ativos.
	AssociadoIDs []string
}

// FalhaGeracao registra um par (associado, competência) que não pôde ser gerado.
type FalhaGeracao struct {
	AssociadoID string
	Competencia string // "mm/aaaa"
	Err         error
}

// ResultadoGeracao resume o lote: o que entrou, o que já existia e o que falhou.
type ResultadoGeracao struct {
	Criadas    int
	Duplicadas int
	Falhas     []FalhaGeracao
}

// ErroValidacao acumula todos os problemas dos parâmetros de um lote, para a
// interface exibi-los de uma vez.
type ErroValidacao struct {
	Problemas []string
}

func (e *ErroValidacao) Error() string {
	return "parâmetros de geração inválidos: " + strings.Join(e.Problemas, "; ")
}

func (e *ErroValidacao) Unwrap() error { return domain.ErrEntradaInvalida }

// GerarMensalidadesUseCase gera mensalidades em lote por competência.
type GerarMensalidadesUseCase struct {
	mensalidadeRepo repository.MensalidadeRepository
	tipoRepo        repository.TipoMensalidadeRepository
	associadoRepo   repository.AssociadoRepository
}

// NewGerarMensalidadesUseCase constrói o caso de uso.
func NewGerarMensalidadesUseCase(
	mensalidadeRepo repository.MensalidadeRepository,
	tipoRepo repository.TipoMensalidadeRepository,
	associadoRepo repository.AssociadoRepository,
) *GerarMensalidadesUseCase {
	return &GerarMensalidadesUseCase{
		mensalidadeRepo: mensalidadeRepo,
		tipoRepo:        tipoRepo,
		associadoRepo:   associadoRepo,
	}
}

// Gerar cria uma mensalidade por associado por competência. A operação é
// idempotente: competências já cobradas contam como duplicadas e o restante
// do lote segue. Falhas individuais também não abortam o lote.
func (uc *GerarMensalidadesUseCase) Gerar(ctx context.Context, p ParamsGeracao) (*ResultadoGeracao, error) {
	if err := validarParams(p); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tipo, err := uc.tipoRepo.GetByID(p.TipoID)
	if err != nil {
		return nil, fmt.Errorf("buscar tipo de mensalidade: %w", err)
	}
	if !tipo.Ativo {
		return nil, fmt.Errorf("tipo de mensalidade %q: %w", tipo.Nome, domain.ErrInativo)
	}

	associados, err := uc.resolverAssociados(p.AssociadoIDs)
	if err != nil {
		return nil, err
	}

	resultado := &ResultadoGeracao{}
	for j := 0; j < p.QuantidadeMeses; j++ {
		mes, ano := p.MesInicial+j, p.Ano
		for mes > 12 {
			mes -= 12
			ano++
		}
		vencimento := dataVencimento(ano, mes, p.DiaVencimento)

		for _, a := range associados {
			// Atalho de leitura antes do insert. A autoridade continua
			// sendo a restrição de unicidade: uma corrida entre a consulta
			// e o insert ainda cai no tratamento de duplicado abaixo.
			existe, err := uc.mensalidadeRepo.ExistsForCompetencia(a.ID, tipo.ID, mes, ano)
			if err != nil {
				resultado.Falhas = append(resultado.Falhas, FalhaGeracao{
					AssociadoID: a.ID,
					Competencia: fmt.Sprintf("%02d/%d", mes, ano),
					Err:         err,
				})
				continue
			}
			if existe {
				resultado.Duplicadas++
				continue
			}

			m := &entity.Mensalidade{
				AssociadoID:    a.ID,
				TipoID:         tipo.ID,
				Valor:          tipo.Valor,
				DataVencimento: vencimento,
				Status:         entity.StatusPendente,
			}
			switch err := uc.mensalidadeRepo.Create(m); {
			case err == nil:
				resultado.Criadas++
			case errors.Is(err, domain.ErrDuplicado):
				resultado.Duplicadas++
			default:
				resultado.Falhas = append(resultado.Falhas, FalhaGeracao{
					AssociadoID: a.ID,
					Competencia: fmt.Sprintf("%02d/%d", mes, ano),
					Err:         err,
				})
			}
		}
	}
	return resultado, nil
}

// CriarAvulsa cria uma cobrança de parcela única fora do ciclo recorrente.
func (uc *GerarMensalidadesUseCase) CriarAvulsa(ctx context.Context, associadoID, tipoID string, vencimento time.Time, observacoes string) (*entity.Mensalidade, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if associadoID == "" || tipoID == "" || vencimento.IsZero() {
		return nil, domain.ErrEntradaInvalida
	}

	tipo, err := uc.tipoRepo.GetByID(tipoID)
	if err != nil {
		return nil, fmt.Errorf("buscar tipo: %w", err)
	}
	if !tipo.Ativo {
		return nil, fmt.Errorf("tipo %q: %w", tipo.Nome, domain.ErrInativo)
	}
	associado, err := uc.associadoRepo.GetByID(associadoID)
	if err != nil {
		return nil, fmt.Errorf("buscar associado: %w", err)
	}
	if !associado.Ativo {
		return nil, fmt.Errorf("associado %q: %w", associado.Nome, domain.ErrInativo)
	}

	m := &entity.Mensalidade{
		AssociadoID:    associadoID,
		TipoID:         tipoID,
		Valor:          tipo.Valor,
		DataVencimento: vencimento,
		Status:         entity.StatusPendente,
		Observacoes:    observacoes,
	}
	if err := uc.mensalidadeRepo.Create(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (uc *GerarMensalidadesUseCase) resolverAssociados(ids []string) ([]*entity.Associado, error) {
	if len(ids) == 0 {
		associados, err := uc.associadoRepo.ListAtivos()
		if err != nil {
			return nil, fmt.Errorf("listar associados ativos: %w", err)
		}
		return associados, nil
	}
	associados, err := uc.associadoRepo.GetAtivosByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("buscar associados: %w", err)
	}
	return associados, nil
}

func validarParams(p ParamsGeracao) error {
	var problemas []string
	if p.TipoID == "" {
		problemas = append(problemas, "tipo de mensalidade é obrigatório")
	}
	if p.MesInicial < 1 || p.MesInicial > 12 {
		problemas = append(problemas, fmt.Sprintf("mês inicial %d fora de 1..12", p.MesInicial))
	}
	if p.Ano < anoMinimo || p.Ano > anoMaximo {
		problemas = append(problemas, fmt.Sprintf("ano %d fora de %d..%d", p.Ano, anoMinimo, anoMaximo))
	}
	if p.QuantidadeMeses < 1 || p.QuantidadeMeses > mesesMaximo {
		problemas = append(problemas, fmt.Sprintf("quantidade de meses %d fora de 1..%d", p.QuantidadeMeses, mesesMaximo))
	}
	if p.DiaVencimento < 1 || p.DiaVencimento > 31 {
		problemas = append(problemas, fmt.Sprintf("dia de vencimento %d fora de 1..31", p.DiaVencimento))
	}
	if len(problemas) > 0 {
		return &ErroValidacao{Problemas: problemas}
	}
	return nil
}

// dataVencimento monta o vencimento ajustando o dia ao último do mês quando
// preciso (dia 31 em abril vira 30; 29+ em fevereiro vira 28 ou 29).
func dataVencimento(ano, mes, dia int) time.Time {
	ultimoDia := time.Date(ano, time.Month(mes)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if dia > ultimoDia {
		dia = ultimoDia
	}
	return time.Date(ano, time.Month(mes), dia, 0, 0, 0, 0, time.UTC)
}
