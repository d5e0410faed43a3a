package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/abmepi/financeiro-api/internal/domain"
	"github.com/abmepi/financeiro-api/internal/domain/entity"
	"github.com/abmepi/financeiro-api/internal/domain/repository"
	"github.com/abmepi/financeiro-api/internal/infrastructure/carne"
	"github.com/abmepi/financeiro-api/internal/infrastructure/report"
)

// CarneUseCase emite o carnê em PDF das mensalidades pendentes de um associado.
type CarneUseCase struct {
	mensalidadeRepo repository.MensalidadeRepository
	associadoRepo   repository.AssociadoRepository
	configUC        *ConfiguracaoUseCase
	logoCaminho     string

	agora func() time.Time
}

// NewCarneUseCase constrói o caso de uso. logoCaminho pode ser vazio; o
// boletim cai no texto alternativo.
func NewCarneUseCase(
	mensalidadeRepo repository.MensalidadeRepository,
	associadoRepo repository.AssociadoRepository,
	configUC *ConfiguracaoUseCase,
	logoCaminho string,
) *CarneUseCase {
	return &CarneUseCase{
		mensalidadeRepo: mensalidadeRepo,
		associadoRepo:   associadoRepo,
		configUC:        configUC,
		logoCaminho:     logoCaminho,
		agora:           time.Now,
	}
}

// Carne é o artefato emitido: nome de arquivo sugerido e os bytes do PDF.
type Carne struct {
	NomeArquivo string
	PDF         []byte
	Boletins    int
}

// Emitir gera o carnê com um boletim por mensalidade pendente, em ordem de
// vencimento. Associado sem pendências devolve domain.ErrNaoEncontrado.
func (uc *CarneUseCase) Emitir(ctx context.Context, associadoID string) (*Carne, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if associadoID == "" {
		return nil, domain.ErrEntradaInvalida
	}

	associado, err := uc.associadoRepo.GetByID(associadoID)
	if err != nil {
		return nil, fmt.Errorf("buscar associado: %w", err)
	}
	if !associado.Ativo {
		return nil, fmt.Errorf("associado %q: %w", associado.Nome, domain.ErrInativo)
	}

	pendentes, err := uc.mensalidadeRepo.List(repository.MensalidadeFilter{
		AssociadoID: associadoID,
		Status:      entity.StatusPendente,
	})
	if err != nil {
		return nil, fmt.Errorf("listar mensalidades pendentes: %w", err)
	}
	if len(pendentes) == 0 {
		return nil, fmt.Errorf("nenhuma mensalidade pendente para %q: %w", associado.Nome, domain.ErrNaoEncontrado)
	}

	cfg, err := uc.configUC.ObterAtiva(ctx)
	if err != nil {
		return nil, err
	}

	endereco := associado.EnderecoCompleto()
	dados := make([]carne.DadosBoletim, 0, len(pendentes))
	for _, m := range pendentes {
		dados = append(dados, carne.DadosBoletim{
			NumeroDocumento: m.NumeroDocumento(),
			Vencimento:      m.DataVencimento.Format("02/01/2006"),
			Valor:           m.Valor,
			NomeAssociado:   associado.Nome,
			Endereco:        endereco,
		})
	}

	doc := carne.Paginar(dados, cfg, uc.logoCaminho)
	pdf, err := carne.Renderizar(doc)
	if err != nil {
		return nil, err
	}

	return &Carne{
		NomeArquivo: report.NomeArquivoCarne(associado.Nome, uc.agora()),
		PDF:         pdf,
		Boletins:    len(dados),
	}, nil
}
