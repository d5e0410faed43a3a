package repository

import (
	"time"

	"github.com/abmepi/financeiro-api/internal/domain/entity"
)

// MensalidadeFilter restringe consultas ao livro de mensalidades.
// Campos zero são ignorados.
type MensalidadeFilter struct {
	IDs           []string
	AssociadoID   string
	TipoID        string
	Status        string
	Categoria     string // categoria do tipo associado (join)
	VencimentoDe  *time.Time
	VencimentoAte *time.Time
}

// MensalidadeRepository é o livro de cobranças. A idempotência de geração é
// garantida pela restrição de unicidade (associado, tipo, mês, ano) do
// armazenamento: Create devolve domain.ErrDuplicado quando violada.
type MensalidadeRepository interface {
	Create(m *entity.Mensalidade) error
	GetByID(id string) (*entity.Mensalidade, error)
	List(f MensalidadeFilter) ([]*entity.Mensalidade, error)

	// ExistsForCompetencia verifica se já há mensalidade não cancelada para
	// (associado, tipo, mês, ano). Atalho de leitura: a autoridade final é a
	// restrição de unicidade, não esta consulta.
	ExistsForCompetencia(associadoID, tipoID string, mes, ano int) (bool, error)

	// MarkPaidIfPending transiciona para "pago" somente se o status atual é
	// "pendente". Devolve false (sem erro) quando a mensalidade já estava
	// quitada ou cancelada.
	MarkPaidIfPending(id string, dataPagamento time.Time, formaPagamento string) (bool, error)

	// BulkDelete exclui as mensalidades informadas, restritas ao associado
	// dono (guarda de escopo: ação em lote nunca vaza para outro associado).
	BulkDelete(ids []string, associadoID string) (int64, error)

	// BulkMarkPaid dá baixa nas mensalidades pendentes informadas, com a
	// mesma guarda de escopo por associado.
	BulkMarkPaid(ids []string, associadoID string, dataPagamento time.Time) (int64, error)
}

// PagamentoRepository registra quitações.
type PagamentoRepository interface {
	Create(p *entity.Pagamento) error
	ListByMensalidade(mensalidadeID string) ([]*entity.Pagamento, error)
}
