// Package memory implementa os repositórios do domínio sobre mapas em
// memória. Serve aos testes de casos de uso e a execuções locais sem banco;
// replica as mesmas invariantes do armazenamento Postgres (unicidade por
// competência, guarda de escopo nas ações em lote).
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/abmepi/financeiro-api/internal/domain/entity"
	"github.com/abmepi/financeiro-api/internal/domain/repository"
)

// Store guarda todo o estado compartilhado pelos repositórios em memória.
type Store struct {
	mu sync.RWMutex

	mensalidades map[string]*entity.Mensalidade
	pagamentos   map[string]*entity.Pagamento
	tipos        map[string]*entity.TipoMensalidade
	configs      map[string]*entity.ConfiguracaoCobranca
	associados   map[string]*entity.Associado

	seq int64 // próximo número sequencial de documento
}

func NewStore() *Store {
	return &Store{
		mensalidades: make(map[string]*entity.Mensalidade),
		pagamentos:   make(map[string]*entity.Pagamento),
		tipos:        make(map[string]*entity.TipoMensalidade),
		configs:      make(map[string]*entity.ConfiguracaoCobranca),
		associados:   make(map[string]*entity.Associado),
	}
}

func (s *Store) Mensalidades() *MensalidadeRepository {
	return &MensalidadeRepository{store: s}
}

func (s *Store) Pagamentos() *PagamentoRepository {
	return &PagamentoRepository{store: s}
}

func (s *Store) Tipos() *TipoMensalidadeRepository {
	return &TipoMensalidadeRepository{store: s}
}

func (s *Store) Configuracoes() *ConfiguracaoRepository {
	return &ConfiguracaoRepository{store: s}
}

func (s *Store) Associados() *AssociadoRepository {
	return &AssociadoRepository{store: s}
}

// SeedTipo insere um tipo de mensalidade direto no estado, para testes.
func (s *Store) SeedTipo(t *entity.TipoMensalidade) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *t
	s.tipos[t.ID] = &cp
}

// SeedAssociado insere um associado direto no estado, para testes.
func (s *Store) SeedAssociado(a *entity.Associado) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *a
	s.associados[a.ID] = &cp
}

// TxRunner executa a função diretamente sobre o estado em memória. Não há
// rollback: testes que precisam observar falha parcial montam o cenário antes.
type TxRunner struct {
	store *Store
}

func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{store: s}
}

func (r *TxRunner) WithinTx(ctx context.Context, fn func(m repository.MensalidadeRepository, p repository.PagamentoRepository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(r.store.Mensalidades(), r.store.Pagamentos())
}

func mesmaCompetencia(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
