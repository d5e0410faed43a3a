package memory

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/abmepi/financeiro-api/internal/domain/entity"
)

type PagamentoRepository struct {
	store *Store
}

func (r *PagamentoRepository) Create(p *entity.Pagamento) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.CreatedAt = time.Now()

	cp := *p
	s.pagamentos[p.ID] = &cp
	return nil
}

func (r *PagamentoRepository) ListByMensalidade(mensalidadeID string) ([]*entity.Pagamento, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*entity.Pagamento
	for _, p := range s.pagamentos {
		if p.MensalidadeID != mensalidadeID {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DataPagamento.Before(out[j].DataPagamento)
	})
	return out, nil
}
