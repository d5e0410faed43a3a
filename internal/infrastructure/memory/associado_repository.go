package memory

import (
	"sort"

	"github.com/abmepi/financeiro-api/internal/domain"
	"github.com/abmepi/financeiro-api/internal/domain/entity"
)

type AssociadoRepository struct {
	store *Store
}

func (r *AssociadoRepository) GetByID(id string) (*entity.Associado, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.associados[id]
	if !ok {
		return nil, domain.ErrNaoEncontrado
	}
	cp := *a
	return &cp, nil
}

func (r *AssociadoRepository) ListAtivos() ([]*entity.Associado, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*entity.Associado
	for _, a := range s.associados {
		if !a.Ativo {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nome < out[j].Nome })
	return out, nil
}

func (r *AssociadoRepository) GetAtivosByIDs(ids []string) ([]*entity.Associado, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entity.Associado, 0, len(ids))
	for _, id := range ids {
		a, ok := s.associados[id]
		if !ok || !a.Ativo {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}
