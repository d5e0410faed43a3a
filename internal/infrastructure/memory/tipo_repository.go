package memory

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/abmepi/financeiro-api/internal/domain"
	"github.com/abmepi/financeiro-api/internal/domain/entity"
)

type TipoMensalidadeRepository struct {
	store *Store
}

func (r *TipoMensalidadeRepository) Create(t *entity.TipoMensalidade) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	agora := time.Now()
	t.CreatedAt = agora
	t.UpdatedAt = agora

	cp := *t
	s.tipos[t.ID] = &cp
	return nil
}

func (r *TipoMensalidadeRepository) GetByID(id string) (*entity.TipoMensalidade, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tipos[id]
	if !ok {
		return nil, domain.ErrNaoEncontrado
	}
	cp := *t
	return &cp, nil
}

func (r *TipoMensalidadeRepository) ListAtivos(categoria string) ([]*entity.TipoMensalidade, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*entity.TipoMensalidade
	for _, t := range s.tipos {
		if !t.Ativo {
			continue
		}
		if categoria != "" && t.Categoria != categoria {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nome < out[j].Nome })
	return out, nil
}

func (r *TipoMensalidadeRepository) Deactivate(id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tipos[id]
	if !ok {
		return domain.ErrNaoEncontrado
	}
	t.Ativo = false
	t.UpdatedAt = time.Now()
	return nil
}
