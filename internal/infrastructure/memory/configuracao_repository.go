package memory

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/abmepi/financeiro-api/internal/domain"
	"github.com/abmepi/financeiro-api/internal/domain/entity"
)

type ConfiguracaoRepository struct {
	store *Store
}

func (r *ConfiguracaoRepository) GetActive() (*entity.ConfiguracaoCobranca, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.configs {
		if c.Ativo {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *ConfiguracaoRepository) GetByID(id string) (*entity.ConfiguracaoCobranca, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.configs[id]
	if !ok {
		return nil, domain.ErrNaoEncontrado
	}
	cp := *c
	return &cp, nil
}

func (r *ConfiguracaoRepository) List() ([]*entity.ConfiguracaoCobranca, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entity.ConfiguracaoCobranca, 0, len(s.configs))
	for _, c := range s.configs {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *ConfiguracaoRepository) Save(cfg *entity.ConfiguracaoCobranca) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	agora := time.Now()
	if cfg.ID == "" {
		cfg.ID = uuid.New().String()
		cfg.CreatedAt = agora
	}
	cfg.UpdatedAt = agora

	if cfg.Ativo {
		for _, c := range s.configs {
			if c.ID != cfg.ID {
				c.Ativo = false
			}
		}
	}

	cp := *cfg
	s.configs[cfg.ID] = &cp
	return nil
}

func (r *ConfiguracaoRepository) Activate(id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	alvo, ok := s.configs[id]
	if !ok {
		return domain.ErrNaoEncontrado
	}
	for _, c := range s.configs {
		c.Ativo = c.ID == id
	}
	alvo.UpdatedAt = time.Now()
	return nil
}
