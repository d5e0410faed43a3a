package memory

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/abmepi/financeiro-api/internal/domain"
	"github.com/abmepi/financeiro-api/internal/domain/entity"
	"github.com/abmepi/financeiro-api/internal/domain/repository"
)

type MensalidadeRepository struct {
	store *Store
}

func (r *MensalidadeRepository) Create(m *entity.Mensalidade) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	// Mesma regra do índice único parcial: uma não cancelada por
	// (associado, tipo, competência).
	for _, atual := range s.mensalidades {
		if atual.AssociadoID == m.AssociadoID &&
			atual.TipoID == m.TipoID &&
			atual.Status != entity.StatusCancelado &&
			mesmaCompetencia(atual.DataVencimento, m.DataVencimento) {
			return domain.ErrDuplicado
		}
	}

	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	s.seq++
	m.Numero = s.seq
	agora := time.Now()
	m.CreatedAt = agora
	m.UpdatedAt = agora

	cp := *m
	s.mensalidades[m.ID] = &cp
	return nil
}

func (r *MensalidadeRepository) GetByID(id string) (*entity.Mensalidade, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.mensalidades[id]
	if !ok {
		return nil, domain.ErrNaoEncontrado
	}
	cp := *m
	return &cp, nil
}

func (r *MensalidadeRepository) List(f repository.MensalidadeFilter) ([]*entity.Mensalidade, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids map[string]bool
	if len(f.IDs) > 0 {
		ids = make(map[string]bool, len(f.IDs))
		for _, id := range f.IDs {
			ids[id] = true
		}
	}

	var out []*entity.Mensalidade
	for _, m := range s.mensalidades {
		if ids != nil && !ids[m.ID] {
			continue
		}
		if f.AssociadoID != "" && m.AssociadoID != f.AssociadoID {
			continue
		}
		if f.TipoID != "" && m.TipoID != f.TipoID {
			continue
		}
		if f.Status != "" && m.Status != f.Status {
			continue
		}
		if f.Categoria != "" {
			tipo, ok := s.tipos[m.TipoID]
			if !ok || tipo.Categoria != f.Categoria {
				continue
			}
		}
		if f.VencimentoDe != nil && m.DataVencimento.Before(*f.VencimentoDe) {
			continue
		}
		if f.VencimentoAte != nil && m.DataVencimento.After(*f.VencimentoAte) {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].DataVencimento.Equal(out[j].DataVencimento) {
			return out[i].DataVencimento.Before(out[j].DataVencimento)
		}
		return out[i].Numero < out[j].Numero
	})
	return out, nil
}

func (r *MensalidadeRepository) ExistsForCompetencia(associadoID, tipoID string, mes, ano int) (bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, m := range s.mensalidades {
		if m.AssociadoID == associadoID &&
			m.TipoID == tipoID &&
			m.Status != entity.StatusCancelado &&
			int(m.DataVencimento.Month()) == mes &&
			m.DataVencimento.Year() == ano {
			return true, nil
		}
	}
	return false, nil
}

func (r *MensalidadeRepository) MarkPaidIfPending(id string, dataPagamento time.Time, formaPagamento string) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.mensalidades[id]
	if !ok {
		return false, domain.ErrNaoEncontrado
	}
	if m.Status != entity.StatusPendente {
		return false, nil
	}
	m.Status = entity.StatusPago
	dp := dataPagamento
	m.DataPagamento = &dp
	m.FormaPagamento = formaPagamento
	m.UpdatedAt = time.Now()
	return true, nil
}

func (r *MensalidadeRepository) BulkDelete(ids []string, associadoID string) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, id := range ids {
		m, ok := s.mensalidades[id]
		if !ok || m.AssociadoID != associadoID {
			continue
		}
		delete(s.mensalidades, id)
		n++
	}
	return n, nil
}

func (r *MensalidadeRepository) BulkMarkPaid(ids []string, associadoID string, dataPagamento time.Time) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, id := range ids {
		m, ok := s.mensalidades[id]
		if !ok || m.AssociadoID != associadoID || m.Status != entity.StatusPendente {
			continue
		}
		m.Status = entity.StatusPago
		dp := dataPagamento
		m.DataPagamento = &dp
		m.UpdatedAt = time.Now()
		n++
	}
	return n, nil
}
