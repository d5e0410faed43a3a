package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/abmepi/financeiro-api/internal/domain/juros"
)

// Status persistidos de uma mensalidade. "Atrasado" nunca é gravado:
// é derivado na leitura comparando vencimento e data atual.
const (
	StatusPendente  = "pendente"
	StatusPago      = "pago"
	StatusCancelado = "cancelado"
)

// Mensalidade é uma obrigação de cobrança de um associado para uma
// competência (mês/ano). Valor é um snapshot do TipoMensalidade no momento
// da geração, não uma referência viva.
//
// Invariante: no máximo uma mensalidade não cancelada por
// (associado, tipo, mês, ano), garantido por índice único parcial no banco.
type Mensalidade struct {
	ID             string
	Numero         int64 // sequencial, usado apenas no número de documento impresso
	AssociadoID    string
	TipoID         string
	Valor          decimal.Decimal
	DataVencimento time.Time
	DataPagamento  *time.Time
	Status         string
	FormaPagamento string
	Observacoes    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DiasAtraso devolve os dias de atraso; 0 se a mensalidade não está pendente.
func (m *Mensalidade) DiasAtraso(hoje time.Time) int {
	if m.Status != StatusPendente {
		return 0
	}
	return juros.DiasAtraso(m.DataVencimento, hoje)
}

// ValorAtualizado devolve o valor com multa e juros de atraso aplicados.
// Mensalidades não pendentes ou em dia mantêm o valor nominal.
func (m *Mensalidade) ValorAtualizado(hoje time.Time) decimal.Decimal {
	if m.Status != StatusPendente {
		return m.Valor
	}
	_, valor := juros.Calcular(m.Valor, m.DataVencimento, hoje)
	return valor
}

// NumeroDocumento devolve o número impresso no boletim: sequencial com oito
// dígitos seguido do ano de vencimento (ex.: 00000042/2025).
func (m *Mensalidade) NumeroDocumento() string {
	return fmt.Sprintf("%08d/%d", m.Numero, m.DataVencimento.Year())
}
