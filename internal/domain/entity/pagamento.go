package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Formas de pagamento aceitas.
const (
	FormaPix           = "pix"
	FormaBoleto        = "boleto"
	FormaCartaoCredito = "cartao_credito"
	FormaCartaoDebito  = "cartao_debito"
	FormaDinheiro      = "dinheiro"
	FormaTransferencia = "transferencia"
	FormaOutro         = "outro"
)

// Pagamento registra a quitação de uma mensalidade. Criar um Pagamento é o
// único caminho que transiciona a mensalidade para "pago" e carimba a data.
type Pagamento struct {
	ID             string
	MensalidadeID  string
	ValorPago      decimal.Decimal
	FormaPagamento string
	DataPagamento  time.Time
	Comprovante    string // caminho do arquivo anexado, se houver
	Observacoes    string
	CreatedAt      time.Time
}
