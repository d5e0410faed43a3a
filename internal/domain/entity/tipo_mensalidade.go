package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorias de tipo de mensalidade.
const (
	CategoriaMensalidade = "mensalidade" // recorrente, de associado
	CategoriaAvulsa      = "avulsa"      // cobrança pontual
)

// TipoMensalidade define uma categoria de cobrança com valor unitário.
// Imutável depois que mensalidades o referenciam: o valor é copiado para
// cada Mensalidade na criação; a desativação apenas o esconde de gerações
// futuras.
type TipoMensalidade struct {
	ID         string
	Nome       string
	Descricao  string
	Valor      decimal.Decimal
	Categoria  string
	Recorrente bool
	Ativo      bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
