// Package juros calcula o acréscimo de mensalidades em atraso.
//
// Regra de negócio fixa (não configurável): multa de 2% sobre o valor base
// mais juros de 0,1% ao dia de atraso, com arredondamento monetário de
// 2 casas decimais. A função é pura: sem I/O, segura para chamar a cada
// renderização de lista.
package juros

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	multaFixa = decimal.RequireFromString("0.02")  // 2% sobre o valor base
	jurosDia  = decimal.RequireFromString("0.001") // 0,1% ao dia de atraso
)

// DiasAtraso devolve os dias corridos entre o vencimento e hoje (0 se o
// vencimento ainda não passou). Só a parte de data é considerada.
func DiasAtraso(vencimento, hoje time.Time) int {
	v := truncarData(vencimento)
	h := truncarData(hoje)
	if !h.After(v) {
		return 0
	}
	return int(h.Sub(v).Hours() / 24)
}

// Calcular devolve os dias de atraso e o valor ajustado de uma cobrança.
// Com 0 dias de atraso o valor base é devolvido inalterado (sem arredondar,
// para preservar o snapshot gravado). O chamador é responsável por só aplicar
// o cálculo a cobranças pendentes.
func Calcular(base decimal.Decimal, vencimento, hoje time.Time) (int, decimal.Decimal) {
	dias := DiasAtraso(vencimento, hoje)
	if dias == 0 {
		return 0, base
	}
	multa := base.Mul(multaFixa)
	juros := base.Mul(jurosDia).Mul(decimal.NewFromInt(int64(dias)))
	return dias, base.Add(multa).Add(juros).Round(2)
}

func truncarData(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
