package carne

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abmepi/financeiro-api/internal/domain/entity"
)

func TestQuebrarEmDuasLinhas(t *testing.T) {
	l1, l2 := QuebrarEmDuasLinhas("Maria José da Silva")
	assert.Equal(t, "Maria José", l1)
	assert.Equal(t, "da Silva", l2)

	l1, l2 = QuebrarEmDuasLinhas("Extraordinário")
	assert.Equal(t, "Extraor", l1)
	assert.Equal(t, "dinário", l2)

	l1, l2 = QuebrarEmDuasLinhas("")
	assert.Empty(t, l1)
	assert.Empty(t, l2)
}

func TestQuebrarEmTresLinhas(t *testing.T) {
	l1, l2, l3 := QuebrarEmTresLinhas("um dois tres quatro cinco seis")
	assert.Equal(t, "um dois", l1)
	assert.Equal(t, "tres quatro", l2)
	assert.Equal(t, "cinco seis", l3)

	// Duas palavras: cada uma parte ao meio, a linha central junta as sobras.
	l1, l2, l3 = QuebrarEmTresLinhas("MERCADO PAGO")
	assert.Equal(t, "MER", l1)
	assert.Equal(t, "CADO PA", l2)
	assert.Equal(t, "GO", l3)

	l1, l2, l3 = QuebrarEmTresLinhas("ABCDEFGHI")
	assert.Equal(t, "ABC", l1)
	assert.Equal(t, "DEF", l2)
	assert.Equal(t, "GHI", l3)
}

func dadosDeTeste() DadosBoletim {
	return DadosBoletim{
		NumeroDocumento: "00000042/2025",
		Vencimento:      "10/03/2025",
		Valor:           decimal.RequireFromString("150.00"),
		NomeAssociado:   "João Carlos Pereira dos Santos",
		Endereco:        "Rua das Flores, 100 - Centro - Teresina/PI - CEP: 64000-000",
	}
}

func textos(b Boletim) []Texto {
	var out []Texto
	for _, ins := range b.Instrucoes {
		if t, ok := ins.(Texto); ok {
			out = append(out, t)
		}
	}
	return out
}

func buscarTexto(t *testing.T, b Boletim, conteudo string) Texto {
	t.Helper()
	for _, tx := range textos(b) {
		if tx.Conteudo == conteudo {
			return tx
		}
	}
	require.Failf(t, "texto não encontrado", "conteúdo %q", conteudo)
	return Texto{}
}

func TestMontarBoletimGeometria(t *testing.T) {
	cfg := entity.ConfiguracaoPadrao()
	b := MontarBoletim(dadosDeTeste(), cfg, "", 10, 10)

	// Moldura na célula completa.
	moldura, ok := b.Instrucoes[0].(Retangulo)
	require.True(t, ok)
	assert.Equal(t, 10.0, moldura.X)
	assert.Equal(t, 10.0, moldura.Y)
	assert.Equal(t, LarguraBoletim, moldura.Largura)
	assert.Equal(t, AlturaBoletim, moldura.Altura)

	// Separador tracejado na fronteira do canhoto (27% da largura).
	separador, ok := b.Instrucoes[1].(Linha)
	require.True(t, ok)
	assert.True(t, separador.Tracejada)
	assert.InDelta(t, 10+36.72, separador.X1, 0.001)
	assert.Equal(t, separador.X1, separador.X2)
	assert.Equal(t, 10.0, separador.Y1)
	assert.Equal(t, 70.0, separador.Y2)

	// Valor com prefixo monetário nas duas zonas.
	var valores int
	for _, tx := range textos(b) {
		if tx.Conteudo == "R$ 150.00" {
			valores++
			assert.True(t, tx.Negrito)
		}
	}
	assert.Equal(t, 2, valores)

	venc := buscarTexto(t, b, "Vencimento:")
	assert.Equal(t, 12.0, venc.X)
	assert.Equal(t, 39.0, venc.Y)
}

func TestMontarBoletimNomeLongoQuebraNaViaDestacavel(t *testing.T) {
	cfg := entity.ConfiguracaoPadrao()
	d := dadosDeTeste() // 30 runas, acima do limite de 25

	b := MontarBoletim(d, cfg, "", 0, 0)
	buscarTexto(t, b, "João Carlos")
	buscarTexto(t, b, "Pereira dos Santos")
}

func TestMontarBoletimNomeCurtoLinhaUnica(t *testing.T) {
	cfg := entity.ConfiguracaoPadrao()
	d := dadosDeTeste()
	d.NomeAssociado = "Ana Lima"

	b := MontarBoletim(d, cfg, "", 0, 0)
	tx := buscarTexto(t, b, "Ana Lima")
	assert.Equal(t, 35.0, tx.Y)
}

func TestMontarBoletimCanhotoTruncaNomeEm18Runas(t *testing.T) {
	cfg := entity.ConfiguracaoPadrao()
	d := dadosDeTeste()
	d.NomeAssociado = "Maximiliano Constantino Albuquerque Vasconcelos"

	b := MontarBoletim(d, cfg, "", 0, 0)
	for _, tx := range textos(b) {
		if tx.Tamanho == 8 && tx.Negrito && tx.X == 2.0 {
			assert.LessOrEqual(t, len([]rune(tx.Conteudo)), 18)
		}
	}
}

func TestMontarBoletimSemQRCodeMantemDadosPix(t *testing.T) {
	cfg := entity.ConfiguracaoPadrao()
	cfg.QRCodeAtivo = false

	b := MontarBoletim(dadosDeTeste(), cfg, "", 0, 0)

	// Desativar o QR Code suprime só a imagem e o placeholder; os dados de
	// cobrança continuam impressos na via destacável.
	for _, ins := range b.Instrucoes {
		if img, ok := ins.(Imagem); ok {
			assert.NotEqual(t, float64(cfg.QRCodeTamanho), img.Largura,
				"não deveria haver área de QR Code")
		}
	}
	for _, tx := range textos(b) {
		assert.NotEqual(t, "QR CODE", tx.Conteudo)
	}

	chave := buscarTexto(t, b, cfg.ChavePix)
	assert.True(t, chave.Negrito)
	assert.Equal(t, 42.0, chave.Y)

	t1, t2 := QuebrarEmDuasLinhas(cfg.Titular)
	buscarTexto(t, b, t1)
	buscarTexto(t, b, t2)
	buscarTexto(t, b, cfg.Banco)
}

func TestMontarBoletimQRCodePlaceholder(t *testing.T) {
	cfg := entity.ConfiguracaoPadrao() // sem imagem de QR Code
	b := MontarBoletim(dadosDeTeste(), cfg, "", 10, 10)

	var qr *Imagem
	for _, ins := range b.Instrucoes {
		if img, ok := ins.(Imagem); ok && img.Largura == float64(cfg.QRCodeTamanho) {
			qr = &img
			break
		}
	}
	require.NotNil(t, qr)
	assert.Empty(t, qr.Caminho)
	require.NotEmpty(t, qr.Alternativa)

	// Placeholder: contorno de traço cinza do tamanho configurado, sem
	// preenchimento.
	ret, ok := qr.Alternativa[0].(Retangulo)
	require.True(t, ok)
	assert.Equal(t, 204, ret.Cinza)
	assert.Equal(t, 15.0, ret.Largura)
	assert.Equal(t, 15.0, ret.Altura)
}

func TestMontarBoletimCanhotoNomeDeUmaPalavraSemTruncar(t *testing.T) {
	cfg := entity.ConfiguracaoPadrao()
	d := dadosDeTeste()
	// 42 runas em uma palavra só: parte ao meio e imprime inteira.
	d.NomeAssociado = "Wolfeschlegelsteinhausenbergerdorffwelsche"

	b := MontarBoletim(d, cfg, "", 0, 0)

	// No canhoto (x=2), as metades saem inteiras mesmo acima de 18 runas.
	var linhasCanhoto []string
	for _, tx := range textos(b) {
		if tx.X == 2.0 && tx.Negrito && tx.Tamanho == 8 {
			linhasCanhoto = append(linhasCanhoto, tx.Conteudo)
		}
	}
	assert.Contains(t, linhasCanhoto, "Wolfeschlegelsteinhau")
	assert.Contains(t, linhasCanhoto, "senbergerdorffwelsche")
}
