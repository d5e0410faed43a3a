// Package carne monta e renderiza o carnê de pagamento: boletins de duas
// zonas (canhoto e via destacável) dispostos em grade de 2x3 por página A4
// paisagem. A montagem produz instruções de desenho puras, com coordenadas
// absolutas em milímetros; a renderização em PDF fica em render.go.
package carne

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/abmepi/financeiro-api/internal/domain/entity"
)

// Dimensões do boletim em mm. O canhoto ocupa 27% da largura; o restante é a
// via destacável entregue ao associado.
const (
	LarguraBoletim = 136.0
	AlturaBoletim  = 60.0
	FracaoCanhoto  = 0.27

	LarguraCanhoto    = LarguraBoletim * FracaoCanhoto
	LarguraDestacavel = LarguraBoletim - LarguraCanhoto
)

// Instrucao é uma operação de desenho já posicionada na página.
type Instrucao interface {
	instrucao()
}

// Texto desenha uma linha de texto Helvetica com a linha de base em Y.
// Quando Centrado é true, X é o centro horizontal do texto.
type Texto struct {
	X, Y     float64
	Conteudo string
	Tamanho  float64
	Negrito  bool
	Centrado bool
}

// Linha desenha um segmento de reta, contínuo ou tracejado (traço 3mm).
type Linha struct {
	X1, Y1, X2, Y2 float64
	Tracejada      bool
}

// Retangulo desenha um retângulo de contorno. Cinza maior que zero aplica o
// tom ao traço (0..255); zero desenha em preto.
type Retangulo struct {
	X, Y, Largura, Altura float64
	Cinza                 int
}

// Imagem desenha um arquivo de imagem. Altura zero mantém a proporção.
// Alternativa é desenhada no lugar quando o arquivo não pode ser lido.
type Imagem struct {
	Caminho               string
	X, Y, Largura, Altura float64
	Alternativa           []Instrucao
}

func (Texto) instrucao()     {}
func (Linha) instrucao()     {}
func (Retangulo) instrucao() {}
func (Imagem) instrucao()    {}

// DadosBoletim é o conteúdo variável de um boletim do carnê.
type DadosBoletim struct {
	NumeroDocumento string
	Vencimento      string // já formatado dd/mm/aaaa
	Valor           decimal.Decimal
	NomeAssociado   string
	Endereco        string
}

// Boletim é um boletim montado: instruções absolutas prontas para desenhar.
type Boletim struct {
	Instrucoes []Instrucao
}

// MontarBoletim posiciona um boletim com canto superior esquerdo em (x, y).
// logoCaminho pode ser vazio; nesse caso vale a alternativa em texto.
func MontarBoletim(d DadosBoletim, cfg *entity.ConfiguracaoCobranca, logoCaminho string, x, y float64) Boletim {
	var ins []Instrucao

	// Moldura e separador tracejado entre canhoto e via destacável.
	ins = append(ins,
		Retangulo{X: x, Y: y, Largura: LarguraBoletim, Altura: AlturaBoletim},
		Linha{X1: x + LarguraCanhoto, Y1: y, X2: x + LarguraCanhoto, Y2: y + AlturaBoletim, Tracejada: true},
	)

	ins = append(ins, montarCanhoto(d, logoCaminho, x, y)...)
	ins = append(ins, montarDestacavel(d, cfg, x, y)...)

	return Boletim{Instrucoes: ins}
}

func montarCanhoto(d DadosBoletim, logoCaminho string, x, y float64) []Instrucao {
	cx := x + 2.0
	centroX := x + LarguraCanhoto/2

	alternativa := []Instrucao{
		Texto{X: centroX, Y: y + 8, Conteudo: "ABMEPI", Tamanho: 12, Negrito: true, Centrado: true},
	}

	ins := []Instrucao{
		Imagem{
			Caminho:     logoCaminho,
			X:           centroX - LarguraCanhoto*0.35/2,
			Y:           y + 2,
			Largura:     LarguraCanhoto * 0.35,
			Alternativa: alternativa,
		},
		Texto{X: cx, Y: y + 21, Conteudo: "Nº do documento:", Tamanho: 7},
		Texto{X: cx, Y: y + 24, Conteudo: d.NumeroDocumento, Tamanho: 8, Negrito: true},
		Texto{X: cx, Y: y + 29, Conteudo: "Vencimento:", Tamanho: 7},
		Texto{X: cx, Y: y + 32, Conteudo: d.Vencimento, Tamanho: 8, Negrito: true},
		Texto{X: cx, Y: y + 37, Conteudo: "Valor:", Tamanho: 7},
		Texto{X: cx, Y: y + 40, Conteudo: "R$ " + d.Valor.StringFixed(2), Tamanho: 8, Negrito: true},
		Texto{X: cx, Y: y + 45, Conteudo: "Associado:", Tamanho: 7},
	}

	// O canhoto é estreito: o nome sai sempre em duas linhas curtas. O
	// truncamento em 18 runas só vale para nomes compostos; nome de uma
	// palavra partida ao meio é impresso inteiro.
	linha1, linha2 := QuebrarEmDuasLinhas(d.NomeAssociado)
	if len(strings.Fields(d.NomeAssociado)) > 1 {
		linha1 = truncarRunes(linha1, 18)
		linha2 = truncarRunes(linha2, 18)
	}
	ins = append(ins,
		Texto{X: cx, Y: y + 48, Conteudo: linha1, Tamanho: 8, Negrito: true},
		Texto{X: cx, Y: y + 51, Conteudo: linha2, Tamanho: 8, Negrito: true},
	)
	return ins
}

func montarDestacavel(d DadosBoletim, cfg *entity.ConfiguracaoCobranca, x, y float64) []Instrucao {
	xd := x + LarguraCanhoto + 2.0
	ld := LarguraDestacavel

	ins := []Instrucao{
		Texto{X: xd, Y: y + 8, Conteudo: "Nº do documento:", Tamanho: 7},
		Texto{X: xd + 25, Y: y + 8, Conteudo: d.NumeroDocumento, Tamanho: 8, Negrito: true},
		Texto{X: xd + ld - 35, Y: y + 8, Conteudo: "Vencimento:", Tamanho: 7},
		Texto{X: xd + ld - 20, Y: y + 8, Conteudo: d.Vencimento, Tamanho: 8, Negrito: true},
		Texto{X: xd, Y: y + 13, Conteudo: "MENSAGEM:", Tamanho: 7},
		Texto{X: xd + ld - 35, Y: y + 13, Conteudo: "Valor:", Tamanho: 7},
		Texto{X: xd + ld - 20, Y: y + 13, Conteudo: "R$ " + d.Valor.StringFixed(2), Tamanho: 8, Negrito: true},
	}

	// A mensagem ocupa sempre três linhas, mesmo que alguma saia vazia.
	m1, m2, m3 := QuebrarEmTresLinhas(cfg.Mensagem)
	for i, linha := range []string{m1, m2, m3} {
		ins = append(ins, Texto{X: xd, Y: y + 17 + float64(i)*3, Conteudo: linha, Tamanho: 7})
	}

	ins = append(ins,
		Texto{X: xd, Y: y + 26, Conteudo: "Telefone: " + cfg.TelefoneComprovante, Tamanho: 7},
		Texto{X: xd, Y: y + 32, Conteudo: "Associado:", Tamanho: 7},
	)

	if len([]rune(d.NomeAssociado)) > 25 {
		n1, n2 := QuebrarEmDuasLinhas(d.NomeAssociado)
		ins = append(ins,
			Texto{X: xd, Y: y + 35, Conteudo: n1, Tamanho: 8, Negrito: true},
			Texto{X: xd, Y: y + 38, Conteudo: n2, Tamanho: 8, Negrito: true},
		)
	} else {
		ins = append(ins, Texto{X: xd, Y: y + 35, Conteudo: d.NomeAssociado, Tamanho: 8, Negrito: true})
	}

	ins = append(ins, Texto{X: xd, Y: y + 43, Conteudo: "Endereço:", Tamanho: 7})
	e1, e2, e3 := QuebrarEmTresLinhas(d.Endereco)
	for i, linha := range []string{e1, e2, e3} {
		ins = append(ins, Texto{X: xd, Y: y + 46 + float64(i)*3, Conteudo: linha, Tamanho: 7})
	}

	// O QR Code em si é opcional, mas os dados de cobrança (chave PIX,
	// titular e banco) saem sempre na via destacável.
	if cfg.QRCodeAtivo {
		ins = append(ins, montarQRCode(cfg, xd, ld, y))
	}
	ins = append(ins, montarDadosPix(cfg, xd, ld, y)...)
	return ins
}

func montarQRCode(cfg *entity.ConfiguracaoCobranca, xd, ld, y float64) Instrucao {
	t := float64(cfg.QRCodeTamanho)
	qx := xd + ld - t - 10
	qy := y + 35 - t

	alternativa := []Instrucao{
		Retangulo{X: qx, Y: qy, Largura: t, Altura: t, Cinza: 204},
		Texto{X: qx + t/2, Y: qy + t/2 - 2, Conteudo: "QR CODE", Tamanho: 6, Centrado: true},
	}

	return Imagem{
		Caminho:     cfg.QRCodeImagem,
		X:           qx,
		Y:           qy,
		Largura:     t,
		Altura:      t,
		Alternativa: alternativa,
	}
}

func montarDadosPix(cfg *entity.ConfiguracaoCobranca, xd, ld, y float64) []Instrucao {
	ins := []Instrucao{
		Texto{X: xd + ld - 50, Y: y + 42, Conteudo: cfg.ChavePix, Tamanho: 6, Negrito: true},
	}

	t1, t2 := QuebrarEmDuasLinhas(cfg.Titular)
	ins = append(ins,
		Texto{X: xd + ld - 50, Y: y + 46, Conteudo: t1, Tamanho: 6, Negrito: true},
		Texto{X: xd + ld - 50, Y: y + 49, Conteudo: t2, Tamanho: 6, Negrito: true},
	)

	if len([]rune(cfg.Banco)) > 20 {
		b1, b2 := QuebrarEmDuasLinhas(cfg.Banco)
		ins = append(ins,
			Texto{X: xd + ld - 50, Y: y + 53, Conteudo: b1, Tamanho: 6, Negrito: true},
			Texto{X: xd + ld - 50, Y: y + 56, Conteudo: b2, Tamanho: 6, Negrito: true},
		)
	} else {
		ins = append(ins, Texto{X: xd + ld - 50, Y: y + 53, Conteudo: cfg.Banco, Tamanho: 6, Negrito: true})
	}
	return ins
}

// QuebrarEmDuasLinhas divide o texto em duas linhas de tamanho parecido,
// quebrando entre palavras. Texto de uma palavra é partido ao meio por runas.
func QuebrarEmDuasLinhas(s string) (string, string) {
	palavras := strings.Fields(s)
	switch len(palavras) {
	case 0:
		return "", ""
	case 1:
		runas := []rune(palavras[0])
		meio := len(runas) / 2
		return string(runas[:meio]), string(runas[meio:])
	default:
		meio := len(palavras) / 2
		return strings.Join(palavras[:meio], " "), strings.Join(palavras[meio:], " ")
	}
}

// QuebrarEmTresLinhas divide o texto em três linhas quebrando entre palavras.
// Com duas palavras, cada uma é partida ao meio e a linha central junta as
// sobras; com uma palavra, parte-se em terços de runas.
func QuebrarEmTresLinhas(s string) (string, string, string) {
	palavras := strings.Fields(s)
	switch len(palavras) {
	case 0:
		return "", "", ""
	case 1:
		runas := []rune(palavras[0])
		a, b := len(runas)/3, 2*len(runas)/3
		return string(runas[:a]), string(runas[a:b]), string(runas[b:])
	case 2:
		r1 := []rune(palavras[0])
		r2 := []rune(palavras[1])
		m1, m2 := len(r1)/2, len(r2)/2
		return string(r1[:m1]), string(r1[m1:]) + " " + string(r2[:m2]), string(r2[m2:])
	default:
		a := len(palavras) / 3
		b := 2 * len(palavras) / 3
		return strings.Join(palavras[:a], " "),
			strings.Join(palavras[a:b], " "),
			strings.Join(palavras[b:], " ")
	}
}

func truncarRunes(s string, n int) string {
	runas := []rune(s)
	if len(runas) <= n {
		return s
	}
	return string(runas[:n])
}
