package carne

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// dataCriacaoFixa deixa a saída binária estável entre execuções com os
// mesmos dados, o que permite comparar PDFs byte a byte em teste.
var dataCriacaoFixa = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// Renderizar desenha o documento em PDF A4 paisagem e devolve os bytes.
func Renderizar(doc Documento) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetCreationDate(dataCriacaoFixa)
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, pagina := range doc.Paginas {
		pdf.AddPage()
		for _, boletim := range pagina.Boletins {
			desenhar(pdf, tr, boletim.Instrucoes)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("gerar PDF do carnê: %w", err)
	}
	return buf.Bytes(), nil
}

func desenhar(pdf *gofpdf.Fpdf, tr func(string) string, instrucoes []Instrucao) {
	for _, ins := range instrucoes {
		switch v := ins.(type) {
		case Texto:
			estilo := ""
			if v.Negrito {
				estilo = "B"
			}
			pdf.SetFont("Helvetica", estilo, v.Tamanho)
			conteudo := tr(v.Conteudo)
			x := v.X
			if v.Centrado {
				x -= pdf.GetStringWidth(conteudo) / 2
			}
			pdf.Text(x, v.Y, conteudo)

		case Linha:
			if v.Tracejada {
				pdf.SetDashPattern([]float64{3, 3}, 0)
			}
			pdf.Line(v.X1, v.Y1, v.X2, v.Y2)
			if v.Tracejada {
				pdf.SetDashPattern([]float64{}, 0)
			}

		case Retangulo:
			if v.Cinza > 0 {
				pdf.SetDrawColor(v.Cinza, v.Cinza, v.Cinza)
			}
			pdf.Rect(v.X, v.Y, v.Largura, v.Altura, "D")
			if v.Cinza > 0 {
				pdf.SetDrawColor(0, 0, 0)
			}

		case Imagem:
			// gofpdf guarda o erro de imagem no próprio Fpdf e invalida o
			// documento inteiro; por isso a validade é checada antes.
			if imagemLegivel(v.Caminho) {
				pdf.ImageOptions(v.Caminho, v.X, v.Y, v.Largura, v.Altura, false,
					gofpdf.ImageOptions{}, 0, "")
			} else {
				desenhar(pdf, tr, v.Alternativa)
			}
		}
	}
}

// imagemLegivel confirma que o caminho aponta para uma imagem decodificável.
func imagemLegivel(caminho string) bool {
	if caminho == "" {
		return false
	}
	f, err := os.Open(caminho)
	if err != nil {
		return false
	}
	defer f.Close()
	_, _, err = image.DecodeConfig(f)
	return err == nil
}
