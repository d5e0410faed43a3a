package carne

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abmepi/financeiro-api/internal/domain/entity"
)

func TestRenderizarProduzPDF(t *testing.T) {
	cfg := entity.ConfiguracaoPadrao()
	doc := Paginar(lote(7), cfg, "")

	saida, err := Renderizar(doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(saida, []byte("%PDF")))
	// Duas páginas no dicionário do PDF.
	assert.Contains(t, string(saida), "/Count 2")
}

func TestRenderizarDeterministico(t *testing.T) {
	cfg := entity.ConfiguracaoPadrao()
	doc := Paginar(lote(3), cfg, "")

	a, err := Renderizar(doc)
	require.NoError(t, err)
	b, err := Renderizar(doc)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRenderizarComImagemInvalidaUsaAlternativa(t *testing.T) {
	dir := t.TempDir()
	corrompida := filepath.Join(dir, "logo.png")
	require.NoError(t, os.WriteFile(corrompida, []byte("não sou uma imagem"), 0o644))

	cfg := entity.ConfiguracaoPadrao()
	cfg.QRCodeImagem = corrompida
	doc := Paginar(lote(1), cfg, corrompida)

	saida, err := Renderizar(doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(saida, []byte("%PDF")))
}

func TestRenderizarComImagemValida(t *testing.T) {
	dir := t.TempDir()
	caminho := filepath.Join(dir, "qr.png")

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.Black)
		}
	}
	f, err := os.Create(caminho)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	cfg := entity.ConfiguracaoPadrao()
	cfg.QRCodeImagem = caminho
	doc := Paginar(lote(1), cfg, caminho)

	saida, err := Renderizar(doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(saida, []byte("%PDF")))
}
