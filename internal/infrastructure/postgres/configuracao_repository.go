package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/abmepi/financeiro-api/internal/domain"
	"github.com/abmepi/financeiro-api/internal/domain/entity"
	"github.com/abmepi/financeiro-api/internal/domain/repository"
)

var _ repository.ConfiguracaoCobrancaRepository = (*ConfiguracaoRepo)(nil)

// ConfiguracaoRepo implementação de ConfiguracaoCobrancaRepository. Recebe o
// pool (não um Querier) porque Activate e Save abrem transação própria para
// manter a invariante de configuração ativa única.
type ConfiguracaoRepo struct {
	pool *pgxpool.Pool
}

// NewConfiguracaoRepository constrói o adaptador sobre o pool.
func NewConfiguracaoRepository(pool *pgxpool.Pool) *ConfiguracaoRepo {
	return &ConfiguracaoRepo{pool: pool}
}

const colunasConfiguracao = `id, nome, ativo, chave_pix, titular, banco, mensagem,
	telefone_comprovante, qrcode_ativo, qrcode_imagem, qrcode_tamanho, created_at, updated_at`

// GetActive devolve a configuração ativa, ou nil quando nenhuma existe.
func (r *ConfiguracaoRepo) GetActive() (*entity.ConfiguracaoCobranca, error) {
	query := `SELECT ` + colunasConfiguracao + ` FROM configuracoes_cobranca WHERE ativo LIMIT 1`
	cfg, err := scanConfiguracao(r.pool.QueryRow(context.Background(), query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get configuração ativa: %w", err)
	}
	return cfg, nil
}

// GetByID busca uma configuração pelo ID.
func (r *ConfiguracaoRepo) GetByID(id string) (*entity.ConfiguracaoCobranca, error) {
	query := `SELECT ` + colunasConfiguracao + ` FROM configuracoes_cobranca WHERE id = $1`
	cfg, err := scanConfiguracao(r.pool.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNaoEncontrado
		}
		return nil, fmt.Errorf("get configuração: %w", err)
	}
	return cfg, nil
}

// List devolve todas as configurações, da mais antiga para a mais nova.
func (r *ConfiguracaoRepo) List() ([]*entity.ConfiguracaoCobranca, error) {
	query := `SELECT ` + colunasConfiguracao + ` FROM configuracoes_cobranca ORDER BY created_at`
	rows, err := r.pool.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list configurações: %w", err)
	}
	defer rows.Close()

	var out []*entity.ConfiguracaoCobranca
	for rows.Next() {
		cfg, err := scanConfiguracao(rows)
		if err != nil {
			return nil, fmt.Errorf("scan configuração: %w", err)
		}
		out = append(out, cfg)
	}
	return out, rows.Err()
}

// Save insere ou atualiza a configuração. Quando cfg.Ativo é true, desativa
// as demais dentro da mesma transação.
func (r *ConfiguracaoRepo) Save(cfg *entity.ConfiguracaoCobranca) error {
	ctx := context.Background()
	agora := time.Now()
	if cfg.ID == "" {
		cfg.ID = uuid.New().String()
		cfg.CreatedAt = agora
	}
	cfg.UpdatedAt = agora

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if cfg.Ativo {
		if _, err := tx.Exec(ctx, `UPDATE configuracoes_cobranca SET ativo = false WHERE id <> $1`, cfg.ID); err != nil {
			return fmt.Errorf("desativar demais configurações: %w", err)
		}
	}

	query := `
		INSERT INTO configuracoes_cobranca (id, nome, ativo, chave_pix, titular, banco, mensagem,
			telefone_comprovante, qrcode_ativo, qrcode_imagem, qrcode_tamanho, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			nome = EXCLUDED.nome,
			ativo = EXCLUDED.ativo,
			chave_pix = EXCLUDED.chave_pix,
			titular = EXCLUDED.titular,
			banco = EXCLUDED.banco,
			mensagem = EXCLUDED.mensagem,
			telefone_comprovante = EXCLUDED.telefone_comprovante,
			qrcode_ativo = EXCLUDED.qrcode_ativo,
			qrcode_imagem = EXCLUDED.qrcode_imagem,
			qrcode_tamanho = EXCLUDED.qrcode_tamanho,
			updated_at = EXCLUDED.updated_at`
	_, err = tx.Exec(ctx, query,
		cfg.ID, cfg.Nome, cfg.Ativo, cfg.ChavePix, cfg.Titular, cfg.Banco, cfg.Mensagem,
		cfg.TelefoneComprovante, cfg.QRCodeAtivo, nullIfEmpty(cfg.QRCodeImagem), cfg.QRCodeTamanho,
		cfg.CreatedAt, cfg.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("salvar configuração: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Activate torna a configuração a única ativa, na mesma transação.
func (r *ConfiguracaoRepo) Activate(id string) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `UPDATE configuracoes_cobranca SET ativo = false WHERE id <> $1`, id); err != nil {
		return fmt.Errorf("desativar demais configurações: %w", err)
	}
	tag, err := tx.Exec(ctx, `UPDATE configuracoes_cobranca SET ativo = true, updated_at = $2 WHERE id = $1`, id, time.Now())
	if err != nil {
		return fmt.Errorf("ativar configuração: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNaoEncontrado
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func scanConfiguracao(row pgx.Row) (*entity.ConfiguracaoCobranca, error) {
	var cfg entity.ConfiguracaoCobranca
	var qrcodeImagem *string
	err := row.Scan(&cfg.ID, &cfg.Nome, &cfg.Ativo, &cfg.ChavePix, &cfg.Titular, &cfg.Banco,
		&cfg.Mensagem, &cfg.TelefoneComprovante, &cfg.QRCodeAtivo, &qrcodeImagem,
		&cfg.QRCodeTamanho, &cfg.CreatedAt, &cfg.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if qrcodeImagem != nil {
		cfg.QRCodeImagem = *qrcodeImagem
	}
	return &cfg, nil
}
