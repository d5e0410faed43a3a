// Comando financeiro: operações de cobrança da associação pela linha de
// comando.
//
// Subcomandos:
//
//	gerar     gera mensalidades em lote por competência
//	carne     emite o carnê PDF das pendências de um associado
//	exportar  exporta o extrato em CSV ou XLSX
//	relatorio gera o relatório tabular do extrato em PDF
//	baixa     dá baixa em lote nas mensalidades de um associado
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/abmepi/financeiro-api/internal/application/billing"
	"github.com/abmepi/financeiro-api/internal/domain/repository"
	"github.com/abmepi/financeiro-api/internal/infrastructure/postgres"
	"github.com/abmepi/financeiro-api/pkg/config"
	"github.com/abmepi/financeiro-api/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		uso()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com PostgreSQL")
	}
	defer pool.Close()

	mensalidadeRepo := postgres.NewMensalidadeRepository(pool)
	tipoRepo := postgres.NewTipoMensalidadeRepository(pool)
	associadoRepo := postgres.NewAssociadoRepository(pool)
	configRepo := postgres.NewConfiguracaoRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	gerarUC := billing.NewGerarMensalidadesUseCase(mensalidadeRepo, tipoRepo, associadoRepo)
	pagamentoUC := billing.NewPagamentoUseCase(txRunner, mensalidadeRepo)
	configUC := billing.NewConfiguracaoUseCase(configRepo)
	carneUC := billing.NewCarneUseCase(mensalidadeRepo, associadoRepo, configUC, cfg.Cobranca.LogoPath)
	extratoUC := billing.NewExtratoUseCase(mensalidadeRepo, associadoRepo, tipoRepo)

	switch os.Args[1] {
	case "gerar":
		err = cmdGerar(ctx, log, gerarUC, os.Args[2:])
	case "carne":
		err = cmdCarne(ctx, log, carneUC, cfg.Cobranca.OutputDir, os.Args[2:])
	case "exportar":
		err = cmdExportar(ctx, log, extratoUC, cfg.Cobranca.OutputDir, os.Args[2:])
	case "relatorio":
		err = cmdRelatorio(ctx, log, extratoUC, cfg.Cobranca.OutputDir, os.Args[2:])
	case "baixa":
		err = cmdBaixa(ctx, log, pagamentoUC, os.Args[2:])
	default:
		uso()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Str("comando", os.Args[1]).Msg("execução falhou")
	}
}

func uso() {
	fmt.Fprintln(os.Stderr, "uso: financeiro <gerar|carne|exportar|relatorio|baixa> [opções]")
}

func cmdGerar(ctx context.Context, log *logger.Logger, uc *billing.GerarMensalidadesUseCase, args []string) error {
	fs := flag.NewFlagSet("gerar", flag.ExitOnError)
	tipoID := fs.String("tipo", "", "ID do tipo de mensalidade")
	mes := fs.Int("mes", int(time.Now().Month()), "mês inicial (1-12)")
	ano := fs.Int("ano", time.Now().Year(), "ano da primeira competência")
	meses := fs.Int("meses", 1, "quantidade de competências")
	dia := fs.Int("dia", 10, "dia de vencimento")
	associados := fs.String("associados", "", "IDs separados por vírgula (vazio = todos os ativos)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var ids []string
	if *associados != "" {
		ids = strings.Split(*associados, ",")
	}

	resultado, err := uc.Gerar(ctx, billing.ParamsGeracao{
		TipoID:          *tipoID,
		MesInicial:      *mes,
		Ano:             *ano,
		QuantidadeMeses: *meses,
		DiaVencimento:   *dia,
		AssociadoIDs:    ids,
	})
	if err != nil {
		return err
	}

	log.Info().
		Int("criadas", resultado.Criadas).
		Int("duplicadas", resultado.Duplicadas).
		Int("falhas", len(resultado.Falhas)).
		Msg("lote de mensalidades processado")
	for _, f := range resultado.Falhas {
		log.Warn().
			Str("associado", f.AssociadoID).
			Str("competencia", f.Competencia).
			Err(f.Err).
			Msg("mensalidade não gerada")
	}
	return nil
}

func cmdCarne(ctx context.Context, log *logger.Logger, uc *billing.CarneUseCase, dir string, args []string) error {
	fs := flag.NewFlagSet("carne", flag.ExitOnError)
	associadoID := fs.String("associado", "", "ID do associado")
	if err := fs.Parse(args); err != nil {
		return err
	}

	carne, err := uc.Emitir(ctx, *associadoID)
	if err != nil {
		return err
	}

	destino := filepath.Join(dir, carne.NomeArquivo)
	if err := os.WriteFile(destino, carne.PDF, 0o644); err != nil {
		return fmt.Errorf("gravar carnê: %w", err)
	}
	log.Info().
		Str("arquivo", destino).
		Int("boletins", carne.Boletins).
		Msg("carnê emitido")
	return nil
}

func cmdExportar(ctx context.Context, log *logger.Logger, uc *billing.ExtratoUseCase, dir string, args []string) error {
	fs := flag.NewFlagSet("exportar", flag.ExitOnError)
	formato := fs.String("formato", "csv", "csv ou xlsx")
	destinoFlag := fs.String("saida", "", "arquivo de saída (vazio = nome padrão)")
	filtro, err := parseFiltro(fs, args)
	if err != nil {
		return err
	}

	destino := *destinoFlag
	switch *formato {
	case "csv":
		if destino == "" {
			destino = filepath.Join(dir, "mensalidades.csv")
		}
		f, err := os.Create(destino)
		if err != nil {
			return fmt.Errorf("criar arquivo: %w", err)
		}
		defer f.Close()
		if err := uc.ExportarCSV(ctx, f, filtro); err != nil {
			return err
		}
	case "xlsx":
		if destino == "" {
			destino = filepath.Join(dir, "mensalidades.xlsx")
		}
		saida, err := uc.ExportarXLSX(ctx, filtro)
		if err != nil {
			return err
		}
		if err := os.WriteFile(destino, saida, 0o644); err != nil {
			return fmt.Errorf("gravar planilha: %w", err)
		}
	default:
		return fmt.Errorf("formato desconhecido: %s", *formato)
	}

	log.Info().Str("arquivo", destino).Msg("extrato exportado")
	return nil
}

func cmdRelatorio(ctx context.Context, log *logger.Logger, uc *billing.ExtratoUseCase, dir string, args []string) error {
	fs := flag.NewFlagSet("relatorio", flag.ExitOnError)
	titulo := fs.String("titulo", "Relatório de Mensalidades", "título do relatório")
	destinoFlag := fs.String("saida", "", "arquivo de saída (vazio = nome padrão)")
	filtro, err := parseFiltro(fs, args)
	if err != nil {
		return err
	}

	saida, err := uc.RelatorioPDF(ctx, *titulo, filtro)
	if err != nil {
		return err
	}

	destino := *destinoFlag
	if destino == "" {
		destino = filepath.Join(dir, "relatorio_mensalidades.pdf")
	}
	if err := os.WriteFile(destino, saida, 0o644); err != nil {
		return fmt.Errorf("gravar relatório: %w", err)
	}
	log.Info().Str("arquivo", destino).Msg("relatório gerado")
	return nil
}

func cmdBaixa(ctx context.Context, log *logger.Logger, uc *billing.PagamentoUseCase, args []string) error {
	fs := flag.NewFlagSet("baixa", flag.ExitOnError)
	associadoID := fs.String("associado", "", "ID do associado dono das mensalidades")
	idsFlag := fs.String("ids", "", "IDs das mensalidades separados por vírgula")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ids := strings.Split(*idsFlag, ",")
	n, err := uc.BaixaEmLote(ctx, ids, *associadoID, time.Now())
	if err != nil {
		return err
	}
	log.Info().Int64("quitadas", n).Msg("baixa em lote concluída")
	return nil
}

// parseFiltro lê os filtros comuns de extrato de um FlagSet.
func parseFiltro(fs *flag.FlagSet, args []string) (repository.MensalidadeFilter, error) {
	associadoID := fs.String("associado", "", "filtrar por associado")
	status := fs.String("status", "", "pendente, pago, cancelado ou atrasado")
	de := fs.String("de", "", "vencimento a partir de (aaaa-mm-dd)")
	ate := fs.String("ate", "", "vencimento até (aaaa-mm-dd)")
	if err := fs.Parse(args); err != nil {
		return repository.MensalidadeFilter{}, err
	}

	filtro := repository.MensalidadeFilter{
		AssociadoID: *associadoID,
		Status:      *status,
	}
	if *de != "" {
		t, err := time.Parse("2006-01-02", *de)
		if err != nil {
			return filtro, fmt.Errorf("data inicial inválida: %w", err)
		}
		filtro.VencimentoDe = &t
	}
	if *ate != "" {
		t, err := time.Parse("2006-01-02", *ate)
		if err != nil {
			return filtro, fmt.Errorf("data final inválida: %w", err)
		}
		filtro.VencimentoAte = &t
	}
	return filtro, nil
}
