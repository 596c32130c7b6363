// seed genera el script SQL de salas, lotes mensuales y pallets a partir del CSV de la granja
// (columnas sala;lote;pallet;bandejas) y opcionalmente lo aplica a la base configurada.
//
// Uso: go run ./cmd/seed [-charset latin1] [-out seed.sql] [-apply] pallets.csv
// Sin -out escribe el script en stdout. -apply usa DB_DRIVER / DATABASE_URL / SQLITE_PATH.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/jhoicas/tenebrio-farm/internal/infrastructure/postgres"
	"github.com/jhoicas/tenebrio-farm/internal/infrastructure/seed"
	"github.com/jhoicas/tenebrio-farm/internal/infrastructure/sqlite"
	"github.com/jhoicas/tenebrio-farm/pkg/config"
)

func main() {
	charset := flag.String("charset", "utf-8", "codificación del CSV (utf-8 | latin1)")
	outPath := flag.String("out", "", "archivo de salida del script SQL (vacío = stdout)")
	apply := flag.Bool("apply", false, "ejecutar el script contra la base configurada")
	flag.Parse()

	csvPath := "pallets.csv"
	if flag.NArg() > 0 {
		csvPath = flag.Arg(0)
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	ref, err := seed.ReadCSV(f, *charset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	stmts := seed.Statements(ref)

	var out io.Writer = os.Stdout
	if *outPath != "" {
		file, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
			os.Exit(1)
		}
		defer file.Close()
		out = file
	}
	fmt.Fprintf(out, "-- Datos de referencia generados desde %s\n", csvPath)
	for _, s := range stmts {
		fmt.Fprintln(out, s)
	}

	if *apply {
		if err := applyStatements(context.Background(), stmts); err != nil {
			fmt.Fprintf(os.Stderr, "Aplicar script: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Fprintf(os.Stderr, "Generado: %d salas, %d lotes, %d pallets\n",
		len(ref.Rooms), len(ref.BatchMonths), len(ref.Pallets))
}

func applyStatements(ctx context.Context, stmts []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	switch cfg.DB.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.DB.SQLitePath)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := sqlite.Migrate(ctx, db); err != nil {
			return err
		}
		for _, s := range stmts {
			if _, err := db.ExecContext(ctx, s); err != nil {
				return fmt.Errorf("%s: %w", s, err)
			}
		}
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			return err
		}
		for _, s := range stmts {
			if _, err := pool.Exec(ctx, s); err != nil {
				return fmt.Errorf("%s: %w", s, err)
			}
		}
	}
	return nil
}
