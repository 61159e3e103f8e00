package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/andresvaldez/despacho/internal/cli"
	"github.com/andresvaldez/despacho/internal/db"
	"github.com/andresvaldez/despacho/internal/repository"
	"github.com/andresvaldez/despacho/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.despacho/despacho.db
	dbPath := os.Getenv("DESPACHO_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".despacho", "despacho.db")
	}

	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer logger.Sync()

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	expenseRepo := repository.NewSQLiteExpenseRepo(database)
	supplierRepo := repository.NewSQLiteSupplierRepo(database)
	clientRepo := repository.NewSQLiteClientRepo(database)
	responsibleRepo := repository.NewSQLiteResponsibleRepo(database)
	projectRepo := repository.NewSQLiteProjectRepo(database)
	billRepo := repository.NewSQLiteBillRepo(database)
	catalogRepo := repository.NewSQLiteCatalogRepo(database)
	stateRepo := repository.NewSQLiteStateRepo(database)

	// Unit of work covers supplier writes, which span two tables.
	uow := db.NewSQLiteUnitOfWork(database)

	app := &cli.App{
		Expenses:     service.NewExpenseService(expenseRepo),
		Suppliers:    service.NewSupplierService(supplierRepo, uow),
		Clients:      service.NewClientService(clientRepo),
		Responsibles: service.NewResponsibleService(responsibleRepo),
		Projects:     service.NewProjectService(projectRepo),
		Bills:        service.NewBillService(billRepo),
		Catalog:      service.NewCatalogService(catalogRepo, logger),
		State:        service.NewStateService(stateRepo, logger),
	}

	// Detect interactive terminal for the console entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

// newLogger logs to the file named by DESPACHO_LOG, or discards
// everything. Writing diagnostics to the terminal would corrupt the
// alt-screen UI.
func newLogger() (*zap.Logger, error) {
	logPath := os.Getenv("DESPACHO_LOG")
	if logPath == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{logPath}
	cfg.ErrorOutputPaths = []string{logPath}
	return cfg.Build()
}
