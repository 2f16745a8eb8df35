package services

import (
	"github.com/SscSPs/fintrack/internal/categorizer"
	portsrepo "github.com/SscSPs/fintrack/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fintrack/internal/core/ports/services"
	"github.com/SscSPs/fintrack/internal/jobs"
	"github.com/SscSPs/fintrack/internal/platform/config"
)

// Infrastructure holds the optional collaborators wired by main. Nil fields fall
// back to in-process defaults.
type Infrastructure struct {
	Categorizer *categorizer.Adapter
	Dispatcher  jobs.Dispatcher
	Archiver    portsrepo.StatementArchiver
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, infra Infrastructure) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	ingestionOpts := []IngestionServiceOption{
		WithReconcileTolerance(cfg.ReconcileTolerance),
	}
	if infra.Categorizer != nil {
		ingestionOpts = append(ingestionOpts, WithCategorizer(infra.Categorizer))
	}
	if infra.Dispatcher != nil {
		ingestionOpts = append(ingestionOpts, WithDispatcher(infra.Dispatcher))
	}
	if infra.Archiver != nil {
		ingestionOpts = append(ingestionOpts, WithArchiver(infra.Archiver))
	}

	container.Ingestion = NewIngestionService(repos.UploadRepo, repos.TransactionRepo, repos.CategoryRepo, ingestionOpts...)
	container.Category = NewCategoryService(repos.CategoryRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.TransactionRepo)
	container.Auth = NewAuthService(cfg)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.IngestionSvcFacade = (*ingestionService)(nil)
	_ portssvc.CategorySvcFacade  = (*categoryService)(nil)
)
