package api

import (
	"net/http"

	"github.com/fibreflow/workforce/internal/config"
	"github.com/fibreflow/workforce/pkg/routes"
	"github.com/fibreflow/workforce/pkg/storage"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) {
	storageHandler := newStorageHandler(
		runtime.Storage,
		runtime.Logger,
		storage.MaxListCap,
	)

	routes.Register(
		mux,
		domain.Contractors.Handler().Routes(),
		domain.Documents.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
		domain.Compliance.Handler().Routes(),
		domain.Approval.Handler().Routes(),
		domain.Queue.Handler().Routes(),
		domain.Onboarding.Handler().Routes(),
		storageHandler.routes(),
	)
}
