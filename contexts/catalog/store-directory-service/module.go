package storedirectoryservice

import (
	"log/slog"

	httpadapter "stockist/contexts/catalog/store-directory-service/adapters/http"
	"stockist/contexts/catalog/store-directory-service/adapters/memory"
	"stockist/contexts/catalog/store-directory-service/application/commands"
	"stockist/contexts/catalog/store-directory-service/application/queries"
	"stockist/contexts/catalog/store-directory-service/ports"
)

type Module struct {
	Handler    httpadapter.Handler
	Submit     commands.SubmitStoreUseCase
	EditTarget commands.EditTargetUseCase
	Queries    queries.QueryUseCase
	Store      *memory.Store
}

type Dependencies struct {
	Stores       ports.StoreRepository
	Contributors ports.ContributorDirectory
	Clock        ports.Clock
	IDGen        ports.IDGenerator
	Logger       *slog.Logger
}

func NewModule(deps Dependencies) Module {
	submit := commands.SubmitStoreUseCase{
		Stores:       deps.Stores,
		Contributors: deps.Contributors,
		Clock:        deps.Clock,
		IDGen:        deps.IDGen,
		Logger:       deps.Logger,
	}
	editTarget := commands.EditTargetUseCase{
		Stores: deps.Stores,
		Clock:  deps.Clock,
	}
	queryUseCase := queries.QueryUseCase{Stores: deps.Stores}

	return Module{
		Handler: httpadapter.Handler{
			Submit:  submit,
			Queries: queryUseCase,
			Logger:  deps.Logger,
		},
		Submit:     submit,
		EditTarget: editTarget,
		Queries:    queryUseCase,
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Stores:       store,
		Contributors: store,
		Clock:        store,
		IDGen:        store,
		Logger:       logger,
	})
	module.Store = store
	return module
}
