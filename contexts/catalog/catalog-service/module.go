package catalogservice

import (
	"log/slog"

	httpadapter "stockist/contexts/catalog/catalog-service/adapters/http"
	"stockist/contexts/catalog/catalog-service/adapters/memory"
	"stockist/contexts/catalog/catalog-service/application/commands"
	"stockist/contexts/catalog/catalog-service/application/queries"
	"stockist/contexts/catalog/catalog-service/ports"
)

type Module struct {
	Handler    httpadapter.Handler
	Submit     commands.SubmitProductUseCase
	EditTarget commands.EditTargetUseCase
	Resolve    queries.ResolveUseCase
	List       queries.ListUseCase
	Store      *memory.Store
}

type Dependencies struct {
	Canonical    ports.CanonicalRepository
	Contributed  ports.ContributedRepository
	Contributors ports.ContributorDirectory
	Clock        ports.Clock
	IDGen        ports.IDGenerator
	Logger       *slog.Logger
}

func NewModule(deps Dependencies) Module {
	submit := commands.SubmitProductUseCase{
		Contributed:  deps.Contributed,
		Contributors: deps.Contributors,
		Clock:        deps.Clock,
		IDGen:        deps.IDGen,
		Logger:       deps.Logger,
	}
	editTarget := commands.EditTargetUseCase{
		Canonical:   deps.Canonical,
		Contributed: deps.Contributed,
		Clock:       deps.Clock,
		IDGen:       deps.IDGen,
		Logger:      deps.Logger,
	}
	resolve := queries.ResolveUseCase{
		Canonical:   deps.Canonical,
		Contributed: deps.Contributed,
	}
	list := queries.ListUseCase{
		Canonical:   deps.Canonical,
		Contributed: deps.Contributed,
	}

	return Module{
		Handler: httpadapter.Handler{
			Submit:  submit,
			Resolve: resolve,
			List:    list,
			Logger:  deps.Logger,
		},
		Submit:     submit,
		EditTarget: editTarget,
		Resolve:    resolve,
		List:       list,
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Canonical:    store,
		Contributed:  store,
		Contributors: store,
		Clock:        store,
		IDGen:        store,
		Logger:       logger,
	})
	module.Store = store
	return module
}
