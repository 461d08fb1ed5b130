package editledgerservice

import (
	"log/slog"

	httpadapter "stockist/contexts/moderation-trust/edit-ledger-service/adapters/http"
	"stockist/contexts/moderation-trust/edit-ledger-service/adapters/memory"
	"stockist/contexts/moderation-trust/edit-ledger-service/application/commands"
	"stockist/contexts/moderation-trust/edit-ledger-service/application/queries"
	"stockist/contexts/moderation-trust/edit-ledger-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Submit  commands.SubmitEditUseCase
	Review  commands.ReviewSuggestionUseCase
	Queries queries.QueryUseCase
	Store   *memory.Store
}

type Dependencies struct {
	Ledger       ports.LedgerStore
	Targets      ports.TargetStore
	Contributors ports.ContributorDirectory
	Outbox       ports.OutboxRepository
	Clock        ports.Clock
	IDGen        ports.IDGenerator
	Logger       *slog.Logger
}

func NewModule(deps Dependencies) Module {
	submit := commands.SubmitEditUseCase{
		Ledger:       deps.Ledger,
		Targets:      deps.Targets,
		Contributors: deps.Contributors,
		Outbox:       deps.Outbox,
		Clock:        deps.Clock,
		IDGen:        deps.IDGen,
		Logger:       deps.Logger,
	}
	review := commands.ReviewSuggestionUseCase{
		Ledger:       deps.Ledger,
		Targets:      deps.Targets,
		Contributors: deps.Contributors,
		Clock:        deps.Clock,
		Logger:       deps.Logger,
	}
	queryUseCase := queries.QueryUseCase{
		Ledger: deps.Ledger,
		Logger: deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			SubmitEdit: submit,
			Review:     review,
			Queries:    queryUseCase,
			Logger:     deps.Logger,
		},
		Submit:  submit,
		Review:  review,
		Queries: queryUseCase,
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Ledger:       store,
		Targets:      store,
		Contributors: store,
		Outbox:       store,
		Clock:        store,
		IDGen:        store,
		Logger:       logger,
	})
	module.Store = store
	return module
}
