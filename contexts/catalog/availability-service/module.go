package availabilityservice

import (
	"log/slog"

	httpadapter "stockist/contexts/catalog/availability-service/adapters/http"
	"stockist/contexts/catalog/availability-service/adapters/memory"
	"stockist/contexts/catalog/availability-service/application/commands"
	"stockist/contexts/catalog/availability-service/application/queries"
	"stockist/contexts/catalog/availability-service/ports"
)

type Module struct {
	Handler   httpadapter.Handler
	Report    commands.ReportAvailabilityUseCase
	Aggregate queries.AggregateUseCase
	Store     *memory.Store
}

type Dependencies struct {
	Records      ports.AvailabilityRepository
	Contributors ports.ContributorDirectory
	Clock        ports.Clock
	IDGen        ports.IDGenerator
	Logger       *slog.Logger
}

func NewModule(deps Dependencies) Module {
	report := commands.ReportAvailabilityUseCase{
		Records:      deps.Records,
		Contributors: deps.Contributors,
		Clock:        deps.Clock,
		IDGen:        deps.IDGen,
		Logger:       deps.Logger,
	}
	aggregate := queries.AggregateUseCase{
		Records: deps.Records,
		Logger:  deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			Report:    report,
			Aggregate: aggregate,
			Logger:    deps.Logger,
		},
		Report:    report,
		Aggregate: aggregate,
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Records:      store,
		Contributors: store,
		Clock:        store,
		IDGen:        store,
		Logger:       logger,
	})
	module.Store = store
	return module
}
