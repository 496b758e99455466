package components

import (
	"station-booking/internal/infra/memstore"
	"station-booking/internal/infra/readstore"
	"station-booking/internal/infra/uow"
	"station-booking/internal/pkg/config"
	"station-booking/internal/pkg/errs"
	"station-booking/internal/usecase/queries"
	"station-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewStores,
	),
)

// Stores is the write and read side of one store driver.
type Stores struct {
	fx.Out

	UoW       shared.UnitOfWork
	Resources queries.ResourceReadStore
	Bookings  queries.BookingReadStore
	Analytics queries.AnalyticsReadStore
	Users     queries.UserReadStore
}

func NewStores(cfg config.Config, pool *pgxpool.Pool) (Stores, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		return newMemoryStores(memstore.New()), nil
	case config.StoreDriverPostgres:
		if pool == nil {
			return Stores{}, errs.New("postgres store requires a database pool")
		}
		return newPostgresStores(pool), nil
	default:
		return Stores{}, errs.Newf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}
}

func newMemoryStores(s *memstore.Store) Stores {
	return Stores{
		UoW:       s,
		Resources: memstore.NewResourceReadStore(s),
		Bookings:  memstore.NewBookingReadStore(s),
		Analytics: memstore.NewAnalyticsReadStore(s),
		Users:     memstore.NewUserReadStore(s),
	}
}

func newPostgresStores(pool *pgxpool.Pool) Stores {
	return Stores{
		UoW:       uow.NewPostgresUoW(pool),
		Resources: readstore.NewResourceReadStore(pool),
		Bookings:  readstore.NewBookingReadStore(pool),
		Analytics: readstore.NewAnalyticsReadStore(pool),
		Users:     readstore.NewUserReadStore(pool),
	}
}
