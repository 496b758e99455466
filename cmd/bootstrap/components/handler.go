package components

import (
	"log/slog"

	"station-booking/internal/handler"
	"station-booking/internal/handler/api"
	"station-booking/internal/handler/middleware"
	"station-booking/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewResourceHandler,
		api.NewBookingHandler,
		api.NewAnalyticsHandler,
		api.NewUserHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(registerRoutes),
)

type routeParams struct {
	fx.In

	Engine    *gin.Engine
	Config    config.Config
	Logger    *slog.Logger
	Auth      *api.AuthHandler
	Resource  *api.ResourceHandler
	Booking   *api.BookingHandler
	Analytics *api.AnalyticsHandler
	User      *api.UserHandler
	AuthMw    *middleware.AuthMiddleware
}

func registerRoutes(p routeParams) {
	handler.NewRouter(p.Engine, p.Config, p.Logger, handler.Handlers{
		Auth:      p.Auth,
		Resource:  p.Resource,
		Booking:   p.Booking,
		Analytics: p.Analytics,
		User:      p.User,
	}, p.AuthMw)
}
