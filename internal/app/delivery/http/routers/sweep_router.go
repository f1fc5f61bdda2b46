package routers

import (
	"doccare-service/internal/app/delivery/http/controllers"
	"doccare-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachSweepRoutes(router chi.Router, middlewares *middlewares.Middlewares, sweepController *controllers.SweepController) {
	router.With(middlewares.RequireSweepAPIKey, middlewares.SweepQuota).Post("/{name}", sweepController.RunSweep)
}
