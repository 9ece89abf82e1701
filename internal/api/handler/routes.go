package handler

import (
	"net/http"

	"github.com/vfg2006/adsync-api/internal/api/handler/router"
	"github.com/vfg2006/adsync-api/internal/usecases/integration"
	"github.com/vfg2006/adsync-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func OAuth(service integration.Integrator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/oauth/authorize",
			Method:      http.MethodGet,
			Handler:     Authorize(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:    "/v1/oauth/callback",
			Method:  http.MethodGet,
			Handler: OAuthCallback(service),
		},
	}
}

func Connections(service integration.Integrator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/connections",
			Method:      http.MethodGet,
			Handler:     ListConnections(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/connections/:account_id",
			Method:      http.MethodDelete,
			Handler:     DeleteConnection(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodDelete,
			Handler:     EraseMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func AccountData(service integration.Integrator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/accounts/:account_id/refresh",
			Method:      http.MethodPost,
			Handler:     RefreshAccount(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/accounts/:account_id/data/:resource",
			Method:      http.MethodGet,
			Handler:     GetResource(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Snapshots(service integration.Integrator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/accounts/:account_id/snapshots",
			Method:      http.MethodPost,
			Handler:     RecordSnapshot(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/accounts/:account_id/snapshots",
			Method:      http.MethodGet,
			Handler:     QuerySnapshots(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/accounts/:account_id/snapshots/latest",
			Method:      http.MethodGet,
			Handler:     LatestSnapshot(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/accounts/:account_id/snapshots/compare",
			Method:      http.MethodGet,
			Handler:     CompareSnapshots(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/accounts/:account_id/snapshots/trend",
			Method:      http.MethodGet,
			Handler:     Trend(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Audit(service integration.Integrator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/audit",
			Method:      http.MethodGet,
			Handler:     ListAudit(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Maintenance(runner MaintenanceRunner) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/maintenance/run/:task",
			Method:      http.MethodPost,
			Handler:     RunMaintenance(runner),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/maintenance/status",
			Method:      http.MethodGet,
			Handler:     MaintenanceStatus(runner),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
