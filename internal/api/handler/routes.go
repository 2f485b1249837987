package handler

import (
	"net/http"

	"github.com/vfg2006/retail-manager-api/internal/api/handler/router"
	"github.com/vfg2006/retail-manager-api/internal/usecases/authenticating"
	"github.com/vfg2006/retail-manager-api/internal/usecases/cataloging"
	"github.com/vfg2006/retail-manager-api/internal/usecases/forecasting"
	"github.com/vfg2006/retail-manager-api/internal/usecases/reporting"
	"github.com/vfg2006/retail-manager-api/internal/usecases/selling"
	"github.com/vfg2006/retail-manager-api/pkg/middleware"
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

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: CreateUser(service),
		},
		{
			Path:        "/v1/users/:id/generate-password",
			Method:      http.MethodPost,
			Handler:     GeneratePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func User(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodGet,
			Handler:     GetUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodPut,
			Handler:     UpdateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Catalog(service cataloging.CatalogService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/categories",
			Method:      http.MethodGet,
			Handler:     ListCategories(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/categories",
			Method:      http.MethodPost,
			Handler:     CreateCategory(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/categories/:id",
			Method:      http.MethodPut,
			Handler:     UpdateCategory(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/categories/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteCategory(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/products",
			Method:      http.MethodGet,
			Handler:     ListProducts(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/products",
			Method:      http.MethodPost,
			Handler:     CreateProduct(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/products/:id",
			Method:      http.MethodGet,
			Handler:     GetProduct(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/products/:id",
			Method:      http.MethodPut,
			Handler:     UpdateProduct(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/products/:id",
			Method:      http.MethodDelete,
			Handler:     DeactivateProduct(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}

func Sales(service selling.SellingService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/sales",
			Method:      http.MethodPost,
			Handler:     Checkout(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/sales",
			Method:      http.MethodGet,
			Handler:     ListMySales(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/sales/:id",
			Method:      http.MethodGet,
			Handler:     GetSale(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/sales/:id/confirm-payment",
			Method:      http.MethodPost,
			Handler:     ConfirmSalePayment(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}

func Dashboard(service forecasting.Forecaster) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/dashboard/historical-data",
			Method:      http.MethodPost,
			Handler:     GetHistoricalData(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/dashboard/generate-prediction",
			Method:      http.MethodPost,
			Handler:     GeneratePrediction(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}

func Reports(service reporting.ReportService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/reports/generate",
			Method:      http.MethodPost,
			Handler:     GenerateReport(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}
