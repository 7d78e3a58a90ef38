package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hmranwar/guardpost-backend/api/controllers"
	"github.com/hmranwar/guardpost-backend/api/middleware"
	"github.com/hmranwar/guardpost-backend/internal/attendance"
	"github.com/hmranwar/guardpost-backend/internal/auth"
	"github.com/hmranwar/guardpost-backend/internal/clients"
	"github.com/hmranwar/guardpost-backend/internal/employees"
	"github.com/hmranwar/guardpost-backend/internal/generalinv"
	"github.com/hmranwar/guardpost-backend/internal/leaveperiods"
	"github.com/hmranwar/guardpost-backend/internal/payroll"
	"github.com/hmranwar/guardpost-backend/internal/restrictedinv"
	"github.com/hmranwar/guardpost-backend/internal/vehicles"
	"github.com/hmranwar/guardpost-backend/pkg/auth/session"
	"github.com/hmranwar/guardpost-backend/pkg/config"
	"github.com/hmranwar/guardpost-backend/pkg/logger"
	"github.com/hmranwar/guardpost-backend/pkg/metrics"
	"github.com/hmranwar/guardpost-backend/pkg/redis"
)

type pinger interface {
	Ping(context.Context) error
}

// Services bundles the domain services the router mounts.
type Services struct {
	Auth          auth.Service
	Attendance    attendance.Service
	LeavePeriods  leaveperiods.Service
	Employees     employees.Service
	Vehicles      vehicles.Service
	Clients       clients.Service
	GeneralInv    generalinv.Service
	RestrictedInv restrictedinv.Service
	Payroll       payroll.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP pinger,
	redisClient *redis.Client,
	sessionVerifier session.AccessSessionChecker,
	httpMetrics *metrics.HTTPMetrics,
	gatherer prometheus.Gatherer,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUserLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).
			Post("/login", controllers.AuthLogin(svcs.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(svcs.Auth, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessionVerifier, logg))
			r.Post("/logout", controllers.AuthLogout(svcs.Auth, logg))
			r.Get("/me", controllers.AuthMe(svcs.Auth, logg))
			r.With(middleware.RequireSuperuser(logg)).
				Post("/register", controllers.AuthRegister(svcs.Auth, logg))
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionVerifier, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/attendance", func(r chi.Router) {
			r.Put("/", controllers.AttendanceBulkUpsert(svcs.Attendance, logg))
			r.Get("/", controllers.AttendanceByDate(svcs.Attendance, logg))
			r.Get("/range", controllers.AttendanceRange(svcs.Attendance, logg))
			r.Get("/summary", controllers.AttendanceSummary(svcs.Attendance, logg))
			r.Get("/employee/{employeeID}", controllers.AttendanceByEmployee(svcs.Attendance, logg))
		})

		r.Route("/leave-periods", func(r chi.Router) {
			r.Get("/", controllers.LeavePeriodList(svcs.LeavePeriods, logg))
			r.Post("/", controllers.LeavePeriodCreate(svcs.LeavePeriods, logg))
			r.Get("/alerts", controllers.LeavePeriodAlerts(svcs.LeavePeriods, logg))
			r.Patch("/{id}", controllers.LeavePeriodUpdate(svcs.LeavePeriods, logg))
			r.Delete("/{id}", controllers.LeavePeriodDelete(svcs.LeavePeriods, logg))
		})

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", controllers.EmployeeList(svcs.Employees, logg))
			r.Post("/", controllers.EmployeeCreate(svcs.Employees, logg))
			r.With(middleware.RequireSuperuser(logg)).
				Delete("/", controllers.EmployeeDeleteAll(svcs.Employees, logg))
			r.With(middleware.RequireSuperuser(logg)).
				Post("/bulk-delete", controllers.EmployeeBulkDelete(svcs.Employees, logg))

			r.Route("/{employeeID}", func(r chi.Router) {
				r.Get("/", controllers.EmployeeGet(svcs.Employees, logg))
				r.Patch("/", controllers.EmployeeUpdate(svcs.Employees, logg))
				r.Delete("/", controllers.EmployeeDelete(svcs.Employees, logg))

				r.Route("/warnings", func(r chi.Router) {
					r.Get("/", controllers.EmployeeWarningList(svcs.Employees, logg))
					r.Post("/", controllers.EmployeeWarningCreate(svcs.Employees, logg))
					r.Delete("/{warningID}", controllers.EmployeeWarningDelete(svcs.Employees, logg))
				})
				r.Route("/documents", func(r chi.Router) {
					r.Get("/", controllers.EmployeeDocumentList(svcs.Employees, logg))
					r.Post("/", controllers.EmployeeDocumentAdd(svcs.Employees, logg))
					r.Delete("/{docID}", controllers.EmployeeDocumentDelete(svcs.Employees, logg))
				})
			})
		})

		r.Route("/vehicles", func(r chi.Router) {
			r.Get("/", controllers.VehicleList(svcs.Vehicles, logg))
			r.Post("/", controllers.VehicleCreate(svcs.Vehicles, logg))
			r.Post("/import", controllers.VehicleImport(svcs.Vehicles, logg))

			r.Route("/{vehicleID}", func(r chi.Router) {
				r.Get("/", controllers.VehicleGet(svcs.Vehicles, logg))
				r.Patch("/", controllers.VehicleUpdate(svcs.Vehicles, logg))
				r.Delete("/", controllers.VehicleDelete(svcs.Vehicles, logg))

				r.Route("/documents", func(r chi.Router) {
					r.Get("/", controllers.VehicleDocumentList(svcs.Vehicles, logg))
					r.Post("/", controllers.VehicleDocumentAdd(svcs.Vehicles, logg))
					r.Delete("/{docID}", controllers.VehicleDocumentDelete(svcs.Vehicles, logg))
				})
				r.Route("/images", func(r chi.Router) {
					r.Get("/", controllers.VehicleImageList(svcs.Vehicles, logg))
					r.Post("/", controllers.VehicleImageAdd(svcs.Vehicles, logg))
					r.Delete("/{imageID}", controllers.VehicleImageDelete(svcs.Vehicles, logg))
				})
			})
		})

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", controllers.ClientList(svcs.Clients, logg))
			r.Post("/", controllers.ClientCreate(svcs.Clients, logg))

			r.Route("/{clientID}", func(r chi.Router) {
				r.Get("/", controllers.ClientGet(svcs.Clients, logg))
				r.Patch("/", controllers.ClientUpdate(svcs.Clients, logg))
				r.Delete("/", controllers.ClientDelete(svcs.Clients, logg))

				r.Route("/contacts", func(r chi.Router) {
					r.Get("/", controllers.ClientContactList(svcs.Clients, logg))
					r.Post("/", controllers.ClientContactCreate(svcs.Clients, logg))
					r.Patch("/{contactID}", controllers.ClientContactUpdate(svcs.Clients, logg))
					r.Delete("/{contactID}", controllers.ClientContactDelete(svcs.Clients, logg))
				})
				r.Route("/addresses", func(r chi.Router) {
					r.Get("/", controllers.ClientAddressList(svcs.Clients, logg))
					r.Post("/", controllers.ClientAddressCreate(svcs.Clients, logg))
					r.Patch("/{addressID}", controllers.ClientAddressUpdate(svcs.Clients, logg))
					r.Delete("/{addressID}", controllers.ClientAddressDelete(svcs.Clients, logg))
				})
				r.Route("/sites", func(r chi.Router) {
					r.Get("/", controllers.ClientSiteList(svcs.Clients, logg))
					r.Post("/", controllers.ClientSiteCreate(svcs.Clients, logg))
					r.Patch("/{siteID}", controllers.ClientSiteUpdate(svcs.Clients, logg))
					r.Delete("/{siteID}", controllers.ClientSiteDelete(svcs.Clients, logg))
				})
				r.Route("/contracts", func(r chi.Router) {
					r.Get("/", controllers.ClientContractList(svcs.Clients, logg))
					r.Post("/", controllers.ClientContractCreate(svcs.Clients, logg))
					r.Patch("/{contractID}", controllers.ClientContractUpdate(svcs.Clients, logg))
					r.Delete("/{contractID}", controllers.ClientContractDelete(svcs.Clients, logg))
				})
			})
		})

		r.Route("/sites/{siteID}/guards", func(r chi.Router) {
			r.Get("/", controllers.SiteGuardList(svcs.Clients, logg))
			r.Post("/", controllers.SiteGuardAssign(svcs.Clients, logg))
			r.Post("/{assignmentID}/eject", controllers.SiteGuardEject(svcs.Clients, logg))
		})
		r.Get("/guards/available", controllers.AvailableGuardList(svcs.Clients, logg))

		r.Route("/general-inventory", func(r chi.Router) {
			r.Get("/categories", controllers.GeneralCategoryList(svcs.GeneralInv, logg))
			r.Get("/transactions", controllers.GeneralTransactionList(svcs.GeneralInv, logg))

			r.Route("/items", func(r chi.Router) {
				r.Get("/", controllers.GeneralItemList(svcs.GeneralInv, logg))
				r.Post("/", controllers.GeneralItemCreate(svcs.GeneralInv, logg))

				r.Route("/{itemCode}", func(r chi.Router) {
					r.Get("/", controllers.GeneralItemGet(svcs.GeneralInv, logg))
					r.Patch("/", controllers.GeneralItemUpdate(svcs.GeneralInv, logg))
					r.Delete("/", controllers.GeneralItemDelete(svcs.GeneralInv, logg))
					r.Post("/issue", controllers.GeneralStockMove(svcs.GeneralInv, logg, "issue"))
					r.Post("/return", controllers.GeneralStockMove(svcs.GeneralInv, logg, "return"))
					r.Post("/lost", controllers.GeneralStockMove(svcs.GeneralInv, logg, "lost"))
					r.Post("/damaged", controllers.GeneralStockMove(svcs.GeneralInv, logg, "damaged"))
					r.Post("/adjust", controllers.GeneralStockAdjust(svcs.GeneralInv, logg))
				})
			})
		})

		r.Route("/restricted-inventory", func(r chi.Router) {
			r.Get("/transactions", controllers.RestrictedTransactionList(svcs.RestrictedInv, logg))

			r.Route("/items", func(r chi.Router) {
				r.Get("/", controllers.RestrictedItemList(svcs.RestrictedInv, logg))
				r.Post("/", controllers.RestrictedItemCreate(svcs.RestrictedInv, logg))

				r.Route("/{itemCode}", func(r chi.Router) {
					r.Get("/", controllers.RestrictedItemGet(svcs.RestrictedInv, logg))
					r.Patch("/", controllers.RestrictedItemUpdate(svcs.RestrictedInv, logg))
					r.Delete("/", controllers.RestrictedItemDelete(svcs.RestrictedInv, logg))
					r.Get("/serial-units", controllers.SerialUnitList(svcs.RestrictedInv, logg))
					r.Post("/serial-units", controllers.SerialUnitCreate(svcs.RestrictedInv, logg))
				})
			})

			r.Route("/serial-units/{unitID}", func(r chi.Router) {
				r.Post("/issue", controllers.SerialUnitIssue(svcs.RestrictedInv, logg))
				r.Post("/return", controllers.SerialUnitReturn(svcs.RestrictedInv, logg))
			})
		})

		r.Route("/payroll", func(r chi.Router) {
			r.Route("/sheets", func(r chi.Router) {
				r.Get("/", controllers.PayrollSheetList(svcs.Payroll, logg))
				r.Post("/", controllers.PayrollSheetCreate(svcs.Payroll, logg))

				r.Route("/{sheetID}", func(r chi.Router) {
					r.Get("/", controllers.PayrollSheetGet(svcs.Payroll, logg))
					r.Patch("/", controllers.PayrollSheetUpdate(svcs.Payroll, logg))
					r.Delete("/", controllers.PayrollSheetDelete(svcs.Payroll, logg))
					r.Post("/finalize", controllers.PayrollSheetFinalize(svcs.Payroll, logg))
				})
			})
			r.Get("/months/{month}/summary", controllers.PayrollMonthSummary(svcs.Payroll, logg))
		})
	})

	return r
}
