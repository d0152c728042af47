package router

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"orgdirectory/backend/foundation/web"
	"orgdirectory/backend/internal/auth"
	"orgdirectory/backend/internal/middleware"
	"orgdirectory/backend/internal/pkg/repository/postgresql"
	"orgdirectory/backend/internal/repository/postgres/company"
	"orgdirectory/backend/internal/repository/postgres/employee"
	"orgdirectory/backend/internal/repository/postgres/user"

	auth_controller "orgdirectory/backend/internal/controller/http/v1/auth"
	company_controller "orgdirectory/backend/internal/controller/http/v1/company"
	employee_controller "orgdirectory/backend/internal/controller/http/v1/employee"
)

// Router is the application context: the store handle, the token issuer and
// the HTTP app every handler is registered on.
type Router struct {
	*web.App
	postgresDB     *postgresql.Database
	port           string
	auth           *auth.Auth
	allowedOrigins []string
}

func NewRouter(
	app *web.App,
	postgresDB *postgresql.Database,
	port string,
	auth *auth.Auth,
	allowedOrigins []string,
) *Router {
	return &Router{
		app,
		postgresDB,
		port,
		auth,
		allowedOrigins,
	}
}

// Init registers middleware and every route.
func (r Router) Init() {
	r.HandleMethodNotAllowed = true
	r.Use(middleware.Logger(r.Log()))
	r.Use(middleware.CorsMiddleware(r.allowedOrigins))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, web.ErrorResponse{Error: "route not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, web.ErrorResponse{Error: "method not allowed"})
	})

	// - postgresql
	userPostgres := user.NewRepository(r.postgresDB)
	companyPostgres := company.NewRepository(r.postgresDB)
	employeePostgres := employee.NewRepository(r.postgresDB)

	// controller
	authController := auth_controller.NewController(userPostgres, r.auth)
	companyController := company_controller.NewController(companyPostgres)
	employeeController := employee_controller.NewController(employeePostgres)

	admin := middleware.Authenticate(r.auth, userPostgres, auth.RoleAdmin)

	// #auth
	r.Post("/api/login", authController.SignIn)
	r.Post("/api/signup", authController.SignUp)

	// #company
	r.Post("/api/companies", companyController.Create, admin)
	r.Put("/api/companies/:code", companyController.UpdateColumns, admin)
	r.Get("/api/companies/:code", companyController.GetByCode, admin)

	// #employee
	r.Post("/api/employees", employeeController.Create, admin)
	r.Put("/api/employees/:id", employeeController.UpdateColumns, admin)
	r.Delete("/api/employees/:id", employeeController.Delete, admin)
	r.Get("/api/employees/search", employeeController.Search, admin)
	r.Get("/api/employees/export", employeeController.Export, admin)
	r.Get("/api/employees/:id/subordinates", employeeController.GetSubordinates, admin)
	r.Get("/api/employees/:id/manager", employeeController.GetReportingManager, admin)
}

// Run serves until ctx is cancelled and then drains in-flight requests.
func (r Router) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              r.port,
		Handler:           r.App,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.Log().Info("listening", slog.String("addr", r.port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "serving http")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutting down http server")
	}

	return nil
}
