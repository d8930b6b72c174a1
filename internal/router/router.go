package router

import (
	"time"

	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/authz"
	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/config"
	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/handler"
	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/infra"
	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/middleware"
	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/repository"
	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/service"
	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository/Authz ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, mailerCB *infra.CircuitBreaker, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	areaRepo := repository.NewAreaRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	placeRepo := repository.NewPlaceRepository(db)
	evaluationRepo := repository.NewEvaluationRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	// ── Scope engine ─────────────────────────────────────────────────────────
	store := repository.NewHierarchyStore(db)
	resolver := authz.NewResolver(store)
	authorizer := authz.NewAuthorizer(store)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, employeeRepo, cfg)
	employeeSvc := service.NewEmployeeService(employeeRepo, userRepo, resolver)
	hierarchySvc := service.NewHierarchyService(companyRepo, areaRepo, locationRepo, placeRepo, store, resolver, authorizer)
	evaluationSvc := service.NewEvaluationService(evaluationRepo, employeeRepo, userRepo, store, resolver, authorizer, dispatcher)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, employeeRepo, store, resolver, authorizer)
	reportSvc := service.NewReportService(statsRepo, evaluationRepo, attendanceRepo, rdb, cfg.PDFStoragePath)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	employeesH := handler.NewEmployeesHandler(employeeSvc)
	hierarchyH := handler.NewHierarchyHandler(hierarchySvc)
	evaluationsH := handler.NewEvaluationsHandler(evaluationSvc)
	attendanceH := handler.NewAttendanceHandler(attendanceSvc)
	reportsH := handler.NewReportsHandler(reportSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, mailerCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: owner, supervisor, monitor, worker — declared per-endpoint.
		// The fine-grained scope decisions (which area, which place) live in
		// the services; RequireRole only cuts off roles with no conceivable
		// claim to the endpoint.

		users := v1.Group("/users", middleware.RequireRole("owner"))
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Deactivate)
			users.PATCH("/:id/reactivate", usersH.Reactivate)
		}

		v1.GET("/employees", middleware.RequireRole("owner", "supervisor", "monitor"), employeesH.List)
		v1.GET("/employees/:id", middleware.RequireRole("owner", "supervisor", "monitor"), employeesH.Get)
		v1.GET("/employees/:id/attendance", middleware.RequireRole("owner", "supervisor", "monitor"), attendanceH.EmployeeFeed)
		employees := v1.Group("/employees", middleware.RequireRole("owner"))
		{
			employees.POST("", employeesH.Create)
			employees.PUT("/:id", employeesH.Update)
			employees.DELETE("/:id", employeesH.Deactivate)
			employees.PATCH("/:id/reactivate", employeesH.Reactivate)
		}

		// Hierarchy — reads for any staff role with scope, writes gated in the
		// service by CanManageNode / CanDeleteNode.
		v1.GET("/companies", middleware.RequireRole("owner", "supervisor", "monitor"), hierarchyH.ListCompanies)
		v1.GET("/companies/:id/areas", middleware.RequireRole("owner", "supervisor", "monitor"), hierarchyH.ListAreas)
		v1.GET("/areas/:id/locations", middleware.RequireRole("owner", "supervisor", "monitor"), hierarchyH.ListLocations)
		v1.GET("/locations/:id/places", middleware.RequireRole("owner", "supervisor", "monitor"), hierarchyH.ListPlaces)
		v1.GET("/places/visible", middleware.RequireRole("owner", "supervisor", "monitor"), hierarchyH.VisiblePlaces)

		companies := v1.Group("/companies", middleware.RequireRole("owner"))
		{
			companies.POST("", hierarchyH.CreateCompany)
			companies.PUT("/:id", hierarchyH.UpdateCompany)
			companies.DELETE("/:id", hierarchyH.DeleteCompany)
		}
		v1.POST("/companies/:id/areas", middleware.RequireRole("owner"), hierarchyH.CreateArea)

		areas := v1.Group("/areas", middleware.RequireRole("owner", "supervisor"))
		{
			areas.PUT("/:id", hierarchyH.UpdateArea)
			areas.DELETE("/:id", hierarchyH.DeleteArea)
			areas.POST("/:id/locations", hierarchyH.CreateLocation)
		}

		locations := v1.Group("/locations", middleware.RequireRole("owner", "supervisor", "monitor"))
		{
			locations.PUT("/:id", hierarchyH.UpdateLocation)
			locations.DELETE("/:id", hierarchyH.DeleteLocation)
			locations.POST("/:id/places", hierarchyH.CreatePlace)
		}

		places := v1.Group("/places", middleware.RequireRole("owner", "supervisor", "monitor"))
		{
			places.PUT("/:id", hierarchyH.UpdatePlace)
			places.DELETE("/:id", hierarchyH.DeletePlace)
		}

		// Evaluations
		v1.POST("/evaluations", middleware.RequireRole("owner", "supervisor", "monitor"), evaluationsH.Submit)
		v1.GET("/evaluations", middleware.RequireRole("owner", "supervisor", "monitor", "worker"), evaluationsH.List)
		v1.GET("/evaluations/mine", middleware.RequireRole("owner", "supervisor", "monitor", "worker"), evaluationsH.MyEvaluations)
		v1.GET("/evaluations/eligible-employees", middleware.RequireRole("owner", "supervisor", "monitor"), evaluationsH.EligibleEmployees)

		// Attendance
		v1.POST("/attendance", middleware.RequireRole("owner", "supervisor", "monitor"), attendanceH.Submit)
		v1.GET("/attendance", middleware.RequireRole("owner", "supervisor", "monitor"), attendanceH.ListForDate)
		v1.GET("/attendance/monthly", middleware.RequireRole("owner", "supervisor", "monitor"), attendanceH.MonthlyReport)
		v1.GET("/attendance/mine", middleware.RequireRole("owner", "supervisor", "monitor", "worker"), attendanceH.MyAttendance)
		v1.GET("/attendance/eligible-employees", middleware.RequireRole("owner", "supervisor", "monitor"), attendanceH.EligibleEmployees)

		// Reports
		v1.GET("/reports/dashboard", middleware.RequireRole("owner", "supervisor"), reportsH.Dashboard)
		v1.GET("/reports/attendance/pdf", middleware.RequireRole("owner", "supervisor"), reportsH.AttendancePDF)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
