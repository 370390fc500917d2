package app

import (
	"net/http"

	"go-payroll/internal/absence"
	"go-payroll/internal/bracket"
	"go-payroll/internal/department"
	"go-payroll/internal/employee"
	"go-payroll/internal/employeesalary"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/middleware"
	"go-payroll/internal/payroll"
	"go-payroll/internal/shared/config"
	"go-payroll/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type modules struct {
	bracketService    bracket.Service
	departmentService department.Service
	absenceService    absence.Service
	salaryService     employeesalary.Service
	payrollService    payroll.Service
}

// buildModules wires repositories and services. Shared by the API and the consumer.
func buildModules(infra *infrastructure, cfg config.Config) modules {
	db := infra.sqlDB
	gormDB := infra.gormDB

	// --- Repositories ---
	bracketRepo := bracket.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	absenceRepo := absence.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	salaryRepo := employeesalary.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	bracketService := bracket.NewService(db, bracketRepo)
	departmentService := department.NewService(db, departmentRepo)
	absenceService := absence.NewService(db, absenceRepo, bracketService)
	salaryService := employeesalary.NewService(db, salaryRepo)

	var locker payroll.KeyLocker = payroll.NoopLocker{}
	if infra.rdb != nil {
		locker = payroll.NewRedisLocker(infra.rdb, cfg.Payroll.LockTTL, lockOwner())
	}

	payrollService := payroll.NewService(db, payrollRepo,
		payroll.Dependencies{
			Employees: employeeRepo,
			Salaries:  salaryRepo,
			Brackets:  bracketService,
			Absences:  absenceRepo,
			Outbox:    outboxRepo,
			Counter:   counterRepo,
			Locker:    locker,
		},
		payroll.Options{
			Workers:                 cfg.Payroll.BatchWorkers,
			SuccessThresholdPercent: cfg.Payroll.SuccessThresholdPercent,
		},
	)

	return modules{
		bracketService:    bracketService,
		departmentService: departmentService,
		absenceService:    absenceService,
		salaryService:     salaryService,
		payrollService:    payrollService,
	}
}

func registerModules(router *gin.Engine, infra *infrastructure, cfg config.Config) error {
	m := buildModules(infra, cfg)

	// --- Handlers ---
	bracketHandler := bracket.NewHandler(m.bracketService)
	departmentHandler := department.NewHandler(m.departmentService)
	absenceHandler := absence.NewHandler(m.absenceService)
	salaryHandler := employeesalary.NewHandler(m.salaryService)
	payrollHandler := payroll.NewHandlerWithRedis(m.payrollService, infra.rdb)

	router.Use(middleware.ContextLogger(zap.L().Named("http")))
	router.GET("/health", func(c *gin.Context) {
		if err := infra.sqlDB.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		bracket.RegisterRoutes(api, bracketHandler)
		department.RegisterRoutes(api, departmentHandler)
		absence.RegisterRoutes(api, absenceHandler)
		employeesalary.RegisterRoutes(api, salaryHandler)
		payroll.RegisterRoutes(api, payrollHandler, infra.rdb)
	}

	return nil
}
