package router

import (
	"database/sql"
	"net/http"
	"os"

	_ "lab-equipment-maintenance/docs"
	mem "lab-equipment-maintenance/internal/adapters/storage/memory"
	pg "lab-equipment-maintenance/internal/adapters/storage/postgres"
	"lab-equipment-maintenance/internal/domain/equipment"
	"lab-equipment-maintenance/internal/domain/issues"
	"lab-equipment-maintenance/internal/domain/notifications"
	"lab-equipment-maintenance/internal/domain/reporting"
	"lab-equipment-maintenance/internal/middleware"
	"lab-equipment-maintenance/internal/platform/logger"
	"lab-equipment-maintenance/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	Logger logger.Logger // puede ser nil; en ese caso no se loguean requests

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	if opts.Logger != nil {
		r.Use(middleware.RequestLogger(opts.Logger))
	}

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler())

	var (
		equipmentRepo    equipment.Repository
		issuesRepo       issues.Repository
		notificationRepo notifications.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	if db != nil {
		equipmentRepo = pg.NewEquipmentRepo(db)
		issuesRepo = pg.NewIssuesRepo(db)
		notificationRepo = pg.NewNotificationsRepo(db)
	} else {
		equipmentRepo = mem.NewEquipmentRepo()
		issuesRepo = mem.NewIssuesRepo()
		notificationRepo = mem.NewNotificationsRepo()
	}

	// Services por módulo
	equipmentSvc := equipment.NewService(equipmentRepo)
	issuesSvc := issues.NewService(issuesRepo, equipmentSvc)
	notificationsSvc := notifications.NewService(notificationRepo)

	// Rutas por módulo
	equipment.RegisterRoutes(r, equipmentSvc)
	issues.RegisterRoutes(r, issuesSvc)
	reporting.RegisterRoutes(r, equipmentSvc, issuesSvc)
	notifications.RegisterRoutes(r, notificationsSvc)

	return r
}
