package router

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
	mongodrv "go.mongodb.org/mongo-driver/mongo"

	_ "vet-clinic/docs"
	"vet-clinic/internal/adapters/cache"
	mem "vet-clinic/internal/adapters/storage/memory"
	mg "vet-clinic/internal/adapters/storage/mongo"
	pg "vet-clinic/internal/adapters/storage/postgres"
	"vet-clinic/internal/domain/bookings"
	"vet-clinic/internal/domain/catalog"
	"vet-clinic/internal/domain/invoices"
	"vet-clinic/internal/domain/owners"
	"vet-clinic/internal/domain/pets"
	"vet-clinic/internal/domain/records"
	"vet-clinic/internal/domain/schedule"
	"vet-clinic/internal/domain/vets"
	"vet-clinic/internal/middleware"
	"vet-clinic/internal/notify"
	"vet-clinic/internal/ports/auth"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Backend de storage: Postgres gana sobre Mongo; sin ninguno, in-memory.
	DB    *sql.DB
	Mongo *mongodrv.Database

	// Cache opcional del catálogo.
	Redis *redis.Client

	Log zerolog.Logger
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(opts.Log))

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var (
		ownersRepo   owners.Repository
		petsRepo     pets.Repository
		vetsRepo     vets.Repository
		bookingsRepo bookings.Repository
		scheduleRepo schedule.Repository
		recordsRepo  records.Repository
		medsRepo     catalog.MedicationRepository
		svcsRepo     catalog.ServiceRepository
		invoicesRepo invoices.Repository
	)

	switch {
	case opts.DB != nil:
		ownersRepo = pg.NewOwnersRepo(opts.DB)
		petsRepo = pg.NewPetsRepo(opts.DB)
		vetsRepo = pg.NewVetsRepo(opts.DB)
		bookingsRepo = pg.NewBookingsRepo(opts.DB)
		scheduleRepo = pg.NewScheduleRepo(opts.DB)
		recordsRepo = pg.NewRecordsRepo(opts.DB)
		medsRepo = pg.NewMedicationsRepo(opts.DB)
		svcsRepo = pg.NewServicesRepo(opts.DB)
		invoicesRepo = pg.NewInvoicesRepo(opts.DB)
	case opts.Mongo != nil:
		ownersRepo = mg.NewOwnersRepo(opts.Mongo)
		petsRepo = mg.NewPetsRepo(opts.Mongo)
		vetsRepo = mg.NewVetsRepo(opts.Mongo)
		bookingsRepo = mg.NewBookingsRepo(opts.Mongo)
		scheduleRepo = mg.NewScheduleRepo(opts.Mongo)
		recordsRepo = mg.NewRecordsRepo(opts.Mongo)
		medsRepo = mg.NewMedicationsRepo(opts.Mongo)
		svcsRepo = mg.NewServicesRepo(opts.Mongo)
		invoicesRepo = mg.NewInvoicesRepo(opts.Mongo)
	default:
		ownersRepo = mem.NewOwnersRepo()
		petsRepo = mem.NewPetsRepo()
		vetsRepo = mem.NewVetsRepo()
		bookingsRepo = mem.NewBookingsRepo()
		scheduleRepo = mem.NewScheduleRepo()
		recordsRepo = mem.NewRecordsRepo()
		medsRepo = mem.NewMedicationsRepo()
		svcsRepo = mem.NewServicesRepo()
		invoicesRepo = mem.NewInvoicesRepo()
	}

	if opts.Redis != nil {
		medsRepo = cache.NewCachedMedicationsRepo(medsRepo, opts.Redis, opts.Log)
		svcsRepo = cache.NewCachedServicesRepo(svcsRepo, opts.Redis, opts.Log)
	}

	hub := notify.NewHub(opts.Log)
	bookingEvents := notify.NewBookingEvents(hub)

	// Services por módulo
	ownersSvc := owners.NewService(ownersRepo)
	petsSvc := pets.NewService(petsRepo, ownersSvc)
	vetsSvc := vets.NewService(vetsRepo)
	scheduleSvc := schedule.NewService(scheduleRepo)
	catalogMgr := catalog.NewManager(medsRepo, svcsRepo)
	recordsSvc := records.NewService(recordsRepo, catalogMgr)
	bookingsSvc := bookings.NewService(bookingsRepo, vetsSvc, scheduleSvc, bookingEvents)
	invoicesSvc := invoices.NewService(invoicesRepo, recordsSvc, catalogMgr)

	// Rutas por módulo
	owners.RegisterRoutes(r, ownersSvc)
	pets.RegisterRoutes(r, petsSvc)
	vets.RegisterRoutes(r, vetsSvc)
	schedule.RegisterRoutes(r, scheduleSvc)
	catalog.RegisterRoutes(r, catalogMgr)
	records.RegisterRoutes(r, recordsSvc)
	bookings.RegisterRoutes(r, bookingsSvc)
	invoices.RegisterRoutes(r, invoicesSvc)

	r.Get("/ws", notify.WSHandler(hub))

	return r
}
