package router

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"pet-registry/internal/adapters/auth/jwtauth"
	mem "pet-registry/internal/adapters/storage/memory"
	pg "pet-registry/internal/adapters/storage/postgres"
	"pet-registry/internal/domain/pets"
	"pet-registry/internal/domain/users"
	"pet-registry/internal/httpx"
	"pet-registry/internal/middleware"
	"pet-registry/internal/platform/logger"
	"pet-registry/internal/services/geoip"
	"pet-registry/internal/services/qr"
)

const rateWindow = 15 * time.Minute

type Options struct {
	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	JWTSecret string
	TokenTTL  time.Duration
	BaseURL   string
	Logger    logger.Logger

	// Opcional: geolocalizador inyectable (tests). Default: ipwho.is.
	Geo pets.GeoLocator
}

var startedAt = time.Now()

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(log))
	r.Use(limiter(1000, "Demasiadas solicitudes, intente más tarde"))

	var (
		userRepo users.Repository
		petRepo  pets.Repository
	)
	if opts.DB != nil {
		userRepo = pg.NewUsersRepo(opts.DB)
		petRepo = pg.NewPetsRepo(opts.DB)
	} else {
		userRepo = mem.NewUserRepo()
		petRepo = mem.NewPetRepo()
	}

	signer := jwtauth.NewSigner(opts.JWTSecret, opts.TokenTTL)
	verifier := jwtauth.NewVerifier(opts.JWTSecret, userRepo)
	authn := middleware.Authenticate(verifier)

	geo := opts.Geo
	if geo == nil {
		geo = geoip.New(log)
	}

	// Services por módulo
	usersSvc := users.NewService(userRepo, signer)
	petsSvc := pets.NewService(petRepo, qr.New(opts.BaseURL))

	authLimiter := limiter(50, "Demasiados intentos de autenticación, intente más tarde")
	createLimiter := limiter(100, "Demasiadas solicitudes de creación, intente más tarde")

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		httpx.OK(w, http.StatusOK, "API de registro de mascotas", map[string]any{
			"name":    "pet-registry",
			"version": "1.0",
			"endpoints": map[string]string{
				"auth":   "/auth",
				"users":  "/users",
				"pets":   "/pets",
				"health": "/health",
			},
		})
	})

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		dbOK := true
		if opts.DB != nil {
			dbOK = opts.DB.PingContext(req.Context()) == nil
		}
		httpx.OK(w, http.StatusOK, "Servicio operativo", map[string]any{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"uptime":    time.Since(startedAt).Seconds(),
			"database":  dbOK,
		})
	})

	// Rutas por módulo
	users.RegisterRoutes(r, usersSvc, authn, authLimiter)
	pets.RegisterRoutes(r, petsSvc, geo, log, authn, createLimiter)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httpx.NotFound(w, "Ruta no encontrada")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httpx.Error(w, http.StatusMethodNotAllowed, "Método no permitido")
	})

	return r
}

// limiter arma un rate limit por IP sobre ventanas de 15 minutos, con
// respuesta 429 en el mismo sobre JSON del resto de la API.
func limiter(requests int, msg string) func(http.Handler) http.Handler {
	return httprate.Limit(
		requests,
		rateWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
			httpx.Error(w, http.StatusTooManyRequests, msg)
		}),
	)
}
