package pets

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"pet-registry/internal/authz"
	"pet-registry/internal/httpx"
	"pet-registry/internal/middleware"
	"pet-registry/internal/platform/logger"
)

// RegisterRoutes monta las rutas de mascotas. GET /pets/{petID} es
// público: cualquiera con el link del QR puede consultar la mascota,
// y cada consulta alimenta el historial de vistas.
func RegisterRoutes(r chi.Router, svc *Service, geo GeoLocator, log logger.Logger, authn, createLimiter func(http.Handler) http.Handler) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Group(func(g chi.Router) {
			g.Use(authn)

			g.With(middleware.RequirePermission(authz.CapManageAllPets), createLimiter).
				Post("/", createPetHandler(svc))
			g.With(middleware.RequirePermission(authz.CapViewOwnPets)).
				Get("/", listPetsHandler(svc))
			g.Get("/my-pets", myPetsHandler(svc))
			g.Get("/owner/{ownerID}", petsByOwnerHandler(svc))

			g.With(RequireOwnership(svc, "Solo puedes ver tus propias mascotas")).
				Get("/{petID}/history", historyHandler(svc))
			g.With(RequireOwnership(svc, "Solo puedes editar tus propias mascotas")).
				Put("/{petID}", updatePetHandler(svc))
			g.With(middleware.RequirePermission(authz.CapDeleteAllPets)).
				Delete("/{petID}", deletePetHandler(svc))
		})

		pr.Get("/{petID}", getPetPublicHandler(svc, geo, log))
	})
}

type phoneResponse struct {
	Number    string `json:"number"`
	Owner     string `json:"owner"`
	IsPrimary bool   `json:"isPrimary"`
}

type deviceResponse struct {
	Type  string `json:"type"`
	Brand string `json:"brand"`
	Model string `json:"model"`
	OS    string `json:"os"`
}

type coordinatesResponse struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type locationResponse struct {
	Country     string              `json:"country"`
	City        string              `json:"city"`
	Region      string              `json:"region"`
	Coordinates coordinatesResponse `json:"coordinates"`
	Timezone    string              `json:"timezone"`
	ISP         string              `json:"isp"`
}

type viewEntryResponse struct {
	ViewedAt   time.Time        `json:"viewedAt"`
	ViewedBy   string           `json:"viewedBy"`
	IPAddress  string           `json:"ipAddress"`
	UserAgent  string           `json:"userAgent"`
	DeviceUsed deviceResponse   `json:"deviceUsed"`
	Location   locationResponse `json:"location"`
}

type petResponse struct {
	ID             string              `json:"id"`
	UniqueID       string              `json:"uniqueId"`
	Photo          string              `json:"photo"`
	Name           string              `json:"name"`
	Owner          string              `json:"owner"`
	OwnerID        string              `json:"ownerId"`
	Species        string              `json:"species"`
	Zone           string              `json:"zone"`
	Birthdate      string              `json:"birthdate"`
	Notes          string              `json:"notes"`
	Phones         []phoneResponse     `json:"phone"`
	IsLost         bool                `json:"isLost"`
	QRCode         string              `json:"qrCode"`
	ViewHistory    []viewEntryResponse `json:"viewHistory"`
	CreatedBy      string              `json:"createdBy"`
	LastModifiedBy string              `json:"lastModifiedBy"`
	LastModifiedAt time.Time           `json:"lastModifiedAt"`
	CreatedAt      time.Time           `json:"createdAt"`
}

func toViewEntryResponse(e ViewEntry) viewEntryResponse {
	return viewEntryResponse{
		ViewedAt:  e.ViewedAt,
		ViewedBy:  e.ViewedBy,
		IPAddress: e.IPAddress,
		UserAgent: e.UserAgent,
		DeviceUsed: deviceResponse{
			Type:  e.Device.Type,
			Brand: e.Device.Brand,
			Model: e.Device.Model,
			OS:    e.Device.OS,
		},
		Location: locationResponse{
			Country: e.Location.Country,
			City:    e.Location.City,
			Region:  e.Location.Region,
			Coordinates: coordinatesResponse{
				Latitude:  e.Location.Coordinates.Latitude,
				Longitude: e.Location.Coordinates.Longitude,
			},
			Timezone: e.Location.Timezone,
			ISP:      e.Location.ISP,
		},
	}
}

func toPetResponse(p Pet) petResponse {
	phones := make([]phoneResponse, 0, len(p.Phones))
	for _, ph := range p.Phones {
		phones = append(phones, phoneResponse{Number: ph.Number, Owner: ph.Owner, IsPrimary: ph.IsPrimary})
	}

	history := make([]viewEntryResponse, 0, len(p.ViewHistory))
	for _, e := range p.ViewHistory {
		history = append(history, toViewEntryResponse(e))
	}

	return petResponse{
		ID:             p.ID,
		UniqueID:       p.UniqueID,
		Photo:          p.Photo,
		Name:           p.Name,
		Owner:          p.Owner,
		OwnerID:        p.OwnerID,
		Species:        p.Species,
		Zone:           p.Zone,
		Birthdate:      p.Birthdate,
		Notes:          p.Notes,
		Phones:         phones,
		IsLost:         p.IsLost,
		QRCode:         p.QRCode,
		ViewHistory:    history,
		CreatedBy:      p.CreatedBy,
		LastModifiedBy: p.LastModifiedBy,
		LastModifiedAt: p.LastModifiedAt,
		CreatedAt:      p.CreatedAt,
	}
}

func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := middleware.GetIdentity(r.Context())
		if !ok {
			httpx.Unauthorized(w, "Autenticación requerida")
			return
		}

		var req CreatePetPayload
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.ValidationError(w, "JSON inválido")
			return
		}

		req.Sanitize()
		if res := ValidateCreate(req); !res.Valid {
			httpx.ValidationError(w, res.Message())
			return
		}

		ownerID := req.OwnerID
		if ownerID == "" {
			ownerID = id.ID
		}

		p, err := svc.Create(r.Context(), CreateInput{
			Name:      req.Name,
			Owner:     req.Owner,
			OwnerID:   ownerID,
			Species:   req.Species,
			Zone:      req.Zone,
			Birthdate: req.Birthdate,
			Photo:     req.Photo,
			Notes:     req.Notes,
			Phones:    toPhones(req.Phones),
			IsLost:    req.IsLost,
		}, id.Name)
		if err != nil {
			switch {
			case errors.Is(err, ErrQRGeneration):
				httpx.ValidationError(w, "Error generando código QR")
			case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrDuplicate):
				httpx.ValidationError(w, "Error de validación")
			default:
				httpx.Internal(w)
			}
			return
		}

		httpx.Created(w, "Mascota creada exitosamente", toPetResponse(p))
	}
}

func listPetsHandler(svc *Service) http.HandlerFunc {
	// Admin ve todas; dueño solo las suyas.
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := middleware.GetIdentity(r.Context())
		if !ok {
			httpx.Unauthorized(w, "Autenticación requerida")
			return
		}

		var (
			items []Pet
			err   error
		)
		if id.Role == authz.RoleAdmin {
			items, err = svc.List(r.Context())
		} else {
			items, err = svc.ListByOwner(r.Context(), id.ID)
		}
		if err != nil {
			httpx.Internal(w)
			return
		}

		writePetList(w, items, "No se encontraron mascotas")
	}
}

func myPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := middleware.GetIdentity(r.Context())
		if !ok {
			httpx.Unauthorized(w, "Autenticación requerida")
			return
		}

		items, err := svc.ListByOwner(r.Context(), id.ID)
		if err != nil {
			httpx.Internal(w)
			return
		}

		writePetList(w, items, "No se encontraron mascotas")
	}
}

func petsByOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := middleware.GetIdentity(r.Context())
		if !ok {
			httpx.Unauthorized(w, "Autenticación requerida")
			return
		}

		ownerID := strings.TrimSpace(chi.URLParam(r, "ownerID"))
		if id.Role != authz.RoleAdmin && id.ID != ownerID {
			httpx.Forbidden(w, "Solo puedes ver tus propias mascotas")
			return
		}

		items, err := svc.ListByOwner(r.Context(), ownerID)
		if err != nil {
			httpx.Internal(w)
			return
		}

		writePetList(w, items, "No se encontraron mascotas para este dueño")
	}
}

func historyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := PetFromContext(r.Context())
		if !ok {
			// Bypass de admin: el guard no resolvió la mascota.
			var err error
			p, err = svc.Resolve(r.Context(), chi.URLParam(r, "petID"))
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					httpx.NotFound(w, "Mascota no encontrada")
					return
				}
				httpx.Internal(w)
				return
			}
		}

		history := make([]viewEntryResponse, 0, len(p.ViewHistory))
		for _, e := range p.ViewHistory {
			history = append(history, toViewEntryResponse(e))
		}

		httpx.OK(w, http.StatusOK, "Historial obtenido exitosamente", map[string]any{
			"petId":       p.ID,
			"uniqueId":    p.UniqueID,
			"name":        p.Name,
			"viewHistory": history,
		})
	}
}

// getPetPublicHandler atiende la consulta pública (el link del QR).
// Registra la vista como efecto colateral de la lectura: geolocalización
// best-effort y append al historial. Un fallo del registro se loguea
// pero nunca tumba la respuesta.
func getPetPublicHandler(svc *Service, geo GeoLocator, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.Resolve(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				httpx.NotFound(w, "Mascota no encontrada")
				return
			}
			httpx.Internal(w)
			return
		}

		ip := clientIP(r)
		location := UnknownLocation()
		if geo != nil {
			location = geo.Locate(r.Context(), ip)
		}

		ua := r.Header.Get("User-Agent")
		viewedBy := ua
		if viewedBy == "" {
			viewedBy = "unknown"
		}

		entry := ViewEntry{
			ViewedAt:  time.Now(),
			ViewedBy:  viewedBy,
			IPAddress: ip,
			UserAgent: ua,
			Device:    deviceFromHeaders(r.Header),
			Location:  location,
		}

		if err := svc.RecordView(r.Context(), p.ID, entry); err != nil {
			log.Warn("no se pudo registrar la vista", map[string]any{
				"pet_id": p.ID,
				"error":  err.Error(),
			})
		} else {
			p.ViewHistory = append(p.ViewHistory, entry)
		}

		httpx.OK(w, http.StatusOK, "Mascota obtenida exitosamente", toPetResponse(p))
	}
}

func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := middleware.GetIdentity(r.Context())
		if !ok {
			httpx.Unauthorized(w, "Autenticación requerida")
			return
		}

		p, ok := PetFromContext(r.Context())
		if !ok {
			var err error
			p, err = svc.Resolve(r.Context(), chi.URLParam(r, "petID"))
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					httpx.NotFound(w, "Mascota no encontrada")
					return
				}
				httpx.Internal(w)
				return
			}
		}

		var req UpdatePetPayload
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.ValidationError(w, "JSON inválido")
			return
		}

		req.Sanitize()
		if res := ValidateUpdate(req); !res.Valid {
			httpx.ValidationError(w, res.Message())
			return
		}

		updated, err := svc.Update(r.Context(), p.ID, UpdateInput{
			Name:      req.Name,
			Owner:     req.Owner,
			Species:   req.Species,
			Zone:      req.Zone,
			Birthdate: req.Birthdate,
			Phones:    toPhones(req.Phones),
			Photo:     req.Photo,
			Notes:     req.Notes,
			IsLost:    req.IsLost,
		}, id.Name)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				httpx.NotFound(w, "Mascota no encontrada")
				return
			}
			httpx.Internal(w)
			return
		}

		httpx.OK(w, http.StatusOK, "Mascota actualizada exitosamente", toPetResponse(updated))
	}
}

func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.Resolve(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				httpx.NotFound(w, "Mascota no encontrada")
				return
			}
			httpx.Internal(w)
			return
		}

		if err := svc.Delete(r.Context(), p.ID); err != nil {
			httpx.Internal(w)
			return
		}

		httpx.OK(w, http.StatusOK, "Mascota eliminada correctamente", nil)
	}
}

func writePetList(w http.ResponseWriter, items []Pet, emptyMsg string) {
	if len(items) == 0 {
		httpx.EmptyList(w, emptyMsg)
		return
	}

	out := make([]petResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toPetResponse(p))
	}
	httpx.OK(w, http.StatusOK, "Mascotas obtenidas exitosamente", out)
}

// deviceFromHeaders arma la estimación gruesa del dispositivo a partir
// de los client hints. Sin hints, todo queda en unknown/desktop.
func deviceFromHeaders(h http.Header) Device {
	d := Device{Type: "desktop", Brand: "unknown", Model: "unknown", OS: "unknown"}

	platform := strings.Trim(h.Get("Sec-CH-UA-Platform"), `"`)
	if h.Get("Sec-CH-UA-Mobile") == "?1" {
		d.Type = "mobile"
	} else if strings.Contains(strings.ToLower(platform), "tablet") {
		d.Type = "tablet"
	}

	if platform != "" {
		d.Brand = platform
		d.OS = platform
	}
	if model := strings.Trim(h.Get("Sec-CH-UA-Model"), `"`); model != "" {
		d.Model = model
	}
	return d
}

// clientIP devuelve la IP del request. chi RealIP ya dejó en RemoteAddr
// la IP real cuando vino detrás de un proxy.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
