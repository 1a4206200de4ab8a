package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"pet-registry/internal/authz"
	"pet-registry/internal/httpx"
	"pet-registry/internal/middleware"
	"pet-registry/internal/validation"
)

// RegisterRoutes monta las rutas de auth (públicas, con limiter propio)
// y las de administración de usuarios (autenticadas).
func RegisterRoutes(r chi.Router, svc *Service, authn, authLimiter func(http.Handler) http.Handler) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Use(authLimiter)
		ar.Post("/register", registerHandler(svc))
		ar.Post("/login", loginHandler(svc))
	})

	r.Route("/users", func(ur chi.Router) {
		ur.Use(authn)
		ur.With(middleware.RequirePermission(authz.CapManageUsers)).Get("/", listUsersHandler(svc))
		ur.Get("/profile", profileHandler(svc))
		ur.With(middleware.RequirePermission(authz.CapManageUsers)).Get("/{userID}", getUserHandler(svc))
		ur.Put("/{userID}", updateUserHandler(svc))
		ur.With(middleware.RequirePermission(authz.CapDeleteAllUsers)).Delete("/{userID}", deleteUserHandler(svc))
	})
}

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	UserType  int       `json:"userType"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toUserResponse(u User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		UserType:  int(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterPayload
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.ValidationError(w, "JSON inválido")
			return
		}

		req.Sanitize()
		if res := ValidateRegister(req); !res.Valid {
			httpx.ValidationError(w, res.Message())
			return
		}

		u, err := svc.Register(r.Context(), RegisterInput{
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
			Role:     authz.Role(req.UserType),
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrDuplicate):
				httpx.ValidationError(w, "El usuario ya existe")
			case errors.Is(err, ErrInvalidInput):
				httpx.ValidationError(w, "Tipo de usuario inválido")
			default:
				httpx.Internal(w)
			}
			return
		}

		httpx.Created(w, "Usuario registrado exitosamente", map[string]any{
			"id":       u.ID,
			"username": u.Username,
			"email":    u.Email,
			"userType": int(u.Role),
		})
	}
}

func loginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginPayload
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.ValidationError(w, "JSON inválido")
			return
		}

		req.Sanitize()
		if res := ValidateLogin(req); !res.Valid {
			httpx.ValidationError(w, res.Message())
			return
		}

		token, u, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, ErrInvalidCredentials) {
				httpx.Unauthorized(w, "Credenciales inválidas")
				return
			}
			httpx.Internal(w)
			return
		}

		httpx.OK(w, http.StatusOK, "Login exitoso", map[string]any{
			"token": token,
			"user":  toUserResponse(u),
		})
	}
}

func listUsersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpx.Internal(w)
			return
		}

		if len(items) == 0 {
			httpx.EmptyList(w, "No se encontraron usuarios")
			return
		}

		out := make([]userResponse, 0, len(items))
		for _, u := range items {
			out = append(out, toUserResponse(u))
		}
		httpx.OK(w, http.StatusOK, "Usuarios obtenidos exitosamente", out)
	}
}

func profileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := middleware.GetIdentity(r.Context())
		if !ok {
			httpx.Unauthorized(w, "Autenticación requerida")
			return
		}

		u, err := svc.Get(r.Context(), id.ID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				httpx.NotFound(w, "Usuario no encontrado")
				return
			}
			httpx.Internal(w)
			return
		}

		httpx.OK(w, http.StatusOK, "Perfil obtenido exitosamente", toUserResponse(u))
	}
}

func getUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := svc.Get(r.Context(), chi.URLParam(r, "userID"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				httpx.NotFound(w, "Usuario no encontrado")
				return
			}
			httpx.Internal(w)
			return
		}

		httpx.OK(w, http.StatusOK, "Usuario obtenido exitosamente", toUserResponse(u))
	}
}

type updateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	UserType *int    `json:"userType"`
}

func updateUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := middleware.GetIdentity(r.Context())
		if !ok {
			httpx.Unauthorized(w, "Autenticación requerida")
			return
		}

		userID := chi.URLParam(r, "userID")
		if id.Role != authz.RoleAdmin && id.ID != userID {
			httpx.Forbidden(w, "Solo puedes actualizar tu propio perfil")
			return
		}

		var req updateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.ValidationError(w, "JSON inválido")
			return
		}

		// el rol solo lo cambia un admin
		if req.UserType != nil && id.Role != authz.RoleAdmin {
			httpx.Forbidden(w, "Permisos insuficientes")
			return
		}

		in := UpdateInput{Password: req.Password}
		if req.Username != nil {
			v := validation.Clean(*req.Username)
			in.Username = &v
		}
		if req.Email != nil {
			v := validation.Clean(*req.Email)
			in.Email = &v
		}
		if req.UserType != nil {
			role := authz.Role(*req.UserType)
			in.Role = &role
		}

		u, err := svc.Update(r.Context(), userID, in)
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				httpx.NotFound(w, "Usuario no encontrado")
			case errors.Is(err, ErrDuplicate):
				httpx.ValidationError(w, "El usuario ya existe")
			case errors.Is(err, ErrInvalidInput):
				httpx.ValidationError(w, "Tipo de usuario inválido")
			default:
				httpx.Internal(w)
			}
			return
		}

		httpx.OK(w, http.StatusOK, "Usuario actualizado exitosamente", toUserResponse(u))
	}
}

func deleteUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "userID")); err != nil {
			if errors.Is(err, ErrNotFound) {
				httpx.NotFound(w, "Usuario no encontrado")
				return
			}
			httpx.Internal(w)
			return
		}

		httpx.OK(w, http.StatusOK, "Usuario eliminado exitosamente", nil)
	}
}
