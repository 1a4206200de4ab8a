package users

import (
	"fmt"
	"strings"

	"pet-registry/internal/validation"
)

// RegisterPayload es el body de POST /auth/register.
type RegisterPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType int    `json:"userType"`
}

func (p *RegisterPayload) Sanitize() {
	p.Username = validation.Clean(p.Username)
	p.Email = validation.Clean(p.Email)
	p.Password = validation.Clean(p.Password)
}

func ValidateRegister(p RegisterPayload) validation.Result {
	var errs []string

	if len(p.Username) < validation.UsernameMinLength {
		errs = append(errs, fmt.Sprintf("El nombre de usuario debe tener al menos %d caracteres", validation.UsernameMinLength))
	}
	if !validation.IsEmail(p.Email) {
		errs = append(errs, "Email inválido")
	}
	if len(p.Password) < validation.PasswordMinLength {
		errs = append(errs, fmt.Sprintf("La contraseña debe tener al menos %d caracteres", validation.PasswordMinLength))
	}
	if p.UserType != 0 && p.UserType != 1 && p.UserType != 2 {
		errs = append(errs, "Tipo de usuario inválido")
	}

	return validation.NewResult(errs)
}

// LoginPayload es el body de POST /auth/login.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (p *LoginPayload) Sanitize() {
	p.Email = validation.Clean(p.Email)
	p.Password = validation.Clean(p.Password)
}

func ValidateLogin(p LoginPayload) validation.Result {
	var errs []string

	if !validation.IsEmail(p.Email) {
		errs = append(errs, "Email inválido")
	}
	if strings.TrimSpace(p.Password) == "" {
		errs = append(errs, "Contraseña requerida")
	}

	return validation.NewResult(errs)
}
