package validation

import (
	"regexp"
	"strings"
)

// Reglas compartidas por los validadores de cada recurso.
const (
	UsernameMinLength   = 3
	PasswordMinLength   = 4
	PetNameMinLength    = 2
	OwnerNameMinLength  = 2
	SpeciesMinLength    = 2
	ZoneMinLength       = 2
	PhoneOwnerMinLength = 2
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\+?[\d\s\-()]+$`)
)

// Result es el contrato de todo validador: válido o lista de errores.
type Result struct {
	Valid  bool
	Errors []string
}

func NewResult(errs []string) Result {
	return Result{Valid: len(errs) == 0, Errors: errs}
}

// Message junta los errores en un único string. Los errores granulares
// por campo se descartan a propósito: el contrato de la API es un solo
// mensaje de validación.
func (r Result) Message() string {
	return strings.Join(r.Errors, ", ")
}

// Clean recorta espacios y elimina los caracteres < > de un string.
// Es una mitigación superficial de XSS, no una barrera de seguridad.
func Clean(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "<", "")
	s = strings.ReplaceAll(s, ">", "")
	return s
}

func IsEmail(s string) bool {
	return emailRe.MatchString(s)
}

func IsPhone(s string) bool {
	return phoneRe.MatchString(s)
}
