package pets

import (
	"fmt"
	"strings"

	"pet-registry/internal/validation"
)

type phonePayload struct {
	Number    string `json:"number"`
	Owner     string `json:"owner"`
	IsPrimary bool   `json:"isPrimary"`
}

// CreatePetPayload es el body de POST /pets. El key JSON "phone" se
// mantiene en singular por compatibilidad con los clientes existentes.
type CreatePetPayload struct {
	Name      string         `json:"name"`
	Owner     string         `json:"owner"`
	OwnerID   string         `json:"ownerId"`
	Species   string         `json:"species"`
	Zone      string         `json:"zone"`
	Birthdate string         `json:"birthdate"`
	Photo     string         `json:"photo"`
	Notes     string         `json:"notes"`
	Phones    []phonePayload `json:"phone"`
	IsLost    bool           `json:"isLost"`
}

func (p *CreatePetPayload) Sanitize() {
	p.Name = validation.Clean(p.Name)
	p.Owner = validation.Clean(p.Owner)
	p.OwnerID = validation.Clean(p.OwnerID)
	p.Species = validation.Clean(p.Species)
	p.Zone = validation.Clean(p.Zone)
	p.Birthdate = validation.Clean(p.Birthdate)
	p.Photo = strings.TrimSpace(p.Photo)
	p.Notes = validation.Clean(p.Notes)
	sanitizePhones(p.Phones)
}

func ValidateCreate(p CreatePetPayload) validation.Result {
	return validation.NewResult(petFieldErrors(p.Name, p.Owner, p.Species, p.Zone, p.Birthdate, p.Phones))
}

// UpdatePetPayload es el body de PUT /pets/{id}. Los campos principales
// son obligatorios (PUT de payload completo); photo/notes/isLost son
// opcionales y no se tocan si no vienen.
type UpdatePetPayload struct {
	Name      string         `json:"name"`
	Owner     string         `json:"owner"`
	Species   string         `json:"species"`
	Zone      string         `json:"zone"`
	Birthdate string         `json:"birthdate"`
	Phones    []phonePayload `json:"phone"`

	Photo  *string `json:"photo"`
	Notes  *string `json:"notes"`
	IsLost *bool   `json:"isLost"`
}

func (p *UpdatePetPayload) Sanitize() {
	p.Name = validation.Clean(p.Name)
	p.Owner = validation.Clean(p.Owner)
	p.Species = validation.Clean(p.Species)
	p.Zone = validation.Clean(p.Zone)
	p.Birthdate = validation.Clean(p.Birthdate)
	sanitizePhones(p.Phones)
	if p.Photo != nil {
		v := strings.TrimSpace(*p.Photo)
		p.Photo = &v
	}
	if p.Notes != nil {
		v := validation.Clean(*p.Notes)
		p.Notes = &v
	}
}

func ValidateUpdate(p UpdatePetPayload) validation.Result {
	return validation.NewResult(petFieldErrors(p.Name, p.Owner, p.Species, p.Zone, p.Birthdate, p.Phones))
}

func sanitizePhones(phones []phonePayload) {
	for i := range phones {
		phones[i].Number = validation.Clean(phones[i].Number)
		phones[i].Owner = validation.Clean(phones[i].Owner)
	}
}

func petFieldErrors(name, owner, species, zone, birthdate string, phones []phonePayload) []string {
	var errs []string

	if len(name) < validation.PetNameMinLength {
		errs = append(errs, fmt.Sprintf("El nombre de la mascota debe tener al menos %d caracteres", validation.PetNameMinLength))
	}
	if len(owner) < validation.OwnerNameMinLength {
		errs = append(errs, fmt.Sprintf("El nombre del propietario debe tener al menos %d caracteres", validation.OwnerNameMinLength))
	}
	if len(species) < validation.SpeciesMinLength {
		errs = append(errs, fmt.Sprintf("La especie debe tener al menos %d caracteres", validation.SpeciesMinLength))
	}
	if len(zone) < validation.ZoneMinLength {
		errs = append(errs, fmt.Sprintf("La zona debe tener al menos %d caracteres", validation.ZoneMinLength))
	}
	if birthdate == "" {
		errs = append(errs, "La fecha de nacimiento es requerida")
	}

	if len(phones) == 0 {
		errs = append(errs, "Debe proporcionar al menos un número de teléfono")
	} else {
		for i, ph := range phones {
			if len(ph.Owner) < validation.PhoneOwnerMinLength {
				errs = append(errs, fmt.Sprintf("El propietario del teléfono %d debe tener al menos %d caracteres", i+1, validation.PhoneOwnerMinLength))
			}
			if !validation.IsPhone(ph.Number) {
				errs = append(errs, fmt.Sprintf("El número de teléfono %d no es válido", i+1))
			}
		}
	}

	return errs
}

func toPhones(in []phonePayload) []Phone {
	out := make([]Phone, 0, len(in))
	for _, ph := range in {
		out = append(out, Phone{Number: ph.Number, Owner: ph.Owner, IsPrimary: ph.IsPrimary})
	}
	return out
}
