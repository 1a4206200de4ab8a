package pets

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("pet not found")
	// ErrDuplicate indica colisión del identificador público.
	ErrDuplicate    = errors.New("pet already exists")
	ErrInvalidInput = errors.New("invalid input")
	ErrQRGeneration = errors.New("qr generation failed")
)

// Phone es un contacto telefónico de la mascota. Toda mascota debe
// tener al menos uno después de crearse o actualizarse.
type Phone struct {
	Number    string
	Owner     string
	IsPrimary bool
}

// Device es la estimación gruesa del dispositivo que hizo la consulta,
// derivada de los headers sec-ch-ua.
type Device struct {
	Type  string // mobile, tablet, desktop
	Brand string
	Model string
	OS    string
}

type Coordinates struct {
	Latitude  *float64
	Longitude *float64
}

// Location es la geolocalización best-effort de una vista. Si el lookup
// falla, todos los campos degradan a "unknown".
type Location struct {
	Country     string
	City        string
	Region      string
	Coordinates Coordinates
	Timezone    string
	ISP         string
}

func UnknownLocation() Location {
	return Location{
		Country:  "unknown",
		City:     "unknown",
		Region:   "unknown",
		Timezone: "unknown",
		ISP:      "unknown",
	}
}

// ViewEntry es un registro inmutable de una consulta pública de la
// mascota. Solo se agrega, nunca se edita ni se borra.
type ViewEntry struct {
	ViewedAt  time.Time
	ViewedBy  string // user-agent declarado por el cliente
	IPAddress string
	UserAgent string
	Device    Device
	Location  Location
}

// Pet es una mascota registrada. UniqueID es el identificador público
// corto que va en el código QR; ID es el identificador de storage.
type Pet struct {
	ID       string
	UniqueID string

	Photo     string
	Name      string
	Owner     string // nombre del dueño para mostrar
	OwnerID   string // referencia al User dueño
	Species   string
	Zone      string
	Birthdate string
	Notes     string

	Phones []Phone
	IsLost bool
	QRCode string // data URL de la imagen QR

	ViewHistory []ViewEntry

	CreatedBy      string
	LastModifiedBy string
	LastModifiedAt time.Time
	CreatedAt      time.Time
}
