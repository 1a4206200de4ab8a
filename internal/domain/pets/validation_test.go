package pets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validCreatePayload() CreatePetPayload {
	return CreatePetPayload{
		Name:      "Milo",
		Owner:     "Maria Perez",
		Species:   "perro",
		Zone:      "Miraflores",
		Birthdate: "2020-05-01",
		Phones: []phonePayload{
			{Number: "+51 999 888 777", Owner: "Maria", IsPrimary: true},
		},
	}
}

func TestValidateCreateOK(t *testing.T) {
	res := ValidateCreate(validCreatePayload())
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
}

func TestValidateCreateCollectsAllErrors(t *testing.T) {
	p := CreatePetPayload{Name: "M", Owner: "", Species: "x", Zone: ""}
	res := ValidateCreate(p)
	assert.False(t, res.Valid)
	// todos los errores juntos en un solo mensaje
	assert.GreaterOrEqual(t, len(res.Errors), 5)
	assert.Contains(t, res.Message(), ", ")
}

func TestValidateCreateRequiresPhone(t *testing.T) {
	p := validCreatePayload()
	p.Phones = nil
	res := ValidateCreate(p)
	assert.False(t, res.Valid)

	p.Phones = []phonePayload{{Number: "abc!!", Owner: "M"}}
	res = ValidateCreate(p)
	assert.False(t, res.Valid)
}

func TestValidateCreateSanitizeStripsAngles(t *testing.T) {
	p := validCreatePayload()
	p.Name = "  <Milo>  "
	p.Sanitize()
	assert.Equal(t, "Milo", p.Name)
}

func TestValidateUpdateSameRules(t *testing.T) {
	res := ValidateUpdate(UpdatePetPayload{Name: "Milo"})
	assert.False(t, res.Valid)

	ok := UpdatePetPayload{
		Name:      "Milo",
		Owner:     "Maria Perez",
		Species:   "perro",
		Zone:      "Surco",
		Birthdate: "2020-05-01",
		Phones: []phonePayload{
			{Number: "999888777", Owner: "Maria"},
		},
	}
	assert.True(t, ValidateUpdate(ok).Valid)
}

func TestValidateCreatePhoneIndexInMessage(t *testing.T) {
	p := validCreatePayload()
	p.Phones = append(p.Phones, phonePayload{Number: "!!", Owner: "P"})
	res := ValidateCreate(p)
	assert.False(t, res.Valid)
	assert.True(t, strings.Contains(res.Message(), "2"), "message should name the offending phone: %s", res.Message())
}
