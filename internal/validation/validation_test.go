package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  hola  ", "hola"},
		{"<script>alert(1)</script>", "scriptalert(1)/script"},
		{"Firulais <3", "Firulais 3"},
		{"", ""},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, Clean(c.in))
	}
}

func TestIsEmail(t *testing.T) {
	assert.True(t, IsEmail("ana@example.com"))
	assert.True(t, IsEmail("a.b+c@dominio.pe"))
	assert.False(t, IsEmail("sin-arroba"))
	assert.False(t, IsEmail("con espacios@x.com"))
	assert.False(t, IsEmail("ana@sindominio"))
	assert.False(t, IsEmail(""))
}

func TestIsPhone(t *testing.T) {
	assert.True(t, IsPhone("+51 999 888 777"))
	assert.True(t, IsPhone("(01) 234-5678"))
	assert.True(t, IsPhone("987654321"))
	assert.False(t, IsPhone("no-es-telefono"))
	assert.False(t, IsPhone("123x456"))
	assert.False(t, IsPhone(""))
}

func TestResultMessage(t *testing.T) {
	r := NewResult([]string{"Email inválido", "Contraseña requerida"})
	assert.False(t, r.Valid)
	assert.Equal(t, "Email inválido, Contraseña requerida", r.Message())

	ok := NewResult(nil)
	assert.True(t, ok.Valid)
	assert.Equal(t, "", ok.Message())
}
