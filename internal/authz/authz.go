package authz

// Role discrimina el tipo de usuario. Se persiste como número (1/2)
// para mantener compatibilidad con los clientes existentes.
type Role int

const (
	RoleAdmin    Role = 1
	RolePetOwner Role = 2
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RolePetOwner
}

// Capability es un permiso nombrado dentro de la tabla de roles.
type Capability string

const (
	CapManageUsers        Capability = "canManageUsers"
	CapManageAllPets      Capability = "canManageAllPets"
	CapViewAllPets        Capability = "canViewAllPets"
	CapEditAllPets        Capability = "canEditAllPets"
	CapDeleteAllPets      Capability = "canDeleteAllPets"
	CapDeleteAllUsers     Capability = "canDeleteAllUsers"
	CapViewDashboard      Capability = "canViewDashboard"
	CapViewUserManagement Capability = "canViewUserManagement"
	CapViewOwnPets        Capability = "canViewOwnPets"
	CapEditOwnPets        Capability = "canEditOwnPets"
)

// grants es la tabla estática rol -> capabilities. Se construye una sola
// vez al cargar el paquete y no se modifica en runtime: el admin tiene
// todas las capabilities, el dueño de mascota solo las self-scoped.
var grants = map[Role]map[Capability]bool{
	RoleAdmin: {
		CapManageUsers:        true,
		CapManageAllPets:      true,
		CapViewAllPets:        true,
		CapEditAllPets:        true,
		CapDeleteAllPets:      true,
		CapDeleteAllUsers:     true,
		CapViewDashboard:      true,
		CapViewUserManagement: true,
		CapViewOwnPets:        true,
		CapEditOwnPets:        true,
	},
	RolePetOwner: {
		CapManageUsers:        false,
		CapManageAllPets:      false,
		CapViewAllPets:        false,
		CapEditAllPets:        false,
		CapDeleteAllPets:      false,
		CapDeleteAllUsers:     false,
		CapViewDashboard:      true,
		CapViewUserManagement: false,
		CapViewOwnPets:        true,
		CapEditOwnPets:        true,
	},
}

// Allowed responde si el rol tiene la capability. Roles o capabilities
// desconocidos devuelven false.
func Allowed(role Role, cap Capability) bool {
	return grants[role][cap]
}
