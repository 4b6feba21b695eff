package enums

// Role identifies the access tier of an actor. Roles are recomputed on
// every request from the membership tables, never stored on the user row.
type Role string

const (
	RoleGuest      Role = "guest"
	RoleUser       Role = "user"
	RoleSubscriber Role = "subscriber"
	RoleAdmin      Role = "admin"
	RolePartner    Role = "partner"
	RoleOwner      Role = "owner"
)

var rolePrecedence = map[Role]int{
	RoleGuest:      0,
	RoleUser:       1,
	RoleSubscriber: 2,
	RoleAdmin:      3,
	RolePartner:    4,
	RoleOwner:      5,
}

func (r Role) IsValid() bool {
	_, ok := rolePrecedence[r]
	return ok
}

// AtLeast reports whether r outranks or equals other.
func (r Role) AtLeast(other Role) bool {
	return rolePrecedence[r] >= rolePrecedence[other]
}

func (r Role) String() string {
	return string(r)
}
