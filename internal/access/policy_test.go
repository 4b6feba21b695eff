package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AhmedSalahALghzaly/lats-go/pkg/enums"
)

func TestAllowedOwnerOnly(t *testing.T) {
	assert.True(t, Allowed(enums.RoleOwner, "partners", ActionCreate))
	assert.False(t, Allowed(enums.RolePartner, "partners", ActionCreate))
	assert.False(t, Allowed(enums.RoleAdmin, "partners", ActionCreate))
	assert.False(t, Allowed(enums.RoleGuest, "partners", ActionCreate))
}

func TestAllowedStaffWrites(t *testing.T) {
	for _, role := range []enums.Role{enums.RoleOwner, enums.RolePartner, enums.RoleAdmin} {
		assert.True(t, Allowed(role, "products", ActionCreate), string(role))
	}
	assert.False(t, Allowed(enums.RoleSubscriber, "products", ActionCreate))
	assert.False(t, Allowed(enums.RoleUser, "products", ActionCreate))
}

func TestAllowedSubscriberDirectory(t *testing.T) {
	assert.True(t, Allowed(enums.RoleSubscriber, "suppliers", ActionList))
	assert.True(t, Allowed(enums.RoleOwner, "suppliers", ActionList))
	assert.False(t, Allowed(enums.RoleUser, "suppliers", ActionList))
}

func TestUnlistedPairsArePublic(t *testing.T) {
	assert.True(t, Allowed(enums.RoleGuest, "products", ActionList))
	assert.False(t, Restricted("products", ActionList))
	assert.True(t, Restricted("products", ActionCreate))
}
