package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasElevatedPrivilege(t *testing.T) {
	assert.True(t, HasElevatedPrivilege([]Role{RoleAdmin}))
	assert.True(t, HasElevatedPrivilege([]Role{RoleCustomer, RoleManager}))
	assert.False(t, HasElevatedPrivilege([]Role{RoleCustomer}))
	assert.False(t, HasElevatedPrivilege(nil))
	assert.False(t, HasElevatedPrivilege([]Role{}))
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseRole(" admin "))
	assert.Equal(t, RoleManager, ParseRole("MANAGER"))
	assert.Equal(t, RoleCustomer, ParseRole("customer"))
	assert.Equal(t, RoleCustomer, ParseRole("something-else"))
}
