package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidSpaceCategory(t *testing.T) {
	for _, c := range SpaceCategories {
		assert.True(t, ValidSpaceCategory(c), c)
	}
	assert.False(t, ValidSpaceCategory(""))
	assert.False(t, ValidSpaceCategory("wedding")) // case-sensitive
	assert.False(t, ValidSpaceCategory("Garage"))
}

func TestValidPrivilegeMask(t *testing.T) {
	assert.True(t, ValidPrivilegeMask(0))
	assert.True(t, ValidPrivilegeMask(PrivManageSpaces))
	assert.True(t, ValidPrivilegeMask(PrivManageSpaces|PrivManageBookings|PrivManageMembers|PrivViewAnalytics))

	assert.False(t, ValidPrivilegeMask(-1))
	assert.False(t, ValidPrivilegeMask(1<<4))
	assert.False(t, ValidPrivilegeMask(PrivViewAnalytics|1<<8))
}
