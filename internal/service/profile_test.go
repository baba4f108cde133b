package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clydenvis-afk/nutriaitracker/internal/model"
	"github.com/clydenvis-afk/nutriaitracker/internal/service"
)

func TestUpdateProfileValidates(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	zero := 0.0
	negAge := -1
	blank := "  "
	_, err := service.UpdateProfile(s, service.ProfileInput{Height: &zero})
	assert.Error(t, err)
	_, err = service.UpdateProfile(s, service.ProfileInput{TargetCalories: &zero})
	assert.Error(t, err)
	_, err = service.UpdateProfile(s, service.ProfileInput{Age: &negAge})
	assert.Error(t, err)
	_, err = service.UpdateProfile(s, service.ProfileInput{Name: &blank})
	assert.Error(t, err)
	assert.Equal(t, model.DefaultProfile(), s.Profile())

	name := "Maria"
	target := 1800.0
	p, err := service.UpdateProfile(s, service.ProfileInput{Name: &name, TargetCalories: &target})
	require.NoError(t, err)
	assert.Equal(t, "Maria", p.Name)
	assert.Equal(t, 1800.0, s.Profile().TargetCalories)
	assert.Equal(t, 170.0, s.Profile().Height)
}
