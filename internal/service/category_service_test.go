package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmanager/internal/repository"
)

func TestCategoryServiceFacade(t *testing.T) {
	svc := NewCategoryService(repository.NewCategoryRegistry())

	assert.Len(t, svc.All(), 5)
	require.NotNil(t, svc.ByName("Work"))

	added := svc.Add("Errands", "short chores", "#aabbcc")
	assert.Equal(t, 6, added.ID)
	assert.True(t, svc.Update(added.ID, "Chores", "", "#aabbcc"))
	assert.Equal(t, "Chores", svc.ByID(added.ID).Name)

	assert.False(t, svc.Delete(1), "defaults cannot be removed")
	assert.True(t, svc.Delete(added.ID))
	assert.Nil(t, svc.ByID(added.ID))
}
