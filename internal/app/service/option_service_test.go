package service

import (
	"testing"

	"github.com/minhasantafonte/santafonte-backend/internal/app/model"
	"github.com/minhasantafonte/santafonte-backend/internal/app/repository"
	"github.com/minhasantafonte/santafonte-backend/internal/optimistic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupOptionServiceTest(t *testing.T) (*gorm.DB, OptionService) {
	testDB := setupSeededDB(t)
	svc := NewOptionService(
		repository.NewRosaryOptionRepository(testDB),
		repository.NewStoreConfigRepository(testDB),
	)
	require.NoError(t, svc.Load())
	return testDB, svc
}

func TestOptionService_Pools(t *testing.T) {
	_, svc := setupOptionServiceTest(t)

	pools := svc.Pools()
	assert.Len(t, pools.Materials, 3)
	assert.Len(t, pools.Colors, 4)
	assert.Len(t, pools.Crucifixes, 2)
	for _, o := range pools.Colors {
		assert.Equal(t, model.OptionColor, o.Type)
	}
}

func TestOptionService_UpsertAppendsAndReplaces(t *testing.T) {
	testDB, svc := setupOptionServiceTest(t)

	created, err := svc.Upsert(OptionInput{Type: model.OptionColor, Name: "Verde Esperança", Price: 3})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Len(t, svc.Pool(model.OptionColor), 5)

	original, err := svc.Get("m2")
	require.NoError(t, err)

	replaced, err := svc.Upsert(OptionInput{ID: "m2", Type: model.OptionMaterial, Name: "Cristal Austríaco", Price: 30})
	require.NoError(t, err)
	assert.Equal(t, original.CreatedAt, replaced.CreatedAt)

	materials := svc.Pool(model.OptionMaterial)
	require.Len(t, materials, 3)
	assert.Equal(t, "Cristal Austríaco", materials[1].Name)

	stored, err := repository.NewRosaryOptionRepository(testDB).FindByID("m2")
	require.NoError(t, err)
	assert.Equal(t, 30.0, stored.Price)
}

func TestOptionService_UpsertUnknownIDAppends(t *testing.T) {
	_, svc := setupOptionServiceTest(t)

	_, err := svc.Upsert(OptionInput{ID: "cr3", Type: model.OptionCrucifix, Name: "Cruz de Jerusalém", Price: 8})
	require.NoError(t, err)

	crucifixes := svc.Pool(model.OptionCrucifix)
	require.Len(t, crucifixes, 3)
	assert.Equal(t, "cr3", crucifixes[2].ID)
}

func TestOptionService_UpsertValidation(t *testing.T) {
	_, svc := setupOptionServiceTest(t)

	_, err := svc.Upsert(OptionInput{Type: "size", Name: "Grande"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "type")

	_, err = svc.Upsert(OptionInput{Type: model.OptionColor})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")

	assert.Len(t, svc.List(), 9)
}

func TestOptionService_Delete(t *testing.T) {
	_, svc := setupOptionServiceTest(t)

	assert.ErrorIs(t, svc.Delete("c4", false), ErrConfirmationRequired)
	require.NoError(t, svc.Delete("c4", true))
	assert.Len(t, svc.Pool(model.OptionColor), 3)

	_, err := svc.Get("c4")
	assert.ErrorIs(t, err, ErrOptionNotFound)
	assert.ErrorIs(t, svc.Delete("c4", true), ErrOptionNotFound)
}

func TestOptionService_FailedUpsertReverts(t *testing.T) {
	testDB, svc := setupOptionServiceTest(t)
	breakDB(t, testDB)

	_, err := svc.Upsert(OptionInput{ID: "m1", Type: model.OptionMaterial, Name: "Madeira Escura"})
	require.Error(t, err)

	option, err := svc.Get("m1")
	require.NoError(t, err)
	assert.Equal(t, "Madeira Nobre", option.Name)
	assert.Equal(t, optimistic.StatusFailed, svc.SyncStatus().Status)
}

func TestOptionService_BasePrice(t *testing.T) {
	_, svc := setupOptionServiceTest(t)

	base, err := svc.BasePrice()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultBaseRosaryPrice, base)

	stored, err := svc.SetBasePrice(55.5)
	require.NoError(t, err)
	assert.Equal(t, 55.5, stored)

	stored, err = svc.SetBasePrice(-10)
	require.NoError(t, err)
	assert.Equal(t, 0.0, stored)

	base, err = svc.BasePrice()
	require.NoError(t, err)
	assert.Equal(t, 0.0, base)
}
