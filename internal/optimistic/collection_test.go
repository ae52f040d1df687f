package optimistic

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	ID   string
	Name string
}

func newEntries() *Collection[entry] {
	c := NewCollection("entries", func(e entry) string { return e.ID })
	c.Replace([]entry{{ID: "1", Name: "Vela"}, {ID: "2", Name: "Bíblia"}})
	return c
}

func names(items []entry) []string {
	out := make([]string, 0, len(items))
	for _, e := range items {
		out = append(out, e.Name)
	}
	return out
}

func ok[T any](T) error { return nil }

func TestCollection_InitialStatus(t *testing.T) {
	c := newEntries()

	assert.Equal(t, "entries", c.Name())
	assert.Equal(t, StatusIdle, c.Status().Status)
	assert.Equal(t, 2, c.Len())
}

func TestCollection_UpsertReplacesInPlaceOrAppends(t *testing.T) {
	c := newEntries()

	require.NoError(t, c.Upsert(entry{ID: "1", Name: "Vela Aromática"}, ok[entry]))
	require.NoError(t, c.Upsert(entry{ID: "3", Name: "Quadro"}, ok[entry]))

	assert.Equal(t, []string{"Vela Aromática", "Bíblia", "Quadro"}, names(c.List()))
	assert.Equal(t, StatusSaved, c.Status().Status)
}

func TestCollection_TentativeStateVisibleWhileSaving(t *testing.T) {
	c := newEntries()

	err := c.Upsert(entry{ID: "3", Name: "Quadro"}, func(entry) error {
		assert.Equal(t, StatusSaving, c.Status().Status)
		assert.Equal(t, 3, c.Len())
		return nil
	})

	require.NoError(t, err)
}

func TestCollection_FailedPersistReverts(t *testing.T) {
	c := newEntries()
	boom := errors.New("connection refused")

	err := c.Upsert(entry{ID: "1", Name: "Alterado"}, func(entry) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"Vela", "Bíblia"}, names(c.List()))

	state := c.Status()
	assert.Equal(t, StatusFailed, state.Status)
	assert.Equal(t, "connection refused", state.Error)

	err = c.Remove("2", func(string) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, c.Len())
}

func TestCollection_Update(t *testing.T) {
	c := newEntries()

	updated, err := c.Update("2", func(e entry) (entry, error) {
		e.Name = "Bíblia Sagrada"
		return e, nil
	}, ok[entry])
	require.NoError(t, err)
	assert.Equal(t, "Bíblia Sagrada", updated.Name)

	got, found := c.Get("2")
	require.True(t, found)
	assert.Equal(t, "Bíblia Sagrada", got.Name)

	_, err = c.Update("404", func(e entry) (entry, error) { return e, nil }, ok[entry])
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCollection_UpdateRejected(t *testing.T) {
	c := newEntries()
	invalid := errors.New("invalid")
	persisted := false

	_, err := c.Update("2", func(e entry) (entry, error) {
		e.Name = ""
		return e, invalid
	}, func(entry) error {
		persisted = true
		return nil
	})
	assert.ErrorIs(t, err, invalid)
	assert.False(t, persisted)

	got, found := c.Get("2")
	require.True(t, found)
	assert.NotEmpty(t, got.Name)
	assert.Equal(t, StatusIdle, c.Status().Status)
}

func TestCollection_Remove(t *testing.T) {
	c := newEntries()

	var persisted string
	require.NoError(t, c.Remove("1", func(id string) error {
		persisted = id
		return nil
	}))

	assert.Equal(t, "1", persisted)
	assert.Equal(t, []string{"Bíblia"}, names(c.List()))
	_, found := c.Get("1")
	assert.False(t, found)

	assert.ErrorIs(t, c.Remove("1", ok[string]), ErrNotFound)
}

func TestCollection_ListIsACopy(t *testing.T) {
	c := newEntries()

	list := c.List()
	list[0].Name = "Mutated"

	got, _ := c.Get("1")
	assert.Equal(t, "Vela", got.Name)
}
