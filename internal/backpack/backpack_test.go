package backpack

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddUntilFull(t *testing.T) {
	b, err := New(DefaultCapacity)
	require.NoError(t, err)

	for i := 0; i < DefaultCapacity; i++ {
		require.NoError(t, b.Add(Item{Name: fmt.Sprintf("item%d", i), Kind: "ammo", Quantity: i + 1}))
	}

	err = b.Add(Item{Name: "extra", Kind: "ammo", Quantity: 1})
	require.ErrorIs(t, err, ErrFull)
	assert.Equal(t, DefaultCapacity, b.Len())
}

func TestRemoveShiftsLeft(t *testing.T) {
	b, err := New(5)
	require.NoError(t, err)
	for _, n := range []string{"rifle", "medkit", "rifle", "ammo"} {
		require.NoError(t, b.Add(Item{Name: n, Kind: "k", Quantity: 1}))
	}

	removed, err := b.Remove("rifle")
	require.NoError(t, err)
	assert.Equal(t, "rifle", removed.Name)

	var names []string
	for _, it := range b.List() {
		names = append(names, it.Name)
	}
	assert.Equal(t, []string{"medkit", "rifle", "ammo"}, names)

	_, err = b.Remove("grenade")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 3, b.Len())
}

func TestFindFirstMatch(t *testing.T) {
	b, err := New(3)
	require.NoError(t, err)
	require.NoError(t, b.Add(Item{Name: "medkit", Kind: "heal", Quantity: 2}))
	require.NoError(t, b.Add(Item{Name: "medkit", Kind: "heal", Quantity: 7}))

	it, idx, err := b.Find("medkit")
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 2, it.Quantity)

	_, idx, err = b.Find("rifle")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, -1, idx)
}

func TestListIsACopy(t *testing.T) {
	b, err := New(2)
	require.NoError(t, err)
	require.NoError(t, b.Add(Item{Name: "a", Kind: "k", Quantity: 1}))

	items := b.List()
	items[0].Name = "changed"
	it, _, err := b.Find("a")
	require.NoError(t, err)
	assert.Equal(t, "a", it.Name)
}

func TestNewRejectsBadCapacity(t *testing.T) {
	_, err := New(0)
	assert.Error(t, err)
}
