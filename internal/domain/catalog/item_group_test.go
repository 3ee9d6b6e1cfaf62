package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestItem(t *testing.T, id int64, name string) *Item {
	t.Helper()
	item, err := NewItem(1, name, WithItemID(id))
	require.NoError(t, err)
	return item
}

func TestNewItemGroup(t *testing.T) {
	t.Run("creates group with defaults", func(t *testing.T) {
		group, err := NewItemGroup(7, "  Beverages ", WithItemGroupCode("BEV"))
		require.NoError(t, err)

		assert.Equal(t, int64(7), group.CompanyID)
		assert.Equal(t, "Beverages", group.Name)
		assert.Equal(t, "BEV", group.Code)
		assert.True(t, group.IsActive)
		assert.True(t, group.IsNew())
		assert.Empty(t, group.Items())
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewItemGroup(7, "   ")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("fails with name too long", func(t *testing.T) {
		_, err := NewItemGroup(7, strings.Repeat("n", 51))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed 50 characters")
	})

	t.Run("fails with code too long", func(t *testing.T) {
		_, err := NewItemGroup(7, "Food", WithItemGroupCode("ABCDEFGHIJK"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed 10 characters")
	})

	t.Run("counts characters not bytes", func(t *testing.T) {
		_, err := NewItemGroup(7, strings.Repeat("é", 50))
		assert.NoError(t, err)
	})

	t.Run("fails with description too long", func(t *testing.T) {
		_, err := NewItemGroup(7, "Food", WithItemGroupDescription(strings.Repeat("d", 201)))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed 200 characters")
	})
}

func TestItemGroup_Update(t *testing.T) {
	group, err := NewItemGroup(7, "Food", WithItemGroupCode("FD"))
	require.NoError(t, err)

	t.Run("keeps previous state on invalid input", func(t *testing.T) {
		err := group.Update("", WithItemGroupCode("NEW"))
		require.Error(t, err)
		assert.Equal(t, "Food", group.Name)
		assert.Equal(t, "FD", group.Code)
	})

	t.Run("applies options", func(t *testing.T) {
		err := group.Update("Frozen food", WithItemGroupActive(false), WithItemGroupDescription("cold"))
		require.NoError(t, err)
		assert.Equal(t, "Frozen food", group.Name)
		assert.False(t, group.IsActive)
		assert.Equal(t, "cold", group.Description)
	})
}

func TestItemGroup_AddItem(t *testing.T) {
	t.Run("links both sides", func(t *testing.T) {
		group, _ := NewItemGroup(1, "Tools", WithItemGroupID(5))
		item := newTestItem(t, 10, "Hammer")

		got := group.AddItem(item)

		assert.Same(t, group, got)
		assert.True(t, group.HasItem(item))
		assert.Same(t, group, item.Group())
		require.NotNil(t, item.ItemGroupID)
		assert.Equal(t, int64(5), *item.ItemGroupID)
	})

	t.Run("ignores duplicates", func(t *testing.T) {
		group, _ := NewItemGroup(1, "Tools", WithItemGroupID(5))
		item := newTestItem(t, 10, "Hammer")

		group.AddItem(item).AddItem(item).AddItem(newTestItem(t, 10, "Hammer copy"))

		assert.Len(t, group.Items(), 1)
	})

	t.Run("keeps distinct unsaved items", func(t *testing.T) {
		group, _ := NewItemGroup(1, "Tools")
		group.AddItem(newTestItem(t, 0, "A")).AddItem(newTestItem(t, 0, "B"))

		assert.Len(t, group.Items(), 2)
	})

	t.Run("moves item from previous group", func(t *testing.T) {
		first, _ := NewItemGroup(1, "First", WithItemGroupID(1))
		second, _ := NewItemGroup(1, "Second", WithItemGroupID(2))
		item := newTestItem(t, 10, "Saw")

		first.AddItem(item)
		second.AddItem(item)

		assert.False(t, first.HasItem(item))
		assert.True(t, second.HasItem(item))
		assert.Same(t, second, item.Group())
		assert.Equal(t, int64(2), *item.ItemGroupID)
	})

	t.Run("ignores nil", func(t *testing.T) {
		group, _ := NewItemGroup(1, "Tools")
		group.AddItem(nil)
		assert.Empty(t, group.Items())
	})
}

func TestItemGroup_RemoveItem(t *testing.T) {
	t.Run("unlinks both sides", func(t *testing.T) {
		group, _ := NewItemGroup(1, "Tools", WithItemGroupID(5))
		item := newTestItem(t, 10, "Hammer")
		group.AddItem(item)

		group.RemoveItem(item)

		assert.False(t, group.HasItem(item))
		assert.Nil(t, item.Group())
		assert.Nil(t, item.ItemGroupID)
	})

	t.Run("removing a non member is a no-op", func(t *testing.T) {
		group, _ := NewItemGroup(1, "Tools", WithItemGroupID(5))
		member := newTestItem(t, 10, "Hammer")
		stranger := newTestItem(t, 11, "Drill")
		group.AddItem(member)

		group.RemoveItem(stranger)

		assert.Len(t, group.Items(), 1)
		assert.Same(t, group, member.Group())
	})
}

func TestItemGroup_SetItems(t *testing.T) {
	group, _ := NewItemGroup(1, "Tools", WithItemGroupID(5))
	old := newTestItem(t, 1, "Old")
	group.AddItem(old)

	fresh := []*Item{newTestItem(t, 2, "A"), newTestItem(t, 3, "B")}
	group.SetItems(fresh)

	assert.Nil(t, old.Group())
	assert.Len(t, group.Items(), 2)
	for _, item := range fresh {
		assert.Same(t, group, item.Group())
	}
}

func TestItemGroup_Equal(t *testing.T) {
	a, _ := NewItemGroup(1, "A", WithItemGroupID(1))
	b, _ := NewItemGroup(2, "B", WithItemGroupID(1))
	c, _ := NewItemGroup(1, "A", WithItemGroupID(2))
	unsaved1, _ := NewItemGroup(1, "A")
	unsaved2, _ := NewItemGroup(1, "A")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, unsaved1.Equal(unsaved2))
	assert.True(t, unsaved1.Equal(unsaved1))
	assert.False(t, a.Equal(nil))
}

func TestItemGroup_String(t *testing.T) {
	group, _ := NewItemGroup(3, "Food", WithItemGroupID(9), WithItemGroupCode("FD"), WithItemGroupDescription("All food"))

	assert.Equal(t,
		"ItemGroup{id=9, companyId=3, code='FD', name='Food', description='All food', isActive='true'}",
		group.String())
}
