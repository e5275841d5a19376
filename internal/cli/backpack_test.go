package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sortbench/internal/backpack"
)

func runBackpackScript(t *testing.T, args []string, script string) (string, string, error) {
	t.Helper()
	root := NewRootCommand()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	root.SetIn(strings.NewReader(script))
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetArgs(append([]string{"backpack"}, args...))

	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestBackpack_AddFindRemove(t *testing.T) {
	script := "1\nSword\nweapon\n1\n1\nAmmo\nammo\n30\n3\n4\nAmmo\n2\nSword\n3\n0\n"
	out, _, err := runBackpackScript(t, nil, script)
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(out, "Item added."))
	assert.Contains(t, out, "Item found at position 2:\nName: Ammo\nKind: ammo\nQuantity: 30\n")
	assert.Contains(t, out, `Item "Sword" removed.`)
	assert.Contains(t, out, "Items: 1/10")
	assert.Contains(t, out, "Leaving the inventory...")
}

func TestBackpack_Full(t *testing.T) {
	out, _, err := runBackpackScript(t, []string{"--capacity", "1"}, "1\nSword\nweapon\n1\n1\n0\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Backpack is full! Cannot add more items.")
}

func TestBackpack_EmptyAndMissing(t *testing.T) {
	out, _, err := runBackpackScript(t, nil, "2\n4\n3\n1\nMedkit\nhealing\n2\n4\nSword\n2\nSword\n0\n")
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(out, "Backpack is empty!"))
	assert.Contains(t, out, "(backpack is empty)")
	assert.Equal(t, 2, strings.Count(out, `item not found: "Sword".`))
}

func TestBackpack_RejectsEmptyName(t *testing.T) {
	out, _, err := runBackpackScript(t, nil, "1\n  \nSword\nweapon\n0\n1\n0\n")
	require.NoError(t, err)

	assert.Contains(t, out, "Value must not be empty. Try again.")
	assert.Contains(t, out, "value must be between 1 and 9999. Try again.")
	assert.Contains(t, out, "Item added.")
}

func TestBackpack_InvalidCapacity(t *testing.T) {
	_, _, err := runBackpackScript(t, []string{"--capacity", "0"}, "0\n")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestBackpack_JSON(t *testing.T) {
	out, errOut, err := runBackpackScript(t, []string{"--format", "json"}, "1\nSword\nweapon\n1\n")
	require.NoError(t, err)
	assert.Contains(t, errOut, "Item added.")

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Items []backpack.Item `json:"items"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, []backpack.Item{{Name: "Sword", Kind: "weapon", Quantity: 1}}, resp.Data.Items)
}
