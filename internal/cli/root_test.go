package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "stockctl", cmd.Use)
	assert.Contains(t, cmd.Long, "inventory")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"order", "add-stock", "undo", "search", "sync"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	envFlag := cmd.PersistentFlags().Lookup("env")
	require.NotNil(t, envFlag)
}

func TestOrderCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	orderCmd, _, err := cmd.Find([]string{"order"})
	require.NoError(t, err)

	for _, name := range []string{"draft", "date", "postcode", "amount", "ebay", "paypal", "pp", "item"} {
		assert.NotNil(t, orderCmd.Flags().Lookup(name), "flag %s should exist", name)
	}
}

func TestAddStockCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	addCmd, _, err := cmd.Find([]string{"add-stock"})
	require.NoError(t, err)

	assert.NotNil(t, addCmd.Flags().Lookup("draft"))
	assert.NotNil(t, addCmd.Flags().Lookup("item"))
}

func TestSearchCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	searchCmd, _, err := cmd.Find([]string{"search"})
	require.NoError(t, err)

	belowFlag := searchCmd.Flags().Lookup("below")
	require.NotNil(t, belowFlag)
	assert.Equal(t, "0", belowFlag.DefValue)

	assert.NotNil(t, searchCmd.Flags().Lookup("export"))
}

func TestSyncSubcommands(t *testing.T) {
	cmd := NewRootCommand()

	for _, name := range []string{"pull", "push"} {
		subCmd, _, err := cmd.Find([]string{"sync", name})
		require.NoError(t, err)
		assert.Equal(t, name, subCmd.Name())
	}
}

func TestInvalidFormatRejected(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"search", "--format", "xml"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}
