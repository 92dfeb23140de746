package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreateRequiresCredentials(t *testing.T) {
	root := rootCmd()
	cmd, _, err := root.Find([]string{"user", "create"})
	require.NoError(t, err)
	assert.Equal(t, "create", cmd.Name())

	for _, name := range []string{"email", "password", "display-name", "role"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}

	root.SetArgs([]string{"user", "create", "--email", "curator@example.com"})
	err = root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"password" not set`)
}
