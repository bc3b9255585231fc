package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	expected := []string{"search", "verify", "batch", "stats", "catalog", "serve"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "influencer-matcher", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestBatchCommand_Flags(t *testing.T) {
	flag := batchCmd.Flags().Lookup("file")
	require.NotNil(t, flag, "batch command should have --file flag")
	assert.Equal(t, []string{"true"}, flag.Annotations["cobra_annotation_bash_completion_one_required_flag"])

	for _, name := range []string{"out", "format"} {
		f := batchCmd.Flags().Lookup(name)
		require.NotNil(t, f, "batch command should have --%s flag", name)
		assert.Equal(t, "", f.DefValue)
	}
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "serve command should have --port flag")
	assert.Equal(t, "0", flag.DefValue)
}

func TestJSONFlags(t *testing.T) {
	assert.NotNil(t, searchCmd.Flags().Lookup("json"))
	assert.NotNil(t, verifyCmd.Flags().Lookup("json"))
	assert.NotNil(t, statsCmd.Flags().Lookup("json"))
}

func TestCatalogCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range catalogCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["list"])
	assert.True(t, names["extract"])
}

func TestArgs(t *testing.T) {
	assert.Error(t, verifyCmd.Args(verifyCmd, []string{"only-name"}))
	assert.NoError(t, verifyCmd.Args(verifyCmd, []string{"Serap", "Reishi"}))
	assert.Error(t, searchCmd.Args(searchCmd, nil))
	assert.NoError(t, searchCmd.Args(searchCmd, []string{"Laura", "Malina"}))
}
