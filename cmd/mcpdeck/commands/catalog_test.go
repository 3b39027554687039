package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcpdeck/mcpdeck/internal/catalog"
)

func TestCatalogListOutput(t *testing.T) {
	catalogListJSON = false
	catalogListTag = ""
	t.Cleanup(func() { catalogListTag = "" })

	var out bytes.Buffer
	require.NoError(t, runCatalogListWithIO(&out, catalog.NewStore()))

	output := out.String()
	assert.Contains(t, output, "github")
	assert.Contains(t, output, "fetch")
	assert.Contains(t, output, "servers")
}

func TestCatalogListFilterByTag(t *testing.T) {
	catalogListJSON = false
	catalogListTag = "database"
	t.Cleanup(func() { catalogListTag = "" })

	var out bytes.Buffer
	require.NoError(t, runCatalogListWithIO(&out, catalog.NewStore()))

	output := out.String()
	assert.Contains(t, output, "postgres")
	assert.NotContains(t, output, "playwright")
}

func TestCatalogShowMasksSecrets(t *testing.T) {
	catalogShowSecrets = false

	var out bytes.Buffer
	require.NoError(t, runCatalogShowWithIO(&out, catalog.NewStore(), "github"))

	output := out.String()
	assert.Contains(t, output, "github")
	assert.Contains(t, output, "GITHUB_PERSONAL_ACCESS_TOKEN = ********")
	// The "Default: " label is display noise and never printed.
	assert.NotContains(t, output, "Default: ")
}

func TestCatalogShowCleansDefaults(t *testing.T) {
	catalogShowSecrets = false

	var out bytes.Buffer
	require.NoError(t, runCatalogShowWithIO(&out, catalog.NewStore(), "aws-docs"))

	output := out.String()
	assert.Contains(t, output, "FASTMCP_LOG_LEVEL = ERROR")
	assert.NotContains(t, output, "\r")
}

func TestCatalogShowUnknownServer(t *testing.T) {
	var out bytes.Buffer
	err := runCatalogShowWithIO(&out, catalog.NewStore(), "does-not-exist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestCatalogSearchOutput(t *testing.T) {
	doc, err := catalog.NewStore().Load()
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, runCatalogSearchWithIO(&out, doc, "aws"))
	assert.Contains(t, out.String(), "aws-docs")

	out.Reset()
	require.NoError(t, runCatalogSearchWithIO(&out, doc, "zzz-no-match"))
	assert.True(t, strings.Contains(out.String(), "No catalog servers match"))
}
