package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jomei/notionapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/influencer-matcher/internal/config"
	"github.com/sells-group/influencer-matcher/internal/model"
	"github.com/sells-group/influencer-matcher/pkg/notion/mocks"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.Data.Dir = t.TempDir()
	c.Data.Patterns = []string{"*.csv", "*.xlsx"}
	c.Matcher.MinScore = 70
	c.Matcher.MinNameLength = 3
	c.Export.Dir = t.TempDir()
	c.Export.Format = "xlsx"
	c.Server.Port = 5000
	return c
}

func TestInitMatcher_LoadsDataDir(t *testing.T) {
	c := testConfig(t)
	require.NoError(t, os.WriteFile(filepath.Join(c.Data.Dir, "k.csv"),
		[]byte("Name,Notiz\nSerap 3K,Kakao Ecuador\nJonas,\n"), 0o644))

	env, err := initMatcher(context.Background(), c, "match")
	require.NoError(t, err)

	st := env.Engine.Stats()
	assert.True(t, st.Loaded)
	assert.Equal(t, 2, st.TotalContacts)
	assert.Nil(t, env.Notion)

	o := env.Engine.Verify("Serap", "Kakao Ecuador")
	assert.Equal(t, model.StatusVerified, o.Status)
}

func TestInitMatcher_EmptyDataDirIsNotLoaded(t *testing.T) {
	for name, dir := range map[string]string{
		"empty":   t.TempDir(),
		"missing": filepath.Join(t.TempDir(), "nope"),
	} {
		t.Run(name, func(t *testing.T) {
			c := testConfig(t)
			c.Data.Dir = dir

			env, err := initMatcher(context.Background(), c, "serve")
			require.NoError(t, err)

			st := env.Engine.Stats()
			assert.False(t, st.Loaded)
			assert.Zero(t, st.TotalContacts)
		})
	}
}

func TestInitMatcher_SuggestMinScore(t *testing.T) {
	c := testConfig(t)
	c.Matcher.SuggestMinScore = 50
	require.NoError(t, os.WriteFile(filepath.Join(c.Data.Dir, "k.csv"),
		[]byte("Name,Notiz\nSerap 3K,Kakao Ecuador\n"), 0o644))

	env, err := initMatcher(context.Background(), c, "match")
	require.NoError(t, err)

	res := env.Engine.Search("Sarah")
	assert.False(t, res.Found)
	require.Len(t, res.Candidates, 1)
	assert.Equal(t, "serap", res.Candidates[0].Key)
}

func TestInitMatcher_InvalidConfig(t *testing.T) {
	c := testConfig(t)
	c.Matcher.MinScore = 150

	_, err := initMatcher(context.Background(), c, "match")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "matcher.min_score")
}

func TestInitMatcher_CustomCatalog(t *testing.T) {
	c := testConfig(t)
	c.Catalog.Path = filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(c.Catalog.Path, []byte(`
products:
  - id: Hafer Drink
    group: Drinks
    keywords: ["hafer"]
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(c.Data.Dir, "k.csv"),
		[]byte("Name,Notiz\nSerap,Haferdrink Story\n"), 0o644))

	env, err := initMatcher(context.Background(), c, "match")
	require.NoError(t, err)
	assert.Equal(t, []string{"Hafer Drink"}, env.Engine.Stats().Products)
}

func TestInitMatcher_MissingCatalog(t *testing.T) {
	c := testConfig(t)
	c.Catalog.Path = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := initMatcher(context.Background(), c, "match")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load catalog")
}

func TestReload_MergesNotion(t *testing.T) {
	c := testConfig(t)
	require.NoError(t, os.WriteFile(filepath.Join(c.Data.Dir, "k.csv"),
		[]byte("Name,Notiz\nSerap,Kakao Ecuador\n"), 0o644))

	env, err := initMatcher(context.Background(), c, "match")
	require.NoError(t, err)

	mc := mocks.NewMockClient(t)
	mc.On("QueryDatabase", mock.Anything, "db-1", mock.Anything).
		Return(&notionapi.DatabaseQueryResponse{
			Results: []notionapi.Page{{
				ID: "p1",
				Properties: notionapi.Properties{
					"Name":    &notionapi.TitleProperty{Title: []notionapi.RichText{{PlainText: "Mira"}}},
					"Produkt": &notionapi.RichTextProperty{RichText: []notionapi.RichText{{PlainText: "Matcha"}}},
				},
			}},
		}, nil).Once()
	env.Notion = mc
	c.Notion.DatabaseID = "db-1"

	res, err := env.Reload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Contacts)
	assert.True(t, env.Engine.Search("Mira").Found)
}

func TestReload_NotionFailureKeepsFiles(t *testing.T) {
	c := testConfig(t)
	require.NoError(t, os.WriteFile(filepath.Join(c.Data.Dir, "k.csv"),
		[]byte("Name,Notiz\nSerap,Kakao Ecuador\n"), 0o644))

	env, err := initMatcher(context.Background(), c, "match")
	require.NoError(t, err)

	mc := mocks.NewMockClient(t)
	mc.On("QueryDatabase", mock.Anything, "db-1", mock.Anything).Return(nil, assert.AnError).Once()
	env.Notion = mc
	c.Notion.DatabaseID = "db-1"

	res, err := env.Reload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Contacts)
}
