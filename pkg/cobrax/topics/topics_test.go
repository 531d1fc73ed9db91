package topics_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/picsort/pkg/cobrax/topics"
	"github.com/spf13/cobra"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"naming.md":       {Data: []byte("# Naming\n\nHow target names are built.")},
		"option-apply.md": {Data: []byte("# The apply flag\n\nWithout it nothing moves.")},
		"notes.xyz":       {Data: []byte("ignored extension")},
	}
}

func TestNewLoadsSupportedFiles(t *testing.T) {
	m, err := topics.New(testFS(), topics.Options{})
	require.NoError(t, err)

	assert.Len(t, m.List(), 2)

	topic, ok := m.Get("naming")
	require.True(t, ok)
	assert.Equal(t, "naming", topic.Name)
	assert.Equal(t, ".md", topic.Format)
	assert.Contains(t, topic.Content, "target names")

	_, ok = m.Get("notes")
	assert.False(t, ok, "unsupported extensions should be skipped")
}

func TestGetAcceptsFlagSpellings(t *testing.T) {
	m, err := topics.New(testFS(), topics.Options{})
	require.NoError(t, err)

	for _, name := range []string{"option-apply", "apply", "--apply"} {
		topic, ok := m.Get(name)
		require.True(t, ok, "lookup %q should find the option topic", name)
		assert.Equal(t, "option-apply", topic.Name)
	}
}

func TestCustomExtensions(t *testing.T) {
	fsys := fstest.MapFS{
		"workflow.txxt": {Data: []byte("step by step")},
		"workflow.md":   {Data: []byte("markdown version")},
	}

	m, err := topics.New(fsys, topics.Options{Extensions: []string{".txxt"}})
	require.NoError(t, err)

	require.Len(t, m.List(), 1)
	topic, ok := m.Get("workflow")
	require.True(t, ok)
	assert.Equal(t, ".txxt", topic.Format)
}

func TestInitializeReplacesHelpCommand(t *testing.T) {
	rootCmd := &cobra.Command{Use: "picsort"}

	err := topics.Initialize(rootCmd, testFS(), topics.Options{})
	require.NoError(t, err)

	helpCmd, _, err := rootCmd.Find([]string{"help"})
	require.NoError(t, err)
	require.NotNil(t, helpCmd.Run)

	rootCmd.SetArgs([]string{"help", "naming"})
	assert.NoError(t, rootCmd.Execute())

	rootCmd.SetArgs([]string{"help", "topics"})
	assert.NoError(t, rootCmd.Execute())
}

func TestPlainRendererPassthrough(t *testing.T) {
	r := &topics.PlainRenderer{}
	assert.Equal(t, "# raw", r.Render("# raw", ".md"))
}

func TestGlamourRendererPassesThroughNonMarkdown(t *testing.T) {
	r := topics.NewGlamourRenderer()
	assert.Equal(t, "plain text", r.Render("plain text", ".txt"))
}

func TestGlamourRendererRendersMarkdown(t *testing.T) {
	r := topics.NewGlamourRenderer()
	out := r.Render("# Naming\n\nVerbose names.", ".md")
	assert.Contains(t, out, "Naming")
	assert.Contains(t, out, "Verbose names")
}
