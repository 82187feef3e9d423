package service

import (
	"os"
	"path/filepath"
	"testing"

	"signal_bot/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	os.Exit(m.Run())
}

const faqFixture = `
"what is forex": "Forex is the global currency market."
"what is stop loss": "A stop loss caps your downside."
"what is take profit": "A take profit locks in gains."
"how to calculate lot size": "Risk amount divided by stop distance."
"how do i start trading": "Open a demo account first."
`

func loadTestFAQ(t *testing.T) *FAQ {
	t.Helper()

	path := filepath.Join(t.TempDir(), "faq.yaml")
	require.NoError(t, os.WriteFile(path, []byte(faqFixture), 0o644))

	faq, err := LoadFAQ(path)
	require.NoError(t, err)
	return faq
}

func TestFAQSearchDirect(t *testing.T) {
	faq := loadTestFAQ(t)

	got, ok := faq.Search("hey, what is forex exactly?")
	require.True(t, ok)
	assert.Equal(t, "Forex is the global currency market.", got)

	// partial query matches a longer key
	got, ok = faq.Search("stop loss")
	require.True(t, ok)
	assert.Equal(t, "A stop loss caps your downside.", got)
}

func TestFAQSearchFuzzy(t *testing.T) {
	faq := loadTestFAQ(t)

	got, ok := faq.Search("how big should my position be")
	require.True(t, ok)
	assert.Equal(t, "Risk amount divided by stop distance.", got)

	got, ok = faq.Search("where do i begin")
	require.True(t, ok)
	assert.Equal(t, "Open a demo account first.", got)
}

func TestFAQSearchMiss(t *testing.T) {
	faq := loadTestFAQ(t)

	_, ok := faq.Search("when lambo")
	assert.False(t, ok)

	_, ok = faq.Search("   ")
	assert.False(t, ok)
}

func TestLoadFAQMissingFile(t *testing.T) {
	_, err := LoadFAQ(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
