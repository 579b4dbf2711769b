package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	medicines := c.Medicines()
	assert.Len(t, medicines, len(DefaultMedicines()))
	assert.Equal(t, "Crocin (Paracetamol)", medicines[0])
	assert.Equal(t, categoryOrder, c.Categories())

	entry, ok := c.Entry("Crocin (Paracetamol)")
	require.True(t, ok)
	assert.Equal(t, "Pain & Fever", entry.Category)
	assert.Equal(t, 1.4, entry.BaseMultiplier)
	assert.Equal(t, GroupWinterPeak, entry.Classification.SeasonalGroup)
}

func TestEntryForUnlistedName(t *testing.T) {
	entry, ok := Default().Entry("Dolo 650 (Cough & Cold)")
	assert.False(t, ok)
	assert.Equal(t, OtherCategory, entry.Category)
	assert.Equal(t, GroupWinterPeak, entry.Classification.SeasonalGroup)
	assert.Equal(t, 1.8, entry.WeatherSensitivity["Rainy"])
}

func TestNewOrdersCategories(t *testing.T) {
	c := New(map[string][]string{
		"B": {"Beta"},
		"A": {"Alpha", "Beta"},
		"Z": {"Zeta"},
	}, []string{"Z", "Missing"})

	assert.Equal(t, []string{"Z", "A", "B"}, c.Categories())
	assert.Equal(t, []string{"Zeta", "Alpha", "Beta"}, c.Medicines())
	assert.Equal(t, "A", c.Category("Beta"))
	assert.Equal(t, OtherCategory, c.Category("Gamma"))
}

func TestSearch(t *testing.T) {
	c := Default()

	results := c.Search("Crocin", "")
	require.NotEmpty(t, results)
	assert.Equal(t, "Crocin (Paracetamol)", results[0].Name)

	inhalers := c.Search("Inhaler", "Cough & Cold")
	require.Len(t, inhalers, 2)
	for _, e := range inhalers {
		assert.Equal(t, "Cough & Cold", e.Category)
	}

	assert.Len(t, c.Search("", "Diabetes Care"), 4)
	assert.Len(t, c.Search("", ""), len(c.Medicines()))
	assert.Empty(t, c.Search("zzzzqqq", ""))
}
