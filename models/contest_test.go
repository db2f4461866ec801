// file: models/contest_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseView(t *testing.T) {
	view, err := ParseView("total")
	require.NoError(t, err)
	assert.Equal(t, ViewTotal, view)
	assert.Equal(t, "total", view.Key())

	view, err = ParseView("4")
	require.NoError(t, err)
	assert.Equal(t, View(4), view)
	assert.Equal(t, "4", view.Key())

	for _, bad := range []string{"0", "6", "abc", ""} {
		_, err := ParseView(bad)
		assert.Error(t, err, "view %q must not parse", bad)
	}
}

func TestDefaultDocument_StartState(t *testing.T) {
	doc := DefaultDocument()

	assert.Len(t, doc.SingersList, len(SeedSingers))
	assert.Contains(t, doc.Operators, AdminUsername)

	// every chart starts locked, "total" included
	assert.True(t, doc.LockedCharts["total"])
	for _, evening := range Evenings {
		assert.True(t, doc.LockedCharts[View(evening).Key()])
	}

	// voting opens with evening 1 only
	assert.False(t, doc.LockedVoting[1])
	for _, evening := range []int{2, 3, 4, 5} {
		assert.True(t, doc.LockedVoting[evening])
	}

	// the id high-water mark sits just past the seed roster
	assert.Equal(t, len(SeedSingers)+1, doc.NextSingerID)
}

func TestClone_IsDeep(t *testing.T) {
	doc := DefaultDocument()
	doc.Votes[1]["misa"] = map[int][]float64{1: {3}}
	doc.HiddenSingers[2] = []int{7}

	clone := doc.Clone()
	clone.Votes[1]["misa"][1][0] = 99
	clone.HiddenSingers[2][0] = 99
	clone.Operators["intruder"] = "0000"

	assert.Equal(t, []float64{3}, doc.Votes[1]["misa"][1])
	assert.Equal(t, []int{7}, doc.HiddenSingers[2])
	assert.NotContains(t, doc.Operators, "intruder")
}

func TestDocumentPatch_NilFieldsUntouched(t *testing.T) {
	doc := DefaultDocument()
	singers := len(doc.SingersList)

	patch := DocumentPatch{LockedVoting: map[int]bool{1: true}}
	patch.Apply(doc)

	assert.True(t, doc.LockedVoting[1])
	assert.Len(t, doc.SingersList, singers)
	assert.Contains(t, doc.Operators, AdminUsername)
}
