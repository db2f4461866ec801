// file: store/store_test.go
package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-holo-council/models"
)

func TestOpen_SeedsDefaultContest(t *testing.T) {
	st, err := Open(":memory:")
	require.NoError(t, err)
	defer func() { _ = st.Close() }()

	doc := st.Snapshot()
	assert.NotEmpty(t, doc.SingersList)
	assert.Contains(t, doc.Operators, models.AdminUsername)
	// every chart starts locked, voting is open for evening 1 only
	assert.True(t, doc.LockedCharts["total"])
	assert.True(t, doc.LockedCharts["1"])
	assert.False(t, doc.LockedVoting[1])
	assert.True(t, doc.LockedVoting[2])
}

func TestOpen_ReloadsPersistedState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contest.db")

	st, err := Open(path)
	require.NoError(t, err)
	doc := st.Snapshot()
	doc.SingersList = []models.Singer{{ID: 1, Name: "Solo"}}
	require.NoError(t, st.ReplaceAll(doc))
	require.NoError(t, st.Close())

	st, err = Open(path)
	require.NoError(t, err)
	defer func() { _ = st.Close() }()

	reloaded := st.Snapshot()
	require.Len(t, reloaded.SingersList, 1)
	assert.Equal(t, "Solo", reloaded.SingersList[0].Name)
}

func TestSnapshot_IsDetachedCopy(t *testing.T) {
	st, err := Open(":memory:")
	require.NoError(t, err)
	defer func() { _ = st.Close() }()

	doc := st.Snapshot()
	doc.Operators["intruder"] = "0000"
	doc.LockedVoting[1] = true

	fresh := st.Snapshot()
	assert.NotContains(t, fresh.Operators, "intruder")
	assert.False(t, fresh.LockedVoting[1])
}

func TestSubscribe_DeliversCurrentStateThenEveryWrite(t *testing.T) {
	st, err := Open(":memory:")
	require.NoError(t, err)
	defer func() { _ = st.Close() }()

	var seen []int
	unsubscribe := st.Subscribe(func(doc *models.ContestDocument) {
		seen = append(seen, len(doc.SingersList))
	})

	doc := st.Snapshot()
	doc.SingersList = doc.SingersList[:1]
	require.NoError(t, st.ReplaceAll(doc))

	doc = st.Snapshot()
	doc.SingersList = nil
	require.NoError(t, st.ReplaceAll(doc))

	unsubscribe()
	doc = st.Snapshot()
	doc.SingersList = []models.Singer{{ID: 1, Name: "Late"}}
	require.NoError(t, st.ReplaceAll(doc))

	// initial delivery, then one delivery per write, nothing after unsubscribe
	require.Len(t, seen, 3)
	assert.Equal(t, 1, seen[1])
	assert.Equal(t, 0, seen[2])
}

func TestPatch_TouchesOnlyNamedFields(t *testing.T) {
	st, err := Open(":memory:")
	require.NoError(t, err)
	defer func() { _ = st.Close() }()

	singersBefore := len(st.Snapshot().SingersList)

	require.NoError(t, st.Patch(models.DocumentPatch{
		LockedVoting: map[int]bool{1: true, 2: false},
	}))

	doc := st.Snapshot()
	assert.True(t, doc.LockedVoting[1])
	assert.False(t, doc.LockedVoting[2])
	assert.Len(t, doc.SingersList, singersBefore)
}

func TestReplaceAll_LastWriterWins(t *testing.T) {
	st, err := Open(":memory:")
	require.NoError(t, err)
	defer func() { _ = st.Close() }()

	// two writers start from the same base snapshot
	first := st.Snapshot()
	second := st.Snapshot()

	first.DisplayNames["misa"] = "From First"
	require.NoError(t, st.ReplaceAll(first))

	second.DisplayNames["noel"] = "From Second"
	require.NoError(t, st.ReplaceAll(second))

	// the second write replaces the whole document; the first writer's
	// change is gone, not merged
	doc := st.Snapshot()
	assert.Equal(t, "From Second", doc.DisplayNames["noel"])
	assert.NotContains(t, doc.DisplayNames, "misa")
}

func TestNormalize_AdminAlwaysPresent(t *testing.T) {
	st, err := Open(":memory:")
	require.NoError(t, err)
	defer func() { _ = st.Close() }()

	doc := st.Snapshot()
	delete(doc.Operators, models.AdminUsername)
	delete(doc.DisplayNames, models.AdminUsername)
	require.NoError(t, st.ReplaceAll(doc))

	fresh := st.Snapshot()
	assert.Contains(t, fresh.Operators, models.AdminUsername)
	assert.Contains(t, fresh.DisplayNames, models.AdminUsername)
}

func TestNormalize_IDHighWaterMarkNeverDecreases(t *testing.T) {
	st, err := Open(":memory:")
	require.NoError(t, err)
	defer func() { _ = st.Close() }()

	// a document stored before the field existed derives it from the roster
	doc := st.Snapshot()
	doc.SingersList = []models.Singer{{ID: 7, Name: "Solo"}}
	doc.NextSingerID = 0
	require.NoError(t, st.ReplaceAll(doc))
	assert.Equal(t, 8, st.Snapshot().NextSingerID)

	// shrinking the roster leaves the mark where it was
	doc = st.Snapshot()
	doc.SingersList = nil
	require.NoError(t, st.ReplaceAll(doc))
	assert.Equal(t, 8, st.Snapshot().NextSingerID)
}

func TestOpen_EmptyPathRejected(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}
