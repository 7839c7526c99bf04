package world

import (
	"testing"

	"github.com/annel0/skyblob/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pts(xs ...float64) []vec.Vec2Float {
	out := make([]vec.Vec2Float, len(xs))
	for i, x := range xs {
		out[i] = vec.Vec2Float{X: x}
	}
	return out
}

func TestResolveBlobs(t *testing.T) {
	tests := []struct {
		name         string
		players      []vec.Vec2Float
		blobs        []vec.Vec2Float
		wantAssigned []int
		wantTaken    []bool
	}{
		{"взаимно ближайшие", pts(0, 10), pts(9, 1), []int{1, 0}, []bool{true, true}},
		{"жадный добор", pts(0, 10), pts(1, 2), []int{0, 1}, []bool{true, true}},
		{"blob'ов меньше", pts(0, 10), pts(9), []int{-1, 0}, []bool{true}},
		{"равенство в пользу первого", pts(0, 2), pts(1), []int{0, -1}, []bool{true}},
		{"лишний blob свободен", pts(0), pts(50, 1), []int{1}, []bool{false, true}},
		{"нет игроков", nil, pts(1, 2), []int{}, []bool{false, false}},
		{"нет blob'ов", pts(0, 1), nil, []int{-1, -1}, []bool{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assigned, taken := resolveBlobs(tt.players, tt.blobs)
			assert.Equal(t, tt.wantAssigned, assigned)
			assert.Equal(t, tt.wantTaken, taken)
		})
	}
}

func TestWorld_BlobPositionInversion(t *testing.T) {
	r := testRules()
	r.InvertX = true
	w, _, _ := newTestWorld(r, 10)

	pos := w.blobPosition(Blob{ID: 1, X: 10, Y: 20})
	assert.Equal(t, vec.Vec2Float{X: r.Bounds.Width - 10, Y: 20}, pos)
}

func TestWorld_LazySpawnTakesBlobSameTick(t *testing.T) {
	w, rec, _ := newTestWorld(testRules(), 10)

	w.Update([]Blob{{ID: 5, X: 40, Y: 120}, {ID: 9, X: 150, Y: 120}})

	p0, p1 := w.Player(0), w.Player(1)
	if assert.NotNil(t, p0) && assert.NotNil(t, p1) {
		assert.Equal(t, vec.Vec2Float{X: 40, Y: 120}, p0.Pos)
		assert.Equal(t, vec.Vec2Float{X: 150, Y: 120}, p1.Pos)
		assert.NotEqual(t, p0.Pilot.Generation, p1.Pilot.Generation)
	}
	assert.Equal(t, 2, rec.count(EventPlayerJoined))

	// Третий blob не помещается: слотов всего два
	w.Update([]Blob{{ID: 5, X: 41, Y: 120}, {ID: 9, X: 149, Y: 120}, {ID: 11, X: 90, Y: 90}})
	assert.Equal(t, 2, rec.count(EventPlayerJoined))
	assert.Equal(t, vec.Vec2Float{X: 41, Y: 120}, w.Player(0).Pos, "игрок следует за ближайшим blob'ом")
	assert.Equal(t, vec.Vec2Float{X: 149, Y: 120}, w.Player(1).Pos)
}

func TestWorld_EmptyBlobListSpawnsNobody(t *testing.T) {
	w, rec, _ := newTestWorld(testRules(), 10)
	w.Update(nil)
	w.Update([]Blob{})
	assert.Nil(t, w.Player(0))
	assert.Nil(t, w.Player(1))
	assert.Zero(t, rec.count(EventPlayerJoined))
}

func TestWorld_NewBlobDoesNotStealFromNeighbour(t *testing.T) {
	w, rec, _ := newTestWorld(testRules(), 10)

	w.Update([]Blob{{ID: 1, X: 100, Y: 120}})
	require.NotNil(t, w.Player(0))

	// blob 1 ушёл вправо, новый blob 2 появился почти на месте P0
	w.Update([]Blob{{ID: 1, X: 150, Y: 120}, {ID: 2, X: 101, Y: 120}})

	require.NotNil(t, w.Player(1))
	assert.Equal(t, 2, rec.count(EventPlayerJoined))
	assert.Equal(t, vec.Vec2Float{X: 150, Y: 120}, w.Player(0).Pos, "P0 остаётся со своим blob'ом")
	assert.Equal(t, vec.Vec2Float{X: 101, Y: 120}, w.Player(1).Pos, "новый игрок получает новый blob")
}

func TestWorld_ReturningBlobGoesToOfflinePlayer(t *testing.T) {
	w, rec, _ := newTestWorld(testRules(), 10)

	w.Update([]Blob{{ID: 1, X: 100, Y: 120}})
	w.Update(nil)
	require.True(t, w.Player(0).Offline())

	// трекер вернул ту же точку под новым id
	w.Update([]Blob{{ID: 7, X: 105, Y: 120}})

	assert.Equal(t, 1, rec.count(EventPlayerJoined))
	assert.Nil(t, w.Player(1))
	assert.False(t, w.Player(0).Offline())
	assert.Equal(t, vec.Vec2Float{X: 105, Y: 120}, w.Player(0).Pos)
}
