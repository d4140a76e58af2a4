package testdata_test

import (
	"math"
	"regexp"
	"testing"

	"loadlab/pkg/testdata"

	"github.com/stretchr/testify/assert"
)

var base36String = regexp.MustCompile(`^[0-9a-z]{11,13}$`)

func TestRandomString(t *testing.T) {
	g := testdata.NewGenerator(1)
	for i := 0; i < 200; i++ {
		assert.Regexp(t, base36String, g.RandomString())
	}
	assert.Regexp(t, base36String, testdata.RandomString())
}

func TestRandomInt(t *testing.T) {
	g := testdata.NewGenerator(2)
	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		n := g.RandomInt(1, 4)
		assert.GreaterOrEqual(t, n, 1)
		assert.LessOrEqual(t, n, 4)
		seen[n] = true
	}
	assert.Len(t, seen, 4, "both bounds are reachable")

	assert.Equal(t, 5, g.RandomInt(5, 5))
	n := testdata.RandomInt(10, 3)
	assert.GreaterOrEqual(t, n, 3)
	assert.LessOrEqual(t, n, 10)
}

func TestRandomIntExtremeBounds(t *testing.T) {
	g := testdata.NewGenerator(3)
	assert.NotPanics(t, func() {
		for i := 0; i < 100; i++ {
			g.RandomInt(math.MinInt, math.MaxInt)
		}
	})

	for i := 0; i < 100; i++ {
		n := g.RandomInt(-5, math.MaxInt)
		assert.GreaterOrEqual(t, n, -5)

		n = g.RandomInt(math.MinInt, math.MinInt+2)
		assert.LessOrEqual(t, n, math.MinInt+2)
	}
	assert.Equal(t, math.MaxInt, g.RandomInt(math.MaxInt, math.MaxInt))
}

func TestPick(t *testing.T) {
	g := testdata.NewGenerator(3)
	items := []string{"Electronics", "Clothing", "Books", "Home"}
	for i := 0; i < 50; i++ {
		assert.Contains(t, items, testdata.Pick(g, items))
	}
	assert.Equal(t, "", testdata.Pick(g, []string{}))
	assert.Equal(t, 0, testdata.PickOne[int](nil))
}

func TestGeneratorIsDeterministic(t *testing.T) {
	a, b := testdata.NewGenerator(9), testdata.NewGenerator(9)
	assert.Equal(t, a.NewCredentials(), b.NewCredentials())

	c := testdata.NewGenerator(10).NewCredentials()
	assert.Regexp(t, `^user_[0-9a-z]+@example\.com$`, c.Email)
}
