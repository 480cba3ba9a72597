package diffutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func toBytes(s string) []byte { return []byte(s) }

func TestDistanceKnownValue(t *testing.T) {
	assert.Equal(t, 5, Distance(toBytes("ABCABBA"), toBytes("CBABAC")))
}

func TestDistanceIsSymmetric(t *testing.T) {
	a, b := toBytes("ABCABBA"), toBytes("CBABAC")
	assert.Equal(t, Distance(a, b), Distance(b, a))
}

func TestDistanceOfIdenticalSequenceIsZero(t *testing.T) {
	a := toBytes("identical")
	assert.Equal(t, 0, Distance(a, a))
}

func TestDistanceOfEmptySequences(t *testing.T) {
	assert.Equal(t, 0, Distance([]byte{}, []byte{}))
}

func TestDistanceAgainstEmptyIsLength(t *testing.T) {
	a := toBytes("abcdef")
	assert.Equal(t, len(a), Distance(a, []byte{}))
	assert.Equal(t, len(a), Distance([]byte{}, a))
}

func TestDistanceWorksOnLines(t *testing.T) {
	a := []string{"one", "two", "three"}
	b := []string{"one", "three", "four"}
	assert.Equal(t, 3, Distance(a, b))
}
