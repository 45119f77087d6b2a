package eval_test

import (
	"testing"

	"github.com/nthmove/woodpusher/pkg/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeafLess(t *testing.T) {
	tests := []struct {
		a, b eval.Leaf
		want bool
	}{
		{eval.Leaf{Material: 1}, eval.Leaf{Material: 2}, true},
		{eval.Leaf{Material: 2}, eval.Leaf{Material: 1}, false},
		{eval.Leaf{Material: 1, Moves: 1}, eval.Leaf{Material: 1, Moves: 2}, true},
		{eval.Leaf{Material: 1, Moves: 2}, eval.Leaf{Material: 1, Moves: 1}, false},
		{eval.Leaf{Material: 1, Moves: 1}, eval.Leaf{Material: 1, Moves: 1}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.a.Less(tt.b))
	}
}

func TestLeafNegate(t *testing.T) {
	l := eval.Leaf{Material: 3, Moves: -2}
	assert.Equal(t, eval.Leaf{Material: -3, Moves: 2}, l.Negate())
}

func TestHeuristicLeaf(t *testing.T) {
	assert.Equal(t, eval.Leaf{Material: 5}, eval.MaterialOnly.Leaf(5, 9))
	assert.Equal(t, eval.Leaf{Material: 5, Moves: 9}, eval.MaterialAndMobility.Leaf(5, 9))
}

func TestParseHeuristic(t *testing.T) {
	h, err := eval.ParseHeuristic(1)
	require.NoError(t, err)
	assert.Equal(t, eval.MaterialOnly, h)

	h, err = eval.ParseHeuristic(2)
	require.NoError(t, err)
	assert.Equal(t, eval.MaterialAndMobility, h)

	_, err = eval.ParseHeuristic(3)
	assert.Error(t, err)
}
