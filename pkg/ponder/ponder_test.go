package ponder_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/nthmove/woodpusher/pkg/board/fen"
	"github.com/nthmove/woodpusher/pkg/history"
	"github.com/nthmove/woodpusher/pkg/ponder"
	"github.com/nthmove/woodpusher/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledWorkerStartStopIsNoop(t *testing.T) {
	h := history.New()
	w := ponder.New(false, search.DefaultOptions(), h, rand.New(rand.NewSource(1)))

	bp, _, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	w.Start(bp)
	w.Stop() // must not block
}

func TestWorkerStartStopLifecycle(t *testing.T) {
	h := history.New()
	opt := search.DefaultOptions()
	w := ponder.New(true, opt, h, rand.New(rand.NewSource(1)))

	bp, _, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	w.Start(bp)
	time.Sleep(5 * time.Millisecond)
	w.Stop()

	assert.NoError(t, w.CheckStop())
}
