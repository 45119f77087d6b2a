package turndriver_test

import (
	"context"
	"testing"

	"github.com/nthmove/woodpusher/pkg/board/fen"
	"github.com/nthmove/woodpusher/pkg/turndriver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSettingsValidation(t *testing.T) {
	_, err := turndriver.NewSettings(turndriver.WithWhichAI(3))
	assert.Error(t, err)

	_, err = turndriver.NewSettings(turndriver.WithQuiescent(-1))
	assert.Error(t, err)

	s, err := turndriver.NewSettings()
	require.NoError(t, err)
	assert.Equal(t, 1, s.WhichAI)
}

func TestMyTurnReturnsLegalMove(t *testing.T) {
	settings, err := turndriver.NewSettings(turndriver.WithMaxDepthLimit(2))
	require.NoError(t, err)

	d, err := turndriver.New(context.Background(), settings)
	require.NoError(t, err)

	action, err := d.MyTurn(context.Background(), fen.Initial, 60)
	require.NoError(t, err)
	assert.NotEmpty(t, action.String())
}

func TestMyTurnRandomMode(t *testing.T) {
	settings, err := turndriver.NewSettings(turndriver.WithRandom(true))
	require.NoError(t, err)

	d, err := turndriver.New(context.Background(), settings)
	require.NoError(t, err)

	action, err := d.MyTurn(context.Background(), fen.Initial, 60)
	require.NoError(t, err)
	assert.NotEmpty(t, action.String())
}

func TestMyTurnInvalidFEN(t *testing.T) {
	settings, err := turndriver.NewSettings()
	require.NoError(t, err)

	d, err := turndriver.New(context.Background(), settings)
	require.NoError(t, err)

	_, err = d.MyTurn(context.Background(), "not a fen", 60)
	assert.Error(t, err)
}
