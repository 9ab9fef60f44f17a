package engine

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineSerializesPlaceAndFill(t *testing.T) {
	book, _ := newTestBook()
	eng := NewEngine(book, 16, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go eng.Run(ctx)

	rcpt, err := eng.Place(ctx, xrd(100), decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.True(t, rcpt.Quantity.Equal(decimal.NewFromInt(10)))

	res, err := eng.Fill(ctx, units(10))
	require.NoError(t, err)
	require.Len(t, res.Proceeds, 1)
	assert.True(t, res.Proceeds[0].Amount.Equal(decimal.NewFromInt(100)))

	_, err = eng.Fill(ctx, units(1))
	assert.ErrorIs(t, err, ErrNoLiquidity)
}

func TestEngineSurfacesBookErrors(t *testing.T) {
	book, _ := newTestBook()
	eng := NewEngine(book, 16, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go eng.Run(ctx)

	_, err := eng.Place(ctx, xrd(105), decimal.NewFromInt(10))
	assert.ErrorIs(t, err, ErrFractionalQuantity)
}

func TestEnginePlaceHonorsContext(t *testing.T) {
	book, _ := newTestBook()
	eng := NewEngine(book, 16, nil)

	// no Run loop draining commands; a cancelled context must unblock
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := eng.Place(ctx, xrd(100), decimal.NewFromInt(10))
	assert.ErrorIs(t, err, context.Canceled)
}
