package engine

import "errors"

var (
	ErrInvalidPrice       = errors.New("price must be greater than zero")
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrWrongAsset         = errors.New("asset not accepted by this book")
	ErrFractionalQuantity = errors.New("bid does not divide into whole units")
	ErrInvalidQuantity    = errors.New("quantity must be greater than zero")
	ErrNoLiquidity        = errors.New("no bids to fill")
	ErrInvariantViolation = errors.New("book invariant violated")
)
