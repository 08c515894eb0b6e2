package checkout

import "errors"

var (
	ErrSubmissionInProgress = errors.New("submission already in progress")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrAlreadySubmitted     = errors.New("order already submitted")
)
