package subscriptions

import "errors"

var (
	ErrRecordNotFound       = errors.New("record not found")
	ErrRecordNotPayable     = errors.New("record is not a payable occurrence")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryInUse        = errors.New("category in use")
	ErrCategoryNameTaken    = errors.New("category name already exists")
	ErrInvalidCategoryColor = errors.New("invalid category color")
)
