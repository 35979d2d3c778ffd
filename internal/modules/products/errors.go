package products

import "errors"

var (
	ErrEmptyCategory = errors.New("category is required")
	ErrFormNotFound  = errors.New("no edit form for product")
	ErrUploadFailed  = errors.New("image upload failed")
	ErrStoreFailed   = errors.New("product store update failed")
)
