package model

import "errors"

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrNotAuthorized    = errors.New("not authorized")
	ErrNotFound         = errors.New("not found")
	ErrFileNotFound     = errors.New("file not found")
	ErrValidation       = errors.New("validation failed")

	// remote model boundaries
	ErrEmbeddingFormat  = errors.New("embedding response has invalid shape")
	ErrEmbeddingService = errors.New("embedding service call failed")
	ErrChatCompletion   = errors.New("chat completion call failed")
)
