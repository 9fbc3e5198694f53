package model

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrInvalidToken = errors.New("invalid token")
	ErrConfig       = errors.New("server is misconfigured")
)
