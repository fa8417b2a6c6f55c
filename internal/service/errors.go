package service

import "errors"

var (
	ErrMissingURL   = errors.New("url is required")
	ErrNoText       = errors.New("no article text could be resolved")
	ErrMissingQuery = errors.New("fingerprint or url is required")
)
