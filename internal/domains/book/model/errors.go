package model

import "errors"

var (
	ErrBookNotFound       = errors.New("book not found")
	ErrTitleAlreadyExists = errors.New("a book with this title already exists")
)
