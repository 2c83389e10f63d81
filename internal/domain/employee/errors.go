package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrInvalidPIN       = errors.New("invalid PIN")
	ErrEmployeeInactive = errors.New("employee is inactive")
)
