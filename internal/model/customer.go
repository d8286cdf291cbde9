package model

import "github.com/google/uuid"

type Customer struct {
	ID       uuid.UUID
	Name     string
	Company  string
	Phone    string
	Category string
}
