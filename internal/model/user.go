package model

import "time"

type User struct {
	ID             string
	Email          string
	Username       string
	FullName       *string
	HashedPassword string
	IsActive       bool
	IsSuperuser    bool
	CreatedAt      time.Time
	LastLogin      *time.Time
}
