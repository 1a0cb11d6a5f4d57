package model

import "time"

type Stakeholder struct {
	ID                    string
	Name                  string
	Email                 *string
	Role                  *string
	Department            *string
	PrimaryValueInterests []ValueCategory
	InfluenceLevel        int
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
