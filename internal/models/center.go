package models

import (
	"time"
)

type Center struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Address       string    `json:"address"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	Manager       string    `json:"manager,omitempty"`
	Active        bool      `json:"active"`
	MonthlyDues   float64   `json:"monthlyDues"`
	CreatedAt     time.Time `json:"createdAt"`
	TotalMembers  int       `json:"totalMembers"`
	ActiveMembers int       `json:"activeMembers"`
}

type CenterFilter struct {
	Search string
	Active *bool
}
