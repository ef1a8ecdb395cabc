package models

import (
	"time"
)

const (
	MemberStatusActive   = "Active"
	MemberStatusInactive = "Inactive"
)

type Member struct {
	ID               int               `json:"id"`
	Name             string            `json:"name"`
	Email            string            `json:"email"`
	Phone            string            `json:"phone,omitempty"`
	Address          string            `json:"address"`
	BirthDate        *time.Time        `json:"birthDate,omitempty"`
	ExternalID       *string           `json:"externalId,omitempty"`
	CenterID         int               `json:"centerId"`
	CenterName       string            `json:"centerName,omitempty"`
	MonthlyDues      float64           `json:"monthlyDues,omitempty"`
	Status           string            `json:"status"`
	RegisteredAt     time.Time         `json:"registeredAt"`
	LastPaymentAt    *time.Time        `json:"lastPaymentAt"`
	EmergencyContact *EmergencyContact `json:"emergencyContact,omitempty"`
	Notes            string            `json:"notes,omitempty"`
	RegisteredBy     *int              `json:"registeredBy,omitempty"`
}

type EmergencyContact struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Relation string `json:"relation"`
}

// MemberPatch carries a partial member update.
type MemberPatch struct {
	Name             *string           `json:"name"`
	Email            *string           `json:"email"`
	Phone            *string           `json:"phone"`
	Address          *string           `json:"address"`
	BirthDate        *time.Time        `json:"birthDate"`
	ExternalID       *string           `json:"externalId"`
	CenterID         *int              `json:"centerId"`
	Status           *string           `json:"status"`
	EmergencyContact *EmergencyContact `json:"emergencyContact"`
	Notes            *string           `json:"notes"`
}

type MemberFilter struct {
	Search   string
	Status   string
	CenterID int
}

type MemberStatistics struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}
