package project

import (
	"fmt"
	"time"
)

// Member represents a team member on the project roster.
type Member struct {
	UserID string `json:"user_id" yaml:"user_id"`
	Name   string `json:"name" yaml:"name"`
	Role   string `json:"role" yaml:"role"`
}

// TimeOff is an inclusive absence interval for one member.
type TimeOff struct {
	MemberID    string    `json:"member_id" yaml:"member_id"`
	StartDate   time.Time `json:"start_date" yaml:"start_date"`
	EndDate     time.Time `json:"end_date" yaml:"end_date"`
	HoursPerDay float64   `json:"hours_per_day" yaml:"hours_per_day"`
}

// Roster holds the team configuration stored in .pulse/team.yaml.
type Roster struct {
	Members []Member `json:"members" yaml:"members"`
}

// FindMember returns the member with the given user ID, or nil if not found.
func (r *Roster) FindMember(userID string) *Member {
	for i := range r.Members {
		if r.Members[i].UserID == userID {
			return &r.Members[i]
		}
	}
	return nil
}

// AddMember adds a member or updates their entry if they already exist.
func (r *Roster) AddMember(m Member) error {
	if m.UserID == "" {
		return fmt.Errorf("member user_id cannot be empty")
	}
	if m.Name == "" {
		return fmt.Errorf("member name cannot be empty")
	}
	for i := range r.Members {
		if r.Members[i].UserID == m.UserID {
			r.Members[i] = m
			return nil
		}
	}
	r.Members = append(r.Members, m)
	return nil
}

// RemoveMember removes a member by user ID.
func (r *Roster) RemoveMember(userID string) error {
	for i := range r.Members {
		if r.Members[i].UserID == userID {
			r.Members = append(r.Members[:i], r.Members[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("member not found: %s", userID)
}
