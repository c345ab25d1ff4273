package models

import (
	"time"
)

type Role string

const (
	RoleStudent   Role = "student"
	RoleOrganizer Role = "organizer"
	RoleVolunteer Role = "volunteer"
)

type OrganizerRole string

const (
	OrganizerRoleTeacher  OrganizerRole = "teacher"
	OrganizerRoleClubLead OrganizerRole = "club_lead"
)

type User struct {
	ID            string        `json:"id"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	Role          Role          `json:"role"`
	Name          string        `json:"name"`
	CollegeID     string        `json:"collegeId,omitempty"`
	OrganizerRole OrganizerRole `json:"organizerRole,omitempty"`
	Department    string        `json:"department,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
}

func (u User) IsOrganizer() bool {
	return u.Role == RoleOrganizer
}
