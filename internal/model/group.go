package model

import "time"

// GroupCode identifies a group (ministry, classroom, session) that records attendance
type GroupCode string

// Group is a target for attendance on a given day
type Group struct {
	Code      GroupCode
	Name      string
	Active    bool // inactive groups accept neither roster reads nor check-ins
	CreatedBy MemberID
	CreatedAt time.Time
	UpdatedAt time.Time
}
