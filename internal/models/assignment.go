package models

import "time"

// PoshakAssignment maps a student to their poshak leader.
// Used to resolve report CC lists, never to gate aggregation.
type PoshakAssignment struct {
	ID                int64
	PoshakID          int64
	AssignedStudentID int64
	CreatedAt         time.Time
}

// MonitorAssignment lets a monitor student fill entries on behalf of
// an assigned student
type MonitorAssignment struct {
	ID                int64
	MonitorStudentID  int64
	AssignedStudentID int64
	CreatedAt         time.Time
}
