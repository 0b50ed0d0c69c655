package model

import "time"

// BookingRun is the journal record of one orchestration run. The journal
// lives in an in-memory database and is lost on restart.
type BookingRun struct {
	ID               int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	RoomID           string     `gorm:"size:32;not null" json:"roomId"`
	TargetTime       time.Time  `gorm:"not null" json:"targetTime"`
	Status           string     `gorm:"size:64;not null" json:"status"`
	PrimaryAttempts  int        `gorm:"not null" json:"primaryAttempts"`
	FallbackAttempts int        `gorm:"not null" json:"fallbackAttempts"`
	StartedAt        time.Time  `gorm:"not null" json:"startedAt"`
	FinishedAt       *time.Time `json:"finishedAt"`
}

// RunTransition records one status change of a run, in observation order.
type RunTransition struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	RunID      int64     `gorm:"index;not null" json:"runId"`
	Status     string    `gorm:"size:64;not null" json:"status"`
	ObservedAt time.Time `gorm:"not null" json:"observedAt"`
}
