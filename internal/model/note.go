package model

import (
	"time"
)

// LongStayNote is an append-only remark on a long-stay patient. ID and timestamps
// are assigned by the store.
type LongStayNote struct {
	ID        int64     `db:"id" json:"id"`
	PatientID int64     `db:"patient_id" json:"patient_id"`
	Content   string    `db:"content" json:"content"`
	CreatedBy ActorRef  `db:"-" json:"created_by"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ActorRef is the author of a note as stored with it.
type ActorRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CreateNoteRequest struct {
	Content string `json:"content" binding:"required,max=4000"`
}
