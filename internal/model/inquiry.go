package model

import (
	"time"
)

type Inquiry struct {
	ID          string        `db:"id" json:"id"`
	ParentName  string        `db:"parent_name" json:"parentName"`
	StudentName string        `db:"student_name" json:"studentName"`
	Email       string        `db:"email" json:"email"`
	Phone       *string       `db:"phone" json:"phone,omitempty"`
	Grade       string        `db:"grade" json:"grade"`
	Message     *string       `db:"message" json:"message,omitempty"`
	Status      InquiryStatus `db:"status" json:"status"`
	CreatedAt   time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updatedAt"`
}

type CreateInquiryParams struct {
	ParentName  string
	StudentName string
	Email       string
	Phone       *string
	Grade       string
	Message     *string
}
