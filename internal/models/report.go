package models

import "time"

const (
	StatusPending = "pending"
	StatusFixed   = "fixed"
)

// TimestampLayout is the second-resolution layout used for report timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// Report is a citizen-submitted water leak. Status changes other than the
// initial pending value are made by maintenance staff outside this service.
type Report struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Contact   string    `gorm:"size:64;not null;index:idx_reports_contact_created" json:"contact"`
	Location  string    `gorm:"size:255;not null" json:"location"`
	Issue     string    `gorm:"type:text;not null" json:"issue"`
	Status    string    `gorm:"size:50;not null;default:'pending';index" json:"status"`
	CreatedAt time.Time `gorm:"not null;index:idx_reports_contact_created" json:"created_at"`
	Notified  bool      `gorm:"not null;default:false" json:"notified"`
}

func (Report) TableName() string { return "reports" }

// CreatedAtString renders CreatedAt in TimestampLayout.
func (r *Report) CreatedAtString() string {
	return r.CreatedAt.UTC().Format(TimestampLayout)
}
