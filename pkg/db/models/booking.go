package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/marigoldevents/marigold-backend/pkg/enums"
)

// Booking is a service reservation (driving lessons, event services) captured
// from the public booking form.
type Booking struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerName  string              `gorm:"column:customer_name;not null"`
	CustomerEmail string              `gorm:"column:customer_email;not null"`
	CustomerPhone *string             `gorm:"column:customer_phone"`
	ServiceType   string              `gorm:"column:service_type;not null"`
	BookingDate   time.Time           `gorm:"column:booking_date;type:date;not null"`
	BookingTime   string              `gorm:"column:booking_time;not null"`
	Notes         *string             `gorm:"column:notes"`
	Status        enums.BookingStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
