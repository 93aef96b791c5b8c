package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList is an ordered list of strings stored as a JSON array in a text
// column. It replaces ad-hoc comma-joined storage so values may themselves
// contain commas.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case []byte:
		if len(v) == 0 {
			*l = StringList{}
			return nil
		}
		return json.Unmarshal(v, l)
	case string:
		if v == "" {
			*l = StringList{}
			return nil
		}
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
}

const (
	UserTypeFamily = "family"
	UserTypeSitter = "sitter"
)

// User is the shared identity record. UserType is fixed at registration and
// never mutated afterwards.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	FirstName    string `gorm:"not null" json:"first_name"`
	LastName     string `gorm:"not null" json:"last_name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	Password     string `json:"-"`
	UserType     string `gorm:"not null" json:"user_type"` // family or sitter
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	City         string `json:"city"`
	ZipCode      string `json:"zip_code"`
	ProfilePhoto string `json:"profile_photo"`
}

// Family holds the family-specific half of a profile, one row per user with
// UserType family.
type Family struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID         uint       `gorm:"not null;index" json:"user_id"`
	ChildrenCount  string     `json:"children_count"`
	ChildrenAges   StringList `gorm:"type:text" json:"children_ages"`
	SittingNeeds   string     `json:"sitting_needs"`
	AdditionalInfo string     `gorm:"type:text" json:"additional_info"`
}

// Sitter holds the sitter-specific half of a profile. IsVerified is only ever
// set by an external verification process; this service records the request
// flag. IsProfilePublic gates visibility in search and flips through the
// publish operation.
type Sitter struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID                uint       `gorm:"not null;index" json:"user_id"`
	Experience            string     `json:"experience"`
	Services              StringList `gorm:"type:text" json:"services"`
	AgeGroups             StringList `gorm:"type:text" json:"age_groups"`
	Certifications        StringList `gorm:"type:text" json:"certifications"`
	IsVerified            bool       `gorm:"default:false" json:"is_verified"`
	VerificationRequested bool       `gorm:"default:false" json:"verification_requested"`
	HourlyRate            float64    `gorm:"default:0" json:"hourly_rate"`
	Bio                   string     `gorm:"type:text" json:"bio"`
	IsProfilePublic       bool       `gorm:"default:false" json:"is_profile_public"`

	Availability []Availability `gorm:"foreignKey:SitterID;constraint:OnDelete:CASCADE" json:"-"`
}

// Availability is a single bookable day+time slot. Day and times are stored
// as the client sent them; no overlap or format validation is applied.
type Availability struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	SitterID  uint   `gorm:"not null;index" json:"sitter_id"`
	Day       string `gorm:"not null" json:"day"`
	StartTime string `gorm:"not null" json:"start_time"` // HH:MM
	EndTime   string `gorm:"not null" json:"end_time"`   // HH:MM
}
