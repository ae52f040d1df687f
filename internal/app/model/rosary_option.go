package model

import "time"

// OptionType discriminates the configurator pools in the custom_options table.
type OptionType string

const (
	OptionMaterial OptionType = "material"
	OptionColor    OptionType = "color"
	OptionCrucifix OptionType = "crucifix"
)

var OptionTypes = []OptionType{OptionMaterial, OptionColor, OptionCrucifix}

func (t OptionType) IsValid() bool {
	switch t {
	case OptionMaterial, OptionColor, OptionCrucifix:
		return true
	}
	return false
}

type RosaryOption struct {
	ID        string     `gorm:"primarykey;type:varchar(64)" json:"id"`
	Type      OptionType `gorm:"type:varchar(20);index;not null" json:"type"`
	Name      string     `gorm:"not null" json:"name"`
	Price     float64    `gorm:"default:0" json:"price"` // signed delta over the base price
	Image     string     `json:"image,omitempty"`
	CreatedAt time.Time  `json:"-"`
	UpdatedAt time.Time  `json:"-"`
}

func (RosaryOption) TableName() string {
	return "custom_options"
}

// CustomRosarySelection holds at most one option per pool.
// Size, Medal and PersonalizationText are legacy fields; they are carried
// through but never priced.
type CustomRosarySelection struct {
	Material *RosaryOption `json:"material,omitempty"`
	Color    *RosaryOption `json:"color,omitempty"`
	Crucifix *RosaryOption `json:"crucifix,omitempty"`

	Size                *RosaryOption `json:"size,omitempty"`
	Medal               *RosaryOption `json:"medal,omitempty"`
	PersonalizationText string        `json:"personalization_text,omitempty"`
}

// Get returns the selected option for a pool.
func (s *CustomRosarySelection) Get(t OptionType) *RosaryOption {
	switch t {
	case OptionMaterial:
		return s.Material
	case OptionColor:
		return s.Color
	case OptionCrucifix:
		return s.Crucifix
	}
	return nil
}

// Set stores opt under its pool.
func (s *CustomRosarySelection) Set(t OptionType, opt *RosaryOption) {
	switch t {
	case OptionMaterial:
		s.Material = opt
	case OptionColor:
		s.Color = opt
	case OptionCrucifix:
		s.Crucifix = opt
	}
}

// IsEmpty reports whether no pool has a selection.
func (s *CustomRosarySelection) IsEmpty() bool {
	return s.Material == nil && s.Color == nil && s.Crucifix == nil
}
