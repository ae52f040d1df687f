package model

import "time"

type SaleStatus string

const (
	SalePending    SaleStatus = "pending"
	SaleInProgress SaleStatus = "in_progress"
	SaleDone       SaleStatus = "done"
)

// SaleStatuses is the production board column order.
var SaleStatuses = []SaleStatus{SalePending, SaleInProgress, SaleDone}

func (s SaleStatus) IsValid() bool {
	switch s {
	case SalePending, SaleInProgress, SaleDone:
		return true
	}
	return false
}

// SaleDateLayout is the display format of SaleEntry.Date.
const SaleDateLayout = "02/01/2006"

type SaleEntry struct {
	ID          string     `gorm:"primarykey;type:varchar(64)" json:"id"`
	Date        string     `gorm:"type:varchar(20)" json:"date"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Value       float64    `gorm:"default:0" json:"value"`
	Status      SaleStatus `gorm:"type:varchar(20);index;default:'pending'" json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (SaleEntry) TableName() string {
	return "sales"
}

// Label is the board column title.
func (s SaleStatus) Label() string {
	switch s {
	case SalePending:
		return "Pendente"
	case SaleInProgress:
		return "Em produção"
	case SaleDone:
		return "Concluído"
	}
	return string(s)
}
