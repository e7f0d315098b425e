package model

import "time"

// Job represents a kitchen remodeling job with its cabinet counts,
// schedule and material tracking fields.
//
// CabinetMaker and Installer are non-owning references: deleting a
// referenced user leaves the job row in place and the preloaded
// pointer nil, so display names degrade to empty strings at read time.
type Job struct {
	ID                    uint      `json:"id" gorm:"primaryKey"`
	JobNumber             string    `json:"jobNumber" gorm:"size:255"`
	JobName               string    `json:"jobName" gorm:"size:255"`
	NumCabinets           int       `json:"numCabinets"`
	NumUppers             int       `json:"numUppers"`
	NumLowers             int       `json:"numLowers"`
	CabinetMakerID        uint      `json:"cabinetMakerId" gorm:"index"`
	InstallerID           uint      `json:"installerId" gorm:"index"`
	DueDate               time.Time `json:"dueDate"`
	JobColor              string    `json:"jobColor" gorm:"size:255"`
	Office                string    `json:"office" gorm:"size:255"`
	Status                string    `json:"status" gorm:"size:255"`
	MaterialOrderStatus   string    `json:"materialOrderStatus" gorm:"size:255"`
	MaterialArrivalStatus string    `json:"materialArrivalStatus" gorm:"size:255"`
	Image                 string    `json:"image" gorm:"size:255"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`

	// Relations
	CabinetMaker *User `json:"-" gorm:"foreignKey:CabinetMakerID"`
	Installer    *User `json:"-" gorm:"foreignKey:InstallerID"`
}
