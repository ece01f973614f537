package model

import "time"

// Registered object type names.
const (
	TypeProgram    = "Program"
	TypeControl    = "Control"
	TypeAssessment = "Assessment"
	TypePolicy     = "Policy"
	TypePerson     = "Person"
)

// Program is an attributable business object
type Program struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string    `gorm:"size:250;not null" json:"title"`
	Slug      string    `gorm:"size:250;index" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Program) TableName() string { return "programs" }
func (p *Program) GetID() int64 { return p.ID }
func (p *Program) ObjectType() string { return TypeProgram }

// Control is an attributable business object
type Control struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string    `gorm:"size:250;not null" json:"title"`
	Slug      string    `gorm:"size:250;index" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Control) TableName() string { return "controls" }
func (c *Control) GetID() int64 { return c.ID }
func (c *Control) ObjectType() string { return TypeControl }

// Assessment is an attributable business object
type Assessment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string    `gorm:"size:250;not null" json:"title"`
	Slug      string    `gorm:"size:250;index" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Assessment) TableName() string { return "assessments" }
func (a *Assessment) GetID() int64 { return a.ID }
func (a *Assessment) ObjectType() string { return TypeAssessment }

// Policy is an attributable business object
type Policy struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string    `gorm:"size:250;not null" json:"title"`
	Slug      string    `gorm:"size:250;index" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Policy) TableName() string { return "policies" }
func (p *Policy) GetID() int64 { return p.ID }
func (p *Policy) ObjectType() string { return TypePolicy }

// Person can be referenced by "Map:Person" custom attributes
type Person struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:250" json:"name"`
	Email     string    `gorm:"size:250;index" json:"email"`
	Title     string    `gorm:"size:250" json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Person) TableName() string { return "people" }
func (p *Person) GetID() int64 { return p.ID }
func (p *Person) ObjectType() string { return TypePerson }
