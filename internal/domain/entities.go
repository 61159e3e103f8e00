package domain

import (
	"fmt"
	"strings"
	"time"
)

// Expense is a single recorded outlay against a project.
type Expense struct {
	ID        string
	Concept   string
	Date      time.Time
	Amount    float64
	SupplierID string
	ProjectID  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the fields required to persist an expense.
func (e *Expense) Validate() error {
	if strings.TrimSpace(e.Concept) == "" {
		return fmt.Errorf("concept is required")
	}
	if e.Amount < 0 {
		return fmt.Errorf("amount must not be negative")
	}
	if e.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	return nil
}

// Supplier is a vendor the organization buys from.
type Supplier struct {
	ID          string
	CompanyName string
	Email       string
	Phone       string
	AreaIDs     []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (s *Supplier) Validate() error {
	if strings.TrimSpace(s.CompanyName) == "" {
		return fmt.Errorf("company name is required")
	}
	return nil
}

// Client is a customer that projects are billed to.
type Client struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Client) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

// Responsible is the person accountable for a project.
type Responsible struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r *Responsible) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

// Project groups expenses and bills under a client engagement.
type Project struct {
	ID            string
	Name          string
	ClientID      string
	ResponsibleID string
	StartDate     *time.Time
	EndDate       *time.Time
	Status        ProjectStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (p *Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if !p.Status.Valid() {
		return fmt.Errorf("invalid project status %q", p.Status)
	}
	return nil
}

// Bill is an invoice issued against a project.
type Bill struct {
	ID        string
	Folio     string
	ProjectID string
	Amount    float64
	IssuedAt  time.Time
	Status    BillStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (b *Bill) Validate() error {
	if strings.TrimSpace(b.Folio) == "" {
		return fmt.Errorf("folio is required")
	}
	if b.Amount < 0 {
		return fmt.Errorf("amount must not be negative")
	}
	if !b.Status.Valid() {
		return fmt.Errorf("invalid bill status %q", b.Status)
	}
	return nil
}
