package domain

import "time"

type Plan struct {
	ID        string
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Status    PlanStatus
	CreatedAt time.Time
}

// SetStatus moves the plan to status. Any known status may follow any other.
func (p *Plan) SetStatus(status PlanStatus) error {
	if !status.Valid() {
		return Invalid("status", "invalid plan status %q (want active, completed or archived)", status)
	}
	p.Status = status
	return nil
}

// DisplayID returns the first 8 characters of the plan ID.
func (p *Plan) DisplayID() string {
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}
