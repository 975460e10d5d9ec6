package models

import "time"

// Organisation is a tenant. Its name is unique across the system.
type Organisation struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
