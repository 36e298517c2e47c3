package domain

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Status is the self-reported state of a registered instance.
type Status string

const (
	StatusUp       Status = "UP"
	StatusDown     Status = "DOWN"
	StatusStarting Status = "STARTING"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusUp, StatusDown, StatusStarting:
		return true
	default:
		return false
	}
}

// Instance represents one running instance of a named service held by MyRegistry.
// (ServiceName, InstanceID) identifies the entry; lease fields are owned by the registry.
type Instance struct {
	ServiceName    string
	InstanceID     string // unique within ServiceName
	Address        string // host:port
	Status         Status
	LeaseDuration  time.Duration // zero means registry default
	RegisteredAt   time.Time
	LastRenewedAt  time.Time
	LeaseExpiresAt time.Time
}

// Expired reports whether the lease has run out at now.
func (i Instance) Expired(now time.Time) bool {
	return !now.Before(i.LeaseExpiresAt)
}

// WithLease returns a copy of i whose lease starts at now.
func (i Instance) WithLease(now time.Time, duration time.Duration) Instance {
	i.LeaseDuration = duration
	i.LastRenewedAt = now
	i.LeaseExpiresAt = now.Add(duration)
	return i
}

// Validate checks the descriptor fields a client controls. Empty Status is accepted and means UP.
func (i Instance) Validate() error {
	if i.ServiceName == "" {
		return fmt.Errorf("service name is required")
	}
	if i.InstanceID == "" {
		return fmt.Errorf("instance_id is required")
	}
	if i.Address == "" {
		return fmt.Errorf("address is required")
	}
	host, port, err := net.SplitHostPort(i.Address)
	if err != nil || host == "" {
		return fmt.Errorf("address must be host:port")
	}
	if p, err := strconv.Atoi(port); err != nil || p <= 0 || p > 65535 {
		return fmt.Errorf("address port must be 1-65535")
	}
	if i.Status != "" && !i.Status.Valid() {
		return fmt.Errorf("status must be UP|DOWN|STARTING")
	}
	if i.LeaseDuration < 0 {
		return fmt.Errorf("lease duration must not be negative")
	}
	return nil
}

// Application groups the live instances of one service name.
type Application struct {
	Name      string
	Instances []Instance
}
