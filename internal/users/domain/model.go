package domain

import "errors"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrProfileMissing = errors.New("profile not found")
	// ErrProtectedAdmin is returned by any mutation that would change the
	// super-admin's role, block it, or delete it.
	ErrProtectedAdmin = errors.New("operation not allowed on protected admin")
)

type User struct {
	Email     string `json:"email"`
	Role      string `json:"role"`
	Protected bool   `json:"protected"`
	Blocked   bool   `json:"blocked"`
}

type Profile struct {
	Email          string `json:"email"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	MobileNumber   string `json:"mobileNumber"`
	MobileVerified bool   `json:"mobileVerified"`
	// Blocked is joined in from the users row on reads.
	Blocked bool `json:"blocked"`
}

// UserListing is the admin view: the users row LEFT JOINed with its profile.
type UserListing struct {
	Email          string `json:"email"`
	Role           string `json:"role"`
	Blocked        bool   `json:"blocked"`
	MobileNumber   string `json:"mobileNumber"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	MobileVerified bool   `json:"mobileVerified"`
}

// AccessSignal is the three-way outcome of the access-check composition.
// The client route guard dispatches to three different redirect targets
// based on it, so the taxonomy must stay exactly this.
type AccessSignal string

const (
	AccessOK         AccessSignal = "ok"
	AccessBlocked    AccessSignal = "blocked"
	AccessUnverified AccessSignal = "unverified"
)

type AccessResult struct {
	Signal AccessSignal
	Role   string
}
