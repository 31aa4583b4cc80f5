package service

import "errors"

// Service-level failures. Handlers map these onto HTTP statuses and the
// error-code envelope.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSlugTaken          = errors.New("community with the same slug exists")
	ErrRoleExists         = errors.New("role already exists")
	ErrAlreadyMember      = errors.New("user is already a member")
	ErrResourceNotFound   = errors.New("resource not found")
	ErrNotAllowed         = errors.New("not allowed")
	// ErrMemberNotFound covers both "no such member" and "caller may not
	// touch this member" so member ids cannot be probed.
	ErrMemberNotFound = errors.New("member not found")
	// ErrMisconfigured means required seed data (the Community Admin role)
	// is absent from the store.
	ErrMisconfigured  = errors.New("required seed role missing")
	ErrPageOutOfRange = errors.New("invalid page number")
)
