package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrConflict            = errors.New("conflict")
	ErrTestimonialExists   = fmt.Errorf("%w: a testimonial with this email already exists", ErrConflict)
	ErrVerificationPending = fmt.Errorf("%w: a testimonial with this email is awaiting verification", ErrConflict)
	ErrInvalidToken        = errors.New("the verification link has expired, please try again")
	ErrTestimonialNotFound = errors.New("testimonial not found")
	ErrInvalidCredentials  = errors.New("incorrect credentials")
	ErrMailDelivery        = errors.New("mail delivery failed")
)
