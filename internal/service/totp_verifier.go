package service

import (
	"crypto/subtle"
	"strings"
	"sync"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// TOTPVerifier checks the optional admin second factor against a base32
// secret shared with the admin's authenticator app. A code is accepted at
// most once: each success records its time step and later codes must come
// from a newer step.
type TOTPVerifier struct {
	Secret    string
	Period    uint
	Skew      uint
	Digits    otp.Digits
	Algorithm otp.Algorithm

	mutex    sync.Mutex
	lastStep int64
	used     bool
}

func NewTOTPVerifier(secret string) *TOTPVerifier {
	return &TOTPVerifier{
		Secret:    strings.TrimSpace(secret),
		Period:    30,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	}
}

func (v *TOTPVerifier) Verify(code string, at time.Time) bool {
	code = strings.TrimSpace(code)
	if v.Secret == "" || code == "" {
		return false
	}
	step, ok := v.matchStep(code, at)
	if !ok {
		return false
	}

	v.mutex.Lock()
	defer v.mutex.Unlock()
	if v.used && step <= v.lastStep {
		return false
	}
	v.lastStep = step
	v.used = true
	return true
}

// matchStep finds the time step within the skew window whose code equals
// code.
func (v *TOTPVerifier) matchStep(code string, at time.Time) (int64, bool) {
	opts := totp.ValidateOpts{
		Period:    v.period(),
		Digits:    v.digits(),
		Algorithm: v.algorithm(),
	}
	period := int64(v.period())
	current := at.Unix() / period
	skew := int64(v.skew())

	for step := current - skew; step <= current+skew; step++ {
		expected, err := totp.GenerateCodeCustom(v.Secret, time.Unix(step*period, 0).UTC(), opts)
		if err != nil {
			return 0, false
		}
		if subtle.ConstantTimeCompare([]byte(expected), []byte(code)) == 1 {
			return step, true
		}
	}
	return 0, false
}

func (v *TOTPVerifier) period() uint {
	if v.Period == 0 {
		return 30
	}
	return v.Period
}

func (v *TOTPVerifier) skew() uint {
	if v.Skew == 0 {
		return 1
	}
	return v.Skew
}

func (v *TOTPVerifier) digits() otp.Digits {
	if v.Digits == 0 {
		return otp.DigitsSix
	}
	return v.Digits
}

func (v *TOTPVerifier) algorithm() otp.Algorithm {
	if v.Algorithm == 0 {
		return otp.AlgorithmSHA1
	}
	return v.Algorithm
}
