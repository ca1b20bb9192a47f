package services

import (
	"regexp"
	"strings"

	"github.com/ahmetcoskunkizilkaya/water-leak-backend/internal/dto"
)

const ContactPrefix = "+263"

// strictPhonePattern is +263, then 7, then one of 1/3/7/8, then seven digits.
var strictPhonePattern = regexp.MustCompile(`^\+2637[1378][0-9]{7}$`)

// ValidateSubmission checks a new report. Only the +263 prefix is enforced
// on intake; the full mobile pattern is applied by status lookups.
func ValidateSubmission(req *dto.CreateReportRequest) error {
	if req == nil ||
		req.Name == "" ||
		req.Contact == "" ||
		req.Location == "" ||
		req.Issue == "" {
		return ErrMissingFields
	}
	if !strings.HasPrefix(req.Contact, ContactPrefix) {
		return ErrInvalidContactPrefix
	}
	return nil
}

func ValidateLookupContact(contact string) error {
	if !strictPhonePattern.MatchString(contact) {
		return ErrInvalidPhoneFormat
	}
	return nil
}
