package book_appointment

import (
	"fmt"
	"net/mail"
	"strings"
)

const maxClientNameLength = 255

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TherapistID <= 0 {
		return fmt.Errorf("%w: therapistID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.JalaliDate) == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if name := req.Client.Name; name != nil && len(*name) > maxClientNameLength {
		return fmt.Errorf("%w: client name is too long", ErrInvalidInput)
	}

	if email := req.Client.Email; email != nil && *email != "" {
		if _, err := mail.ParseAddress(*email); err != nil {
			return fmt.Errorf("%w: invalid client email", ErrInvalidInput)
		}
	}

	return nil
}
