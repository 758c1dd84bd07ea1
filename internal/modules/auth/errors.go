package auth

import (
	"fmt"

	"equiplend/internal/domain"
)

var ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", domain.ErrAccessDenied)
