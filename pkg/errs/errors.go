package errs

import (
	"errors"
	"net/http"
)

const (
	ErrStatusInternalServer   = http.StatusInternalServerError
	ErrStatusClient           = http.StatusBadRequest
	ErrStatusNotLoggedIn      = http.StatusUnauthorized
	ErrStatusNoPermission     = http.StatusForbidden
	ErrStatusUnauthorized     = http.StatusUnauthorized
	ErrStatusNotFound         = http.StatusNotFound
	ErrStatusEmailAlreadyUsed = http.StatusBadRequest
	ErrStatusConflict         = http.StatusConflict
	ErrBadGateway             = http.StatusBadGateway
)

var (
	ErrInternalServer          = errors.New("Internal server error")
	ErrClient                  = errors.New("Bad request")
	ErrNotLoggedIn             = errors.New("Unauthorized access")
	ErrInvalidCredentialsEmail = errors.New("Email or password is incorrect")
	ErrUnauthorized            = errors.New("Forbidden access")
	ErrNotFound                = errors.New("Resource not found")
	ErrAccountNotFound         = errors.New("Account not found")
	ErrEmailAlreadyUsed        = errors.New("Email has already been used")
	ErrConflict                = errors.New("Conflicting record found")
	ErrNotAdmin                = errors.New("Admin role required")

	// catalog
	ErrFetch           = errors.New("Catalog source is unavailable")
	ErrMalformedData   = errors.New("Malformed product record")
	ErrProductNotFound = errors.New("product not found")

	// admin product form
	ErrMissingProductFields = errors.New("Name, price, category and image are required")
	ErrInvalidPrice         = errors.New("Price must be greater than zero")
	ErrInvalidStock         = errors.New("Stock cannot be negative")
	ErrInvalidSalePrice     = errors.New("Sale price must be greater than zero and lower than price")
	ErrMissingCredentials   = errors.New("Email and password are required")
)

var errorMap = map[error]int{
	ErrInternalServer:          ErrStatusInternalServer,
	ErrInvalidCredentialsEmail: ErrStatusUnauthorized,
	ErrUnauthorized:            ErrStatusUnauthorized,
	ErrNotLoggedIn:             ErrStatusNotLoggedIn,
	ErrClient:                  ErrStatusClient,
	ErrNotFound:                ErrStatusNotFound,
	ErrEmailAlreadyUsed:        ErrStatusEmailAlreadyUsed,
	ErrConflict:                ErrStatusConflict,
	ErrAccountNotFound:         ErrStatusNotFound,
	ErrNotAdmin:                ErrStatusNoPermission,
	ErrFetch:                   ErrBadGateway,
	ErrMalformedData:           ErrBadGateway,
	ErrProductNotFound:         ErrStatusNotFound,
	ErrMissingProductFields:    ErrStatusClient,
	ErrInvalidPrice:            ErrStatusClient,
	ErrInvalidStock:            ErrStatusClient,
	ErrInvalidSalePrice:        ErrStatusClient,
	ErrMissingCredentials:      ErrStatusClient,
}

// GetErrorStatusCode resolves wrapped errors too, so repositories can add
// context with %w without losing the status.
func GetErrorStatusCode(err error) int {
	if errStatusCode, ok := errorMap[err]; ok {
		return errStatusCode
	}

	for target, errStatusCode := range errorMap {
		if errors.Is(err, target) {
			return errStatusCode
		}
	}

	return errorMap[ErrInternalServer]
}
