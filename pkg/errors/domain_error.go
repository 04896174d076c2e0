package custom_error

// DomainError is an expected failure reported to API clients with a stable
// numeric code. Codes are grouped by hundred-block per entity.
type DomainError struct {
	Code    int
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func newDomainError(code int, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

var (
	ErrWrongCredentials     = newDomainError(1001, "Wrong credentials")
	ErrAccessDenied         = newDomainError(1002, "Access denied")
	ErrTooManyLoginAttempts = newDomainError(1003, "Too many login attempts")

	ErrWarehouseAlreadyExists = newDomainError(2001, "Warehouse already exists")
	ErrWarehouseNotFound      = newDomainError(2002, "Warehouse not found")

	ErrProductCategoryAlreadyExists = newDomainError(3001, "Product category already exists")
	ErrProductCategoryNotFound      = newDomainError(3002, "Product category not found")
	ErrProductCategoryInUse         = newDomainError(3003, "Product category has products")
	ErrProductCategoryCycle         = newDomainError(3004, "Product category cannot be moved into its own subtree")

	ErrProductAlreadyExists = newDomainError(4001, "Product already exists")
	ErrProductNotFound      = newDomainError(4002, "Product not found")

	ErrEmployeePositionAlreadyExists = newDomainError(5001, "Employee position already exists")
	ErrEmployeePositionNotFound      = newDomainError(5002, "Employee position not found")

	ErrEmployeeNotFound = newDomainError(6002, "Employee not found")

	ErrStorageUnitAlreadyExists = newDomainError(7001, "Storage unit already exists")
	ErrStorageUnitNotFound      = newDomainError(7002, "Storage unit not found")
)
