package errors

import "net/http"

var (
	ErrValidationFailed = New(
		"VALIDATION_FAILED",
		"Request validation failed",
		http.StatusBadRequest,
	)

	ErrCommitRejected = New(
		"COMMIT_REJECTED",
		"The supplier service rejected the update",
		http.StatusBadGateway,
	)

	ErrSupplierUnavailable = New(
		"SUPPLIER_UNAVAILABLE",
		"The supplier service could not be reached",
		http.StatusBadGateway,
	)

	ErrSessionExpired = New(
		"SESSION_EXPIRED",
		"Session has expired, please sign in again",
		http.StatusUnauthorized,
	)

	ErrCommitInFlight = New(
		"COMMIT_IN_FLIGHT",
		"Another commit for this draft is still in progress",
		http.StatusConflict,
	)

	ErrDraftNotFound = New(
		"DRAFT_NOT_FOUND",
		"Draft not found",
		http.StatusNotFound,
	)

	ErrOptionNotFound = New(
		"OPTION_NOT_FOUND",
		"Booking option not found",
		http.StatusNotFound,
	)

	ErrResetConfirmationRequired = New(
		"RESET_CONFIRMATION_REQUIRED",
		"Creating a new schedule discards the existing availability and pricing; explicit confirmation is required",
		http.StatusConflict,
	)

	ErrAvailabilityIncomplete = New(
		"AVAILABILITY_INCOMPLETE",
		"Availability and pricing are not fully configured yet",
		http.StatusConflict,
	)

	ErrInvalidCutOff = New(
		"INVALID_CUTOFF",
		"Cut-off value is not one of the allowed choices",
		http.StatusBadRequest,
	)

	ErrTooFewImages = New(
		"TOO_FEW_IMAGES",
		"At least 3 images are required",
		http.StatusBadRequest,
	)

	ErrTooManyImages = New(
		"TOO_MANY_IMAGES",
		"At most 5 images are allowed",
		http.StatusBadRequest,
	)

	ErrInvalidImage = New(
		"INVALID_IMAGE",
		"Image failed validation",
		http.StatusBadRequest,
	)

	ErrUploadFailed = New(
		"UPLOAD_FAILED",
		"One or more image uploads failed",
		http.StatusBadGateway,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
