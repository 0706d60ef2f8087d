package errors

import "net/http"

var (
	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidGeometry = New(
		"INVALID_GEOMETRY",
		"Feature geometry is not a point or closed polygon",
		http.StatusBadRequest,
	)

	ErrMissingProperty = New(
		"MISSING_PROPERTY",
		"Required feature property is absent or empty",
		http.StatusBadRequest,
	)

	ErrInvalidClusterRadius = New(
		"INVALID_CLUSTER_RADIUS",
		"Invalid clustering radius value",
		http.StatusBadRequest,
	)

	ErrGeocoderUnavailable = New(
		"GEOCODER_UNAVAILABLE",
		"Facility search API request failed",
		http.StatusBadGateway,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)
)
