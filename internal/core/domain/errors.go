package domain

import "go.trai.ch/zerr"

var (
	// ErrProductNotFound is returned when the catalog has no product for a barcode.
	ErrProductNotFound = zerr.New("product not found")

	// ErrCatalogUnavailable is returned when the catalog cannot be reached or answers unexpectedly.
	ErrCatalogUnavailable = zerr.New("catalog unavailable")

	// ErrCatalogResponseInvalid is returned when a catalog response cannot be decoded.
	ErrCatalogResponseInvalid = zerr.New("invalid catalog response")

	// ErrLookupTimeout is returned when a catalog lookup exceeds its deadline.
	ErrLookupTimeout = zerr.New("catalog lookup timed out")

	// ErrLookupPanicked is returned when the catalog collaborator panics during a lookup.
	ErrLookupPanicked = zerr.New("catalog lookup panicked")

	// ErrCatalogConflict is returned when more than one catalog source is configured.
	ErrCatalogConflict = zerr.New("catalog url, file and dsn are mutually exclusive")

	// ErrCatalogDSNMissing is returned when a database operation has no connection string.
	ErrCatalogDSNMissing = zerr.New("catalog dsn is not configured")

	// ErrCatalogFileReadFailed is returned when the product file cannot be read.
	ErrCatalogFileReadFailed = zerr.New("failed to read catalog file")

	// ErrCatalogFileParseFailed is returned when the product file cannot be parsed.
	ErrCatalogFileParseFailed = zerr.New("failed to parse catalog file")

	// ErrDuplicateBarcode is returned when two catalog records share a barcode.
	ErrDuplicateBarcode = zerr.New("duplicate barcode in catalog")

	// ErrInvalidProduct is returned when a catalog record is missing required fields.
	ErrInvalidProduct = zerr.New("invalid product record")

	// ErrDatabaseConnectFailed is returned when the catalog database cannot be reached.
	ErrDatabaseConnectFailed = zerr.New("failed to connect to catalog database")

	// ErrMigrationFailed is returned when applying catalog schema migrations fails.
	ErrMigrationFailed = zerr.New("failed to migrate catalog database")

	// ErrLineNotFound is returned when a removal targets a line that is not in the cart.
	ErrLineNotFound = zerr.New("cart line not found")

	// ErrConfirmationPending is returned when a confirmation is requested while another is open.
	ErrConfirmationPending = zerr.New("a confirmation is already pending")

	// ErrNoPendingConfirmation is returned when confirm is called with nothing to confirm.
	ErrNoPendingConfirmation = zerr.New("no confirmation is pending")

	// ErrCameraUnavailable is returned when the camera decoder cannot be acquired.
	ErrCameraUnavailable = zerr.New("camera unavailable")

	// ErrCameraCommandMissing is returned when camera mode is used without a decoder command.
	ErrCameraCommandMissing = zerr.New("camera decoder command is not configured")

	// ErrEngineStopped is returned when an intent is sent to an engine that is no longer running.
	ErrEngineStopped = zerr.New("scan engine stopped")

	// ErrInvalidMode is returned for an unknown scan mode.
	ErrInvalidMode = zerr.New("invalid scan mode, expected 'wedge' or 'camera'")

	// ErrInvalidOutput is returned for an unknown output mode flag.
	ErrInvalidOutput = zerr.New("invalid output mode, expected 'auto', 'tui' or 'linear'")

	// ErrInvalidDuration is returned for a negative or zero policy duration.
	ErrInvalidDuration = zerr.New("duration must be positive")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrUnknownCommand is returned for an unrecognised line-mode command.
	ErrUnknownCommand = zerr.New("unknown command")
)
