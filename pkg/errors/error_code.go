package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidRequest       ErrorCode = 102
	ErrCodeInvalidPeriod        ErrorCode = 103
	ErrCodeInvalidTradingMode   ErrorCode = 104
	ErrCodeMissingParameter     ErrorCode = 105

	// Data errors (200-299)
	ErrCodeEmptySeries      ErrorCode = 200
	ErrCodeBarInvariant     ErrorCode = 201
	ErrCodeTimestampOrder   ErrorCode = 202
	ErrCodeDataParseFailed  ErrorCode = 203
	ErrCodeDataNotFound     ErrorCode = 204
	ErrCodeDataSourceFailed ErrorCode = 205
	ErrCodeLengthMismatch   ErrorCode = 206

	// Indicator errors (300-399)
	ErrCodeIndicatorWarmup      ErrorCode = 300
	ErrCodeIndicatorCalculation ErrorCode = 301

	// Signal errors (400-499)
	ErrCodeNoActionableSignal ErrorCode = 400
	ErrCodeUnknownSignalMode  ErrorCode = 401

	// Risk errors (500-599)
	ErrCodeDegenerateRisk    ErrorCode = 500
	ErrCodeInvalidRiskBudget ErrorCode = 501
	ErrCodeInvalidEntryPrice ErrorCode = 502

	// Routing errors (600-699)
	ErrCodeModeNotConfigured    ErrorCode = 600
	ErrCodeOrderSubmitFailed    ErrorCode = 601
	ErrCodeUnknownBrokerStatus  ErrorCode = 602
	ErrCodeBrokerNotInitialized ErrorCode = 603

	// Storage errors (700-799)
	ErrCodeStoreOpenFailed  ErrorCode = 700
	ErrCodeStoreWriteFailed ErrorCode = 701
	ErrCodeStoreQueryFailed ErrorCode = 702
)
