package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidType          ErrorCode = 102
	ErrCodeInvalidPeriod        ErrorCode = 103
	ErrCodeMissingParameter     ErrorCode = 104
	ErrCodeParameterOutOfRange  ErrorCode = 105
	ErrCodeInvalidOption        ErrorCode = 106
	ErrCodeInvalidThreshold     ErrorCode = 107
	ErrCodeInvalidRiskParams    ErrorCode = 108

	// Series precondition errors (200-299)
	ErrCodeEmptySeries        ErrorCode = 200
	ErrCodeNonMonotonicSeries ErrorCode = 201
	ErrCodeDuplicateTimestamp ErrorCode = 202
	ErrCodeInvalidBar         ErrorCode = 203
	ErrCodeSeriesMismatch     ErrorCode = 204

	// Indicator errors (300-399)
	ErrCodeModuleNotFound      ErrorCode = 300
	ErrCodeModuleAlreadyExists ErrorCode = 301
	ErrCodeModuleCalculation   ErrorCode = 302

	// Condition/strategy build errors (400-499)
	ErrCodeColumnNotFound     ErrorCode = 400
	ErrCodeAmbiguousColumn    ErrorCode = 401
	ErrCodeOperatorMismatch   ErrorCode = 402
	ErrCodeNoConditions       ErrorCode = 403
	ErrCodeUnknownOperator    ErrorCode = 404
	ErrCodeUnknownLabel       ErrorCode = 405
	ErrCodeInvalidStrategy    ErrorCode = 406
	ErrCodeRiskColumnNotFound ErrorCode = 407
	ErrCodeRiskColumnMismatch ErrorCode = 408

	// Simulation errors (500-599)
	ErrCodeSimulationFailed ErrorCode = 500

	// Backtest engine errors (600-699)
	ErrCodeEngineNotInitialized ErrorCode = 600
	ErrCodeEngineConfigError    ErrorCode = 601
	ErrCodeTooManyCandles       ErrorCode = 602
	ErrCodeTooManyConditions    ErrorCode = 603
	ErrCodePeriodTooLarge       ErrorCode = 604
	ErrCodeRunCancelled         ErrorCode = 605

	// Datasource errors (700-799)
	ErrCodeDataSourceUnavailable ErrorCode = 700
	ErrCodeQueryFailed           ErrorCode = 701
	ErrCodeNoDataFound           ErrorCode = 702
)
