package cmd

// Exit codes for the wave CLI
const (
	// ExitSuccess indicates the exchange completed, whatever the HTTP status
	ExitSuccess = 0

	// ExitFailure is used for errors that fit no other category
	ExitFailure = 1

	// ExitRequestError indicates a bad token, collection, placeholder or body
	ExitRequestError = 2

	// ExitConfigError indicates a configuration error
	ExitConfigError = 3

	// ExitNetworkError indicates a network/connection error
	ExitNetworkError = 4

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)
