package cmd

import (
	"errors"
	"os"

	"github.com/abdul-hamid-achik/wave/packages/core/builder"
	"github.com/abdul-hamid-achik/wave/packages/core/collection"
	"github.com/abdul-hamid-achik/wave/packages/core/config"
	"github.com/abdul-hamid-achik/wave/packages/core/env"
	"github.com/abdul-hamid-achik/wave/packages/core/params"
	"github.com/abdul-hamid-achik/wave/packages/http"
	"github.com/abdul-hamid-achik/wave/packages/output"
)

// usageError marks bad command-line usage: unknown commands, missing
// arguments and flag errors.
type usageError struct {
	err error
}

func (e *usageError) Error() string {
	return e.err.Error()
}

func (e *usageError) Unwrap() error {
	return e.err
}

// errValidationFailed is returned by validate after it has printed the
// individual problems.
var errValidationFailed = errors.New("validation failed")

func exitCodeFor(err error) int {
	var (
		usageErr     *usageError
		configErr    *config.LoadError
		transportErr *http.TransportError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &usageErr):
		return ExitUsageError
	case errors.As(err, &configErr):
		return ExitConfigError
	case errors.As(err, &transportErr):
		return ExitNetworkError
	case isRequestError(err):
		return ExitRequestError
	default:
		return ExitFailure
	}
}

func isRequestError(err error) bool {
	var (
		tokenErr     *params.MalformedTokenError
		varErr       *env.UnresolvedVariableError
		envErr       *env.UnresolvedEnvVarError
		syntaxErr    *env.SyntaxError
		notFoundErr  *collection.NotFoundError
		dirErr       *collection.DirectoryNotFoundError
		invalidErr   *collection.InvalidError
		duplicateErr *collection.DuplicateRequestNameError
		requestErr   *collection.RequestNotFoundError
		encodingErr  *builder.EncodingError
		methodErr    *http.UnsupportedMethodError
		urlErr       *http.InvalidURLError
	)
	return errors.Is(err, builder.ErrMissingMethodOrURL) ||
		errors.Is(err, errValidationFailed) ||
		errors.As(err, &tokenErr) ||
		errors.As(err, &varErr) ||
		errors.As(err, &envErr) ||
		errors.As(err, &syntaxErr) ||
		errors.As(err, &notFoundErr) ||
		errors.As(err, &dirErr) ||
		errors.As(err, &invalidErr) ||
		errors.As(err, &duplicateErr) ||
		errors.As(err, &requestErr) ||
		errors.As(err, &encodingErr) ||
		errors.As(err, &methodErr) ||
		errors.As(err, &urlErr)
}

// suggestionFor returns a hint for errors the user can usually fix in one
// step, or "".
func suggestionFor(err error) string {
	var (
		tokenErr    *params.MalformedTokenError
		notFoundErr *collection.NotFoundError
		dirErr      *collection.DirectoryNotFoundError
		requestErr  *collection.RequestNotFoundError
		envErr      *env.UnresolvedEnvVarError
		methodErr   *http.UnsupportedMethodError
		urlErr      *http.InvalidURLError
	)
	switch {
	case errors.As(err, &tokenErr):
		return "Headers look like Authorization:Bearer123, body fields like name=john age=30"
	case errors.As(err, &notFoundErr):
		return "Make sure the file exists in the " + notFoundErr.Dir + " directory"
	case errors.As(err, &dirErr):
		return "Run 'wave init' to create " + dirErr.Dir + " with an example collection"
	case errors.As(err, &requestErr):
		return "Run 'wave list " + requestErr.Collection + "' to see the available requests"
	case errors.As(err, &envErr):
		return "Export " + envErr.Name + " or pass --env-file"
	case errors.As(err, &methodErr):
		return "Supported methods: GET, POST, PUT, PATCH, DELETE, HEAD, OPTIONS"
	case errors.As(err, &urlErr), errors.Is(err, builder.ErrMissingMethodOrURL):
		return "Example: wave get https://api.example.com/users"
	default:
		return ""
	}
}

func newErrorFormatter() *output.ConsoleFormatter {
	return output.NewConsoleFormatter(
		output.WithWriter(os.Stderr),
		output.WithNoColor(noColorFlag),
	)
}
