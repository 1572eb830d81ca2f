// Package apperrors provides chainable application errors that carry an HTTP status code
// and a machine-readable kind. Errors derived from one another keep the chain intact, so
// errors.Is matches any ancestor as well as any attached cause.
package apperrors

// Error extends the standard error interface with chaining, status codes and kinds.
// Every method returns a new Error; the receiver is never mutated.
type Error interface {
	error
	Unwrap() error // support for errors.Is / errors.As

	New(msg string) Error                  // new error using current as template
	Msg(msg string) Error                  // new message, wraps the current error
	MsgErr(msg string, err ...error) Error // new message, wraps current and extra errors
	Err(err ...error) Error                // attaches causes, keeps the message
	SetExpandError(bool) Error             // include causes in ErrorAll
	SetStatusCode(int) Error
	StatusCode() int
	SetKind(string) Error
	Kind() string
	ErrorAll() string // message including causes when expansion is enabled
}
