package meadowlark

// A Key stashes request-scoped values in a context.Context.
type Key string

const (
	// CurrentUserKey stashes the authenticated User for a request.
	CurrentUserKey Key = "CurrentUserKey"

	// IpAddrKey stashes the IP address of an HTTP request.
	IpAddrKey Key = "IpAddrKey"

	// LocalsKey stashes the response-local values the view layer reads.
	LocalsKey Key = "LocalsKey"

	// RequestIDKey stashes a unique UUID for each HTTP request.
	RequestIDKey Key = "RequestIDKey"

	// SessionKey stashes the session associated with an HTTP request.
	SessionKey Key = "SessionKey"
)

// String names the key for logs and error messages.
func (k Key) String() string {
	return "meadowlark context key: " + string(k)
}
