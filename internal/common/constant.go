package common

// AuthorizationHeader is the HTTP header used to carry the bearer credential
// on outbound requests.
const AuthorizationHeader = "Authorization"

// RequestIDHeader carries a per-request identifier for server-side tracing.
const RequestIDHeader = "X-Request-Id"
