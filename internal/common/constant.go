package common

// AccessTokenHeaderName is the gRPC/HTTP metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// RequestIDHeaderName is the gRPC metadata key / HTTP header carrying the
// per-request correlation ID.
const RequestIDHeaderName = "x-request-id"
