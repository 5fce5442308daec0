package common

// AuthorizationHeaderName is the HTTP header used to carry the bearer
// access token on inbound requests.
const AuthorizationHeaderName = "Authorization"

// BearerSchema is the expected prefix of the Authorization header value.
const BearerSchema = "Bearer"
