package common

// AuthorizationHeaderName is the HTTP header that carries the access token
// on protected requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix is the scheme prefix expected in the Authorization header.
// The token is the substring that follows it.
const BearerPrefix = "Bearer "
