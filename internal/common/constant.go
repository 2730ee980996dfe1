package common

// AccessTokenHeaderName is the HTTP header used to return the access token
// on a successful signin.
const AccessTokenHeaderName = "access_token"

// AuthorizationHeaderName carries the bearer or basic credential on requests.
const AuthorizationHeaderName = "authorization"
