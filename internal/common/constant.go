package common

// SessionCookieName is the cookie that carries the session token.
const SessionCookieName = "token"

// BearerPrefix prefixes the token in the Authorization header.
const BearerPrefix = "Bearer "

// DevelopmentEnv is the environment name in which cookies are not flagged Secure.
const DevelopmentEnv = "development"
