package handler

const (
	errInternalServer = "Internal server error"
	errInvalidBody    = "Invalid request body"
	errEmailTaken     = "This email is already in use"
	errBadCredentials = "Invalid email or password"
)
