package auth

import "errors"

var (
	UserNotFoundErr           = errors.New("user not found")
	UserInactiveErr           = errors.New("user inactive")
	UserPasswordsDontMatchErr = errors.New("user passwords not matched")
	EmailTakenErr             = errors.New("email already registered")
	InvalidAccessTokenErr     = errors.New("invalid access token")
)
