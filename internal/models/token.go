package models

import (
	"time"
)

type IssuedToken struct {
	Value     string
	ExpiresAt time.Time
}

// Token pair issued on login: short lived access and long lived refresh
type TokenPair struct {
	Access  IssuedToken
	Refresh IssuedToken
}
