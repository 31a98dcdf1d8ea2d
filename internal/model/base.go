package model

import (
	"time"

	"github.com/google/uuid"
)

func GenerateUUID() string {
	return uuid.New().String()
}

// Now is the clock used for record timestamps.
var Now = func() time.Time {
	return time.Now().UTC()
}
