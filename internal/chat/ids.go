package chat

import "github.com/google/uuid"

func newId() string {
	return uuid.New().String()
}
