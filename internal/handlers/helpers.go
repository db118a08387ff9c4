package handlers

import "github.com/google/uuid"

func parseUUID(value string) (uuid.UUID, error) {
	return uuid.Parse(value)
}
