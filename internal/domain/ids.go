package domain

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseID parses a store identifier from its 24 character hex form.
func ParseID(raw string) (primitive.ObjectID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return primitive.NilObjectID, ErrInvalidIdentifier
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil || id.IsZero() {
		return primitive.NilObjectID, ErrInvalidIdentifier
	}
	return id, nil
}
