package ids

import "go.mongodb.org/mongo-driver/bson/primitive"

// Generator produces store identifiers and can be mocked for testing
type Generator interface {
	// NewID returns a fresh identifier in canonical 24-hex-character form
	NewID() string
}

// ObjectIDGenerator issues MongoDB ObjectIDs. They embed a timestamp and a
// process counter, so IDs from one process sort in creation order.
type ObjectIDGenerator struct{}

// New creates a new ObjectIDGenerator
func New() *ObjectIDGenerator {
	return &ObjectIDGenerator{}
}

// NewID returns a new ObjectID as a hex string
func (g *ObjectIDGenerator) NewID() string {
	return primitive.NewObjectID().Hex()
}
