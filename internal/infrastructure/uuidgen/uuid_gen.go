package uuidgen

import (
	"github.com/google/uuid"
	"github.com/mikiasgoitom/Coursely/internal/domain/contract"
)

// Generator issues identity, course and token ids.
type Generator struct{}

func NewGenerator() contract.IUUIDGenerator {
	return &Generator{}
}

// NewUUID returns a random (v4) UUID string.
func (g *Generator) NewUUID() string {
	return uuid.NewString()
}

var _ contract.IUUIDGenerator = (*Generator)(nil)
