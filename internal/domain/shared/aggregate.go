package shared

import "time"

// BaseAggregateRoot adds a version counter to BaseEntity for optimistic
// locking. State transitions call Touch so every mutation is visible as a
// version bump.
type BaseAggregateRoot struct {
	BaseEntity
	Version int `gorm:"not null;default:1"`
}

// Touch stamps the update time and advances the version
func (a *BaseAggregateRoot) Touch() {
	a.UpdatedAt = time.Now()
	a.Version++
}

// NewBaseAggregateRoot creates a versioned aggregate root
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity: NewBaseEntity(),
		Version:    1,
	}
}
