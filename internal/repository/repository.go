package repository

import (
	"github.com/triviapro/user-service/pkg/database"
)

// Repositories holds all repository interfaces
type Repositories struct {
	User UserRepository
}

// NewRepositories creates all repositories
func NewRepositories(db *database.Mongo) *Repositories {
	return &Repositories{
		User: NewUserRepository(db),
	}
}
