package models

import "time"

// Model defines the base interface for all persistent models in the library.
type Model interface {
	ID() int64            // ID returns the store-assigned identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Get(id int64) (T, error) // Get retrieves a model by its ID
	Delete(id int64) error   // Delete removes a model from the database by its ID
	List() ([]T, error)      // List retrieves all models
}
