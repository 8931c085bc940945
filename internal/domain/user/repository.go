package user

import "context"

// UserRepository defines data access for user accounts. List and search
// methods only return active rows; the soft-delete filter lives here, not
// at call sites.
type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)

	// ListActive returns active users ordered by name ascending.
	ListActive(ctx context.Context) ([]User, error)

	// ListActiveIDs returns the ids of all active users, for notification fan-out.
	ListActiveIDs(ctx context.Context) ([]string, error)

	CountActive(ctx context.Context) (int64, error)

	UpdateProfile(ctx context.Context, u User) error
	UpdateRole(ctx context.Context, id string, role Role) error

	// SoftDelete flags the user as deleted without removing the row.
	SoftDelete(ctx context.Context, id string) error
}
