package port

import "github.com/dangtrinh58/goshop/internal/core/domain"

// TokenIssuer signs and verifies the bearer tokens carried by API clients.
type TokenIssuer interface {
	// Issue returns a signed token embedding the user's id and role.
	Issue(userID int64, role domain.Role) (string, error)

	// Verify parses a token and returns the identity it carries.
	Verify(token string) (int64, domain.Role, error)
}
