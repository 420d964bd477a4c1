package auth

import "github.com/yukikurage/todo-simple-api/internal/models"

// Principal is the authenticated identity of the current request.
type Principal struct {
	ID       uint64
	Username string
	Roles    models.Roles
}

// PrincipalFromUser derives the request identity from a stored user.
func PrincipalFromUser(u *models.User) Principal {
	return Principal{
		ID:       u.ID,
		Username: u.Username,
		Roles:    u.Roles.OrDefault(),
	}
}
