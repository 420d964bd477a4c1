package services

import (
	"strings"

	"github.com/yukikurage/todo-simple-api/internal/models"
	"github.com/yukikurage/todo-simple-api/internal/testutil"
	"github.com/yukikurage/todo-simple-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

func (s *serviceSuite) TestUserFindByID_SelfAndAdmin() {
	user, err := s.users.FindByID(s.ctx, s.principal(s.alice), s.alice.ID)
	s.Require().NoError(err)
	s.Equal("alice", user.Username)
	s.Equal(models.Roles{models.RoleUser}, user.Roles)

	user, err = s.users.FindByID(s.ctx, s.principal(s.admin), s.alice.ID)
	s.Require().NoError(err)
	s.Equal(s.alice.ID, user.ID)
}

func (s *serviceSuite) TestUserFindByID_OtherUserDenied() {
	_, err := s.users.FindByID(s.ctx, s.principal(s.bob), s.alice.ID)
	s.ErrorIs(err, ErrAccessDenied)
}

func (s *serviceSuite) TestUserFindByID_AnonymousDenied() {
	_, err := s.users.FindByID(s.ctx, nil, s.alice.ID)
	s.ErrorIs(err, ErrAccessDenied)
}

func (s *serviceSuite) TestUserFindByID_DeniedBeforeExistenceCheck() {
	_, err := s.users.FindByID(s.ctx, s.principal(s.bob), 9999)
	s.ErrorIs(err, ErrAccessDenied)
}

func (s *serviceSuite) TestUserFindByID_MissingForAdmin() {
	_, err := s.users.FindByID(s.ctx, s.principal(s.admin), 9999)
	s.ErrorIs(err, ErrUserNotFound)
	s.Contains(err.Error(), "9999")
}

func (s *serviceSuite) TestUserFindByID_EmptyRolesReadAsUser() {
	s.Require().NoError(s.db.Exec("UPDATE users SET roles = ? WHERE id = ?", "[]", s.bob.ID).Error)

	user, err := s.users.FindByID(s.ctx, s.principal(s.bob), s.bob.ID)
	s.Require().NoError(err)
	s.Equal(models.Roles{models.RoleUser}, user.Roles)
}

func (s *serviceSuite) TestUserFindAll_AdminOnly() {
	users, total, err := s.users.FindAll(s.ctx, s.principal(s.admin), utils.NewPaginationParams(1, 2))
	s.Require().NoError(err)
	s.Equal(int64(3), total)
	s.Len(users, 2)
	s.Equal("alice", users[0].Username)

	_, _, err = s.users.FindAll(s.ctx, s.principal(s.alice), utils.NewPaginationParams(1, 10))
	s.ErrorIs(err, ErrAccessDenied)

	_, _, err = s.users.FindAll(s.ctx, nil, utils.NewPaginationParams(1, 10))
	s.ErrorIs(err, ErrAccessDenied)
}

func (s *serviceSuite) TestUserCreate_ForcesUserRole() {
	user, err := s.users.Create(s.ctx, CreateUserInput{Username: "  carol ", Password: "carol-password"})
	s.Require().NoError(err)
	s.NotZero(user.ID)
	s.Equal("carol", user.Username)
	s.Equal(models.Roles{models.RoleUser}, user.Roles)
	s.NotEqual("carol-password", user.PasswordHash)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("carol-password")))

	var stored models.User
	s.Require().NoError(s.db.First(&stored, user.ID).Error)
	s.False(stored.Roles.Has(models.RoleAdmin))
}

func (s *serviceSuite) TestUserCreate_DuplicateUsername() {
	_, err := s.users.Create(s.ctx, CreateUserInput{Username: "alice", Password: "another-password"})
	s.ErrorIs(err, ErrUsernameTaken)
	s.Equal(int64(3), s.countUsers())
}

func (s *serviceSuite) TestUserCreate_Validation() {
	cases := []struct {
		name  string
		input CreateUserInput
		want  error
	}{
		{"blank username", CreateUserInput{Username: "   ", Password: "long-enough"}, ErrUsernameRequired},
		{"short username", CreateUserInput{Username: "x", Password: "long-enough"}, ErrUsernameLength},
		{"short password", CreateUserInput{Username: "carol", Password: "short"}, ErrPasswordTooShort},
		{"long password", CreateUserInput{Username: "carol", Password: string(make([]byte, 61))}, ErrPasswordTooLong},
		{"password over bcrypt byte limit", CreateUserInput{Username: "carol", Password: strings.Repeat("é", 40)}, ErrPasswordTooManyBytes},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := s.users.Create(s.ctx, tc.input)
			s.ErrorIs(err, tc.want)
			s.ErrorIs(err, ErrInvalidInput)
		})
	}
	s.Equal(int64(3), s.countUsers())
}

func (s *serviceSuite) TestUserUpdate_ChangesPasswordOnly() {
	err := s.users.Update(s.ctx, s.principal(s.alice), s.alice.ID, UpdateUserInput{Password: "brand-new-secret"})
	s.Require().NoError(err)

	var stored models.User
	s.Require().NoError(s.db.First(&stored, s.alice.ID).Error)
	s.Equal("alice", stored.Username)
	s.Equal(models.Roles{models.RoleUser}, stored.Roles)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("brand-new-secret")))
}

func (s *serviceSuite) TestUserUpdate_OtherUserDenied() {
	before := s.alice.PasswordHash

	err := s.users.Update(s.ctx, s.principal(s.bob), s.alice.ID, UpdateUserInput{Password: "hijacked-pass"})
	s.ErrorIs(err, ErrAccessDenied)

	var stored models.User
	s.Require().NoError(s.db.First(&stored, s.alice.ID).Error)
	s.Equal(before, stored.PasswordHash)
}

func (s *serviceSuite) TestUserUpdate_AuthorizesBeforeValidating() {
	err := s.users.Update(s.ctx, nil, s.alice.ID, UpdateUserInput{Password: "short"})
	s.ErrorIs(err, ErrAccessDenied)

	err = s.users.Update(s.ctx, s.principal(s.bob), s.alice.ID, UpdateUserInput{Password: "short"})
	s.ErrorIs(err, ErrAccessDenied)

	err = s.users.Update(s.ctx, s.principal(s.alice), s.alice.ID, UpdateUserInput{Password: "short"})
	s.ErrorIs(err, ErrPasswordTooShort)
}

func (s *serviceSuite) TestUserDelete_WithTasksIsIntegrityViolation() {
	testutil.CreateTask(s.T(), s.db, "buy milk", s.alice.ID)

	err := s.users.Delete(s.ctx, s.principal(s.alice), s.alice.ID)
	s.ErrorIs(err, ErrIntegrityViolation)
	s.Equal(int64(3), s.countUsers())
	s.Equal(int64(1), s.countTasks())
}

func (s *serviceSuite) TestUserDelete_Success() {
	s.Require().NoError(s.users.Delete(s.ctx, s.principal(s.admin), s.bob.ID))

	_, err := s.users.FindByID(s.ctx, s.principal(s.admin), s.bob.ID)
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *serviceSuite) TestUserDelete_Denied() {
	err := s.users.Delete(s.ctx, s.principal(s.bob), s.alice.ID)
	s.ErrorIs(err, ErrAccessDenied)

	err = s.users.Delete(s.ctx, nil, s.alice.ID)
	s.ErrorIs(err, ErrAccessDenied)
	s.Equal(int64(3), s.countUsers())
}

func (s *serviceSuite) TestBootstrapAdmin_CreatesAndIsIdempotent() {
	admin, err := s.users.BootstrapAdmin(s.ctx, "root", "root-password")
	s.Require().NoError(err)
	s.True(admin.Roles.Has(models.RoleAdmin))
	s.True(admin.Roles.Has(models.RoleUser))

	again, err := s.users.BootstrapAdmin(s.ctx, "root", "other-password")
	s.Require().NoError(err)
	s.Equal(admin.ID, again.ID)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(again.PasswordHash), []byte("root-password")))
	s.Equal(int64(4), s.countUsers())
}

func (s *serviceSuite) TestBootstrapAdmin_PromotionResetsPassword() {
	squatter, err := s.users.Create(s.ctx, CreateUserInput{Username: "root", Password: "registrant-pass"})
	s.Require().NoError(err)

	promoted, err := s.users.BootstrapAdmin(s.ctx, "root", "operator-secret")
	s.Require().NoError(err)
	s.Equal(squatter.ID, promoted.ID)

	var stored models.User
	s.Require().NoError(s.db.First(&stored, squatter.ID).Error)
	s.True(stored.Roles.Has(models.RoleAdmin))
	s.True(stored.Roles.Has(models.RoleUser))

	_, _, err = s.auth.Login(s.ctx, LoginInput{Username: "root", Password: "registrant-pass"})
	s.ErrorIs(err, ErrInvalidCredentials)

	_, user, err := s.auth.Login(s.ctx, LoginInput{Username: "root", Password: "operator-secret"})
	s.Require().NoError(err)
	s.True(user.Roles.Has(models.RoleAdmin))
}

func (s *serviceSuite) TestBootstrapAdmin_ExistingAdminKeepsPassword() {
	again, err := s.users.BootstrapAdmin(s.ctx, "admin", "different-password")
	s.Require().NoError(err)
	s.Equal(s.admin.ID, again.ID)

	var stored models.User
	s.Require().NoError(s.db.First(&stored, s.admin.ID).Error)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("admin-password")))
}
