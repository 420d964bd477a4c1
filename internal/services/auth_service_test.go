package services

import (
	"time"

	"github.com/yukikurage/todo-simple-api/internal/auth"
	"github.com/yukikurage/todo-simple-api/internal/models"
)

func (s *serviceSuite) TestLogin_Success() {
	token, user, err := s.auth.Login(s.ctx, LoginInput{Username: "alice", Password: "alice-password"})
	s.Require().NoError(err)
	s.Equal(s.alice.ID, user.ID)
	s.NotEmpty(token.Value)
	s.True(token.ExpiresAt.After(time.Now()))

	claims, ok := s.tokens.Validate(token.Value)
	s.Require().True(ok)
	s.Equal("alice", claims.Subject)
}

func (s *serviceSuite) TestLogin_InvalidCredentials() {
	cases := []LoginInput{
		{Username: "alice", Password: "wrong-password"},
		{Username: "nobody", Password: "alice-password"},
		{Username: "", Password: ""},
	}
	for _, input := range cases {
		_, _, err := s.auth.Login(s.ctx, input)
		s.ErrorIs(err, ErrInvalidCredentials)
	}
}

func (s *serviceSuite) TestResolvePrincipal_ValidToken() {
	token, err := s.tokens.Issue("admin")
	s.Require().NoError(err)

	p, ok := s.auth.ResolvePrincipal(s.ctx, token.Value)
	s.Require().True(ok)
	s.Equal(s.admin.ID, p.ID)
	s.Equal("admin", p.Username)
	s.True(p.Roles.Has(models.RoleAdmin))
}

func (s *serviceSuite) TestResolvePrincipal_Anonymous() {
	other, err := auth.NewTokenService("ffffffffffffffffffffffffffffffff", time.Hour)
	s.Require().NoError(err)
	forged, err := other.Issue("alice")
	s.Require().NoError(err)

	ghost, err := s.tokens.Issue("ghost")
	s.Require().NoError(err)

	for name, raw := range map[string]string{
		"empty":        "",
		"garbage":      "not-a-token",
		"other secret": forged.Value,
		"unknown user": ghost.Value,
	} {
		p, ok := s.auth.ResolvePrincipal(s.ctx, raw)
		s.False(ok, name)
		s.Equal(auth.Principal{}, p, name)
	}
}

func (s *serviceSuite) TestResolvePrincipal_DeletedUser() {
	token, err := s.tokens.Issue("bob")
	s.Require().NoError(err)
	s.Require().NoError(s.users.Delete(s.ctx, s.principal(s.bob), s.bob.ID))

	_, ok := s.auth.ResolvePrincipal(s.ctx, token.Value)
	s.False(ok)
}
