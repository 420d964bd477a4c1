package services

import (
	"context"
	"errors"
	"strings"

	"github.com/yukikurage/todo-simple-api/internal/models"
	"github.com/yukikurage/todo-simple-api/internal/testutil"
	"github.com/yukikurage/todo-simple-api/internal/utils"
)

type stubSuggester struct {
	suggestions []string
	err         error
	calls       int
}

func (s *stubSuggester) SuggestTasks(_ context.Context, _ string) ([]string, error) {
	s.calls++
	return s.suggestions, s.err
}

func (s *serviceSuite) TestTaskScenario_AliceBobAdmin() {
	alice, bob, admin := s.principal(s.alice), s.principal(s.bob), s.principal(s.admin)

	task, err := s.tasks.Create(s.ctx, alice, CreateTaskInput{Description: "buy milk"})
	s.Require().NoError(err)
	s.Equal(s.alice.ID, task.UserID)

	_, err = s.tasks.FindByID(s.ctx, bob, task.ID)
	s.ErrorIs(err, ErrAccessDenied)

	got, err := s.tasks.FindByID(s.ctx, admin, task.ID)
	s.Require().NoError(err)
	s.Equal("buy milk", got.Description)
	s.Equal("alice", got.User.Username)

	s.ErrorIs(s.users.Delete(s.ctx, alice, s.alice.ID), ErrIntegrityViolation)

	s.Require().NoError(s.tasks.Delete(s.ctx, alice, task.ID))
	s.Require().NoError(s.users.Delete(s.ctx, alice, s.alice.ID))
}

func (s *serviceSuite) TestTaskFindByID_MissingVersusAnonymous() {
	_, err := s.tasks.FindByID(s.ctx, s.principal(s.alice), 4242)
	s.ErrorIs(err, ErrTaskNotFound)
	s.Contains(err.Error(), "4242")

	_, err = s.tasks.FindByID(s.ctx, nil, 4242)
	s.ErrorIs(err, ErrAccessDenied)
}

func (s *serviceSuite) TestTaskCreate_Anonymous() {
	_, err := s.tasks.Create(s.ctx, nil, CreateTaskInput{Description: "sneaky"})
	s.ErrorIs(err, ErrAccessDenied)
	s.Zero(s.countTasks())
}

func (s *serviceSuite) TestTaskCreate_ForAnotherUser() {
	bobID := s.bob.ID

	_, err := s.tasks.Create(s.ctx, s.principal(s.alice), CreateTaskInput{Description: "not yours", UserID: &bobID})
	s.ErrorIs(err, ErrAccessDenied)
	s.Zero(s.countTasks())

	task, err := s.tasks.Create(s.ctx, s.principal(s.admin), CreateTaskInput{Description: "for bob", UserID: &bobID})
	s.Require().NoError(err)
	s.Equal(bobID, task.UserID)
	s.Equal("bob", task.User.Username)
}

func (s *serviceSuite) TestTaskCreate_UnknownOwner() {
	missing := uint64(9999)

	_, err := s.tasks.Create(s.ctx, s.principal(s.admin), CreateTaskInput{Description: "orphan", UserID: &missing})
	s.ErrorIs(err, ErrUserNotFound)
	s.Zero(s.countTasks())
}

func (s *serviceSuite) TestTaskCreate_Validation() {
	_, err := s.tasks.Create(s.ctx, s.principal(s.alice), CreateTaskInput{Description: "  "})
	s.ErrorIs(err, ErrDescriptionRequired)

	_, err = s.tasks.Create(s.ctx, s.principal(s.alice), CreateTaskInput{Description: strings.Repeat("a", 256)})
	s.ErrorIs(err, ErrDescriptionTooLong)
	s.Zero(s.countTasks())
}

func (s *serviceSuite) TestTaskFindAllForPrincipal() {
	testutil.CreateTask(s.T(), s.db, "alice one", s.alice.ID)
	testutil.CreateTask(s.T(), s.db, "bob one", s.bob.ID)
	testutil.CreateTask(s.T(), s.db, "alice two", s.alice.ID)

	tasks, total, err := s.tasks.FindAllForPrincipal(s.ctx, s.principal(s.alice), utils.NewPaginationParams(1, 50))
	s.Require().NoError(err)
	s.Equal(int64(2), total)
	s.Require().Len(tasks, 2)
	s.Equal("alice one", tasks[0].Description)
	s.Equal("alice two", tasks[1].Description)
	s.Equal("alice", tasks[0].User.Username)

	_, _, err = s.tasks.FindAllForPrincipal(s.ctx, nil, utils.NewPaginationParams(1, 50))
	s.ErrorIs(err, ErrAccessDenied)
}

func (s *serviceSuite) TestTaskFindAllForUser() {
	testutil.CreateTask(s.T(), s.db, "bob one", s.bob.ID)

	tasks, total, err := s.tasks.FindAllForUser(s.ctx, s.principal(s.admin), s.bob.ID, utils.NewPaginationParams(1, 50))
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Len(tasks, 1)

	_, _, err = s.tasks.FindAllForUser(s.ctx, s.principal(s.alice), s.bob.ID, utils.NewPaginationParams(1, 50))
	s.ErrorIs(err, ErrAccessDenied)

	_, _, err = s.tasks.FindAllForUser(s.ctx, s.principal(s.admin), 9999, utils.NewPaginationParams(1, 50))
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *serviceSuite) TestTaskUpdate_DescriptionOnly() {
	task := testutil.CreateTask(s.T(), s.db, "old", s.alice.ID)

	s.Require().NoError(s.tasks.Update(s.ctx, s.principal(s.alice), task.ID, UpdateTaskInput{Description: "new"}))

	var stored models.Task
	s.Require().NoError(s.db.First(&stored, task.ID).Error)
	s.Equal("new", stored.Description)
	s.Equal(s.alice.ID, stored.UserID)
}

func (s *serviceSuite) TestTaskUpdate_Denied() {
	task := testutil.CreateTask(s.T(), s.db, "old", s.alice.ID)

	err := s.tasks.Update(s.ctx, s.principal(s.bob), task.ID, UpdateTaskInput{Description: "mine now"})
	s.ErrorIs(err, ErrAccessDenied)

	var stored models.Task
	s.Require().NoError(s.db.First(&stored, task.ID).Error)
	s.Equal("old", stored.Description)
}

func (s *serviceSuite) TestTaskUpdate_Missing() {
	err := s.tasks.Update(s.ctx, s.principal(s.admin), 4242, UpdateTaskInput{Description: "new"})
	s.ErrorIs(err, ErrTaskNotFound)
}

func (s *serviceSuite) TestTaskDelete() {
	task := testutil.CreateTask(s.T(), s.db, "doomed", s.alice.ID)

	s.ErrorIs(s.tasks.Delete(s.ctx, s.principal(s.bob), task.ID), ErrAccessDenied)
	s.Equal(int64(1), s.countTasks())

	s.Require().NoError(s.tasks.Delete(s.ctx, s.principal(s.admin), task.ID))
	s.Zero(s.countTasks())

	s.ErrorIs(s.tasks.Delete(s.ctx, s.principal(s.admin), task.ID), ErrTaskNotFound)
}

func (s *serviceSuite) TestSuggestTasks_NotConfigured() {
	_, err := s.tasks.SuggestTasks(s.ctx, s.principal(s.alice), "call mom tomorrow")
	s.ErrorIs(err, ErrAssistantUnavailable)
}

func (s *serviceSuite) TestSuggestTasks_FiltersOutput() {
	stub := &stubSuggester{suggestions: []string{" call mom ", "", strings.Repeat("x", 300), "pay rent"}}
	tasks := NewTaskService(s.store, s.store, s.users, stub)

	got, err := tasks.SuggestTasks(s.ctx, s.principal(s.alice), "call mom and pay rent")
	s.Require().NoError(err)
	s.Equal([]string{"call mom", "pay rent"}, got)
	s.Zero(s.countTasks())
}

func (s *serviceSuite) TestSuggestTasks_RejectsBeforeCallingAssistant() {
	stub := &stubSuggester{}
	tasks := NewTaskService(s.store, s.store, s.users, stub)

	_, err := tasks.SuggestTasks(s.ctx, nil, "text")
	s.ErrorIs(err, ErrAccessDenied)

	_, err = tasks.SuggestTasks(s.ctx, s.principal(s.alice), "   ")
	s.ErrorIs(err, ErrSuggestionTextRequired)

	s.Zero(stub.calls)
}

func (s *serviceSuite) TestSuggestTasks_AssistantError() {
	boom := errors.New("upstream down")
	tasks := NewTaskService(s.store, s.store, s.users, &stubSuggester{err: boom})

	_, err := tasks.SuggestTasks(s.ctx, s.principal(s.alice), "text")
	s.ErrorIs(err, boom)
}
