package handler_test

import (
	"context"

	"twistlist/internal/middleware"
	"twistlist/internal/model"
	"twistlist/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmailOrUsername(ctx context.Context, emailOrUsername string) (*model.User, error) {
	args := m.Called(ctx, emailOrUsername)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) Search(ctx context.Context, query string, limit int) ([]model.User, error) {
	args := m.Called(ctx, query, limit)
	users := args.Get(0)
	if users == nil {
		return nil, args.Error(1)
	}
	return users.([]model.User), args.Error(1)
}

func (m *MockUserRepository) ClearTeam(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockTeamRepository struct {
	mock.Mock
}

func (m *MockTeamRepository) CreateWithCreator(ctx context.Context, team *model.Team, creatorID uuid.UUID) error {
	args := m.Called(ctx, team, creatorID)
	return args.Error(0)
}

func (m *MockTeamRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Team, error) {
	args := m.Called(ctx, id)
	team := args.Get(0)
	if team == nil {
		return nil, args.Error(1)
	}
	return team.(*model.Team), args.Error(1)
}

func (m *MockTeamRepository) GetAll(ctx context.Context) ([]model.Team, error) {
	args := m.Called(ctx)
	teams := args.Get(0)
	if teams == nil {
		return nil, args.Error(1)
	}
	return teams.([]model.Team), args.Error(1)
}

func (m *MockTeamRepository) Update(ctx context.Context, team *model.Team) error {
	args := m.Called(ctx, team)
	return args.Error(0)
}

func (m *MockTeamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTeamRepository) AssignMember(ctx context.Context, userID, teamID uuid.UUID) error {
	args := m.Called(ctx, userID, teamID)
	return args.Error(0)
}

type MockTeamRequestRepository struct {
	mock.Mock
}

func (m *MockTeamRequestRepository) Create(ctx context.Context, request *model.TeamRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockTeamRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.TeamRequest, error) {
	args := m.Called(ctx, id)
	request := args.Get(0)
	if request == nil {
		return nil, args.Error(1)
	}
	return request.(*model.TeamRequest), args.Error(1)
}

func (m *MockTeamRequestRepository) GetByTeamAndUser(ctx context.Context, teamID, userID uuid.UUID) (*model.TeamRequest, error) {
	args := m.Called(ctx, teamID, userID)
	request := args.Get(0)
	if request == nil {
		return nil, args.Error(1)
	}
	return request.(*model.TeamRequest), args.Error(1)
}

func (m *MockTeamRequestRepository) ListPendingByTeam(ctx context.Context, teamID uuid.UUID) ([]model.TeamRequest, error) {
	args := m.Called(ctx, teamID)
	requests := args.Get(0)
	if requests == nil {
		return nil, args.Error(1)
	}
	return requests.([]model.TeamRequest), args.Error(1)
}

func (m *MockTeamRequestRepository) ListAllPending(ctx context.Context) ([]model.TeamRequest, error) {
	args := m.Called(ctx)
	requests := args.Get(0)
	if requests == nil {
		return nil, args.Error(1)
	}
	return requests.([]model.TeamRequest), args.Error(1)
}

func (m *MockTeamRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockTeamRequestRepository) Approve(ctx context.Context, request *model.TeamRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) CreateWithTeam(ctx context.Context, project *model.Project, teamID uuid.UUID) error {
	args := m.Called(ctx, project, teamID)
	return args.Error(0)
}

func (m *MockProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	args := m.Called(ctx, id)
	project := args.Get(0)
	if project == nil {
		return nil, args.Error(1)
	}
	return project.(*model.Project), args.Error(1)
}

func (m *MockProjectRepository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]model.Project, error) {
	args := m.Called(ctx, teamID)
	projects := args.Get(0)
	if projects == nil {
		return nil, args.Error(1)
	}
	return projects.([]model.Project), args.Error(1)
}

func (m *MockProjectRepository) IsLinkedToTeam(ctx context.Context, projectID, teamID uuid.UUID) (bool, error) {
	args := m.Called(ctx, projectID, teamID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProjectRepository) Update(ctx context.Context, project *model.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, id)
	task := args.Get(0)
	if task == nil {
		return nil, args.Error(1)
	}
	return task.(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) ListForUser(ctx context.Context, userID uuid.UUID, projectID *uuid.UUID) ([]model.Task, error) {
	args := m.Called(ctx, userID, projectID)
	tasks := args.Get(0)
	if tasks == nil {
		return nil, args.Error(1)
	}
	return tasks.([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaskRepository) UpdatePositions(ctx context.Context, userID uuid.UUID, updates []repository.PositionUpdate) error {
	args := m.Called(ctx, userID, updates)
	return args.Error(0)
}

var (
	_ repository.UserRepositoryInterface        = (*MockUserRepository)(nil)
	_ repository.TeamRepositoryInterface        = (*MockTeamRepository)(nil)
	_ repository.TeamRequestRepositoryInterface = (*MockTeamRequestRepository)(nil)
	_ repository.ProjectRepositoryInterface     = (*MockProjectRepository)(nil)
	_ repository.TaskRepositoryInterface        = (*MockTaskRepository)(nil)
)

// asUser installs the caller into the request context in place of the JWT
// middleware.
func asUser(user *model.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, user.ID)
		c.Set(middleware.CurrentUserKey, user)
		c.Next()
	}
}
