package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"twistlist/internal/authz"
	"twistlist/internal/middleware"
	"twistlist/internal/model"
	"twistlist/internal/repository"
)

type TeamHandler struct {
	teamRepo    repository.TeamRepositoryInterface
	userRepo    repository.UserRepositoryInterface
	requestRepo repository.TeamRequestRepositoryInterface
}

func NewTeamHandler(
	teamRepo repository.TeamRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	requestRepo repository.TeamRequestRepositoryInterface,
) *TeamHandler {
	return &TeamHandler{
		teamRepo:    teamRepo,
		userRepo:    userRepo,
		requestRepo: requestRepo,
	}
}

type CreateTeamRequest struct {
	TeamName             string  `json:"teamName" binding:"required"`
	ProductOwnerUserID   *string `json:"productOwnerUserId"`
	ProjectManagerUserID *string `json:"projectManagerUserId"`
}

type UpdateTeamRequest struct {
	TeamName             string  `json:"teamName"`
	ProductOwnerUserID   *string `json:"productOwnerUserId"`
	ProjectManagerUserID *string `json:"projectManagerUserId"`
}

type AddMemberRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail" binding:"required"`
}

// Create creates a team and puts the creator on its roster
// @Summary Create a new team
// @Tags Teams
// @Router /teams [post]
func (h *TeamHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	team := &model.Team{TeamName: req.TeamName}
	if req.ProductOwnerUserID != nil {
		id, err := uuid.Parse(*req.ProductOwnerUserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product owner ID format"})
			return
		}
		team.ProductOwnerUserID = &id
	}
	if req.ProjectManagerUserID != nil {
		id, err := uuid.Parse(*req.ProjectManagerUserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project manager ID format"})
			return
		}
		team.ProjectManagerUserID = &id
	}

	if err := h.teamRepo.CreateWithCreator(c.Request.Context(), team, user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create team"})
		return
	}

	c.JSON(http.StatusCreated, toTeamResponse(team, nil))
}

// GetAll lists every team with roster and pending join requests. All
// authenticated users see the full picture, requester identity included; the
// join flow in the client depends on it.
// @Summary List all teams
// @Tags Teams
// @Router /teams [get]
func (h *TeamHandler) GetAll(c *gin.Context) {
	if _, ok := middleware.CurrentUser(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	teams, err := h.teamRepo.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve teams"})
		return
	}

	pending, err := h.requestRepo.ListAllPending(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve join requests"})
		return
	}

	byTeam := make(map[uuid.UUID][]model.TeamRequest)
	for _, request := range pending {
		byTeam[request.TeamID] = append(byTeam[request.TeamID], request)
	}

	response := make([]TeamResponse, len(teams))
	for i := range teams {
		response[i] = toTeamResponse(&teams[i], byTeam[teams[i].ID])
	}
	c.JSON(http.StatusOK, response)
}

// GetByID returns one team, members only
// @Summary Get a team
// @Tags Teams
// @Router /teams/{id} [get]
func (h *TeamHandler) GetByID(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team ID format"})
		return
	}

	team, err := h.teamRepo.GetByID(c.Request.Context(), teamID)
	if err != nil {
		if errors.Is(err, repository.ErrTeamNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Team not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve team"})
		return
	}

	if !authz.IsTeamMember(user, team.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this team"})
		return
	}

	pending, err := h.requestRepo.ListPendingByTeam(c.Request.Context(), team.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve join requests"})
		return
	}

	c.JSON(http.StatusOK, toTeamResponse(team, pending))
}

// Update mutates team name or role labels, members only
// @Summary Update a team
// @Tags Teams
// @Router /teams/{id} [patch]
func (h *TeamHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team ID format"})
		return
	}

	team, err := h.teamRepo.GetByID(c.Request.Context(), teamID)
	if err != nil {
		if errors.Is(err, repository.ErrTeamNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Team not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve team"})
		return
	}

	if !authz.IsTeamMember(user, team.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this team"})
		return
	}

	var req UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if req.TeamName != "" {
		team.TeamName = req.TeamName
	}
	if req.ProductOwnerUserID != nil {
		id, err := uuid.Parse(*req.ProductOwnerUserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product owner ID format"})
			return
		}
		team.ProductOwnerUserID = &id
	}
	if req.ProjectManagerUserID != nil {
		id, err := uuid.Parse(*req.ProjectManagerUserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project manager ID format"})
			return
		}
		team.ProjectManagerUserID = &id
	}

	if err := h.teamRepo.Update(c.Request.Context(), team); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update team"})
		return
	}

	c.JSON(http.StatusOK, toTeamResponse(team, nil))
}

// Delete removes a team. Any member may do this; there is no owner role.
// @Summary Delete a team
// @Tags Teams
// @Router /teams/{id} [delete]
func (h *TeamHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team ID format"})
		return
	}

	team, err := h.teamRepo.GetByID(c.Request.Context(), teamID)
	if err != nil {
		if errors.Is(err, repository.ErrTeamNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Team not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve team"})
		return
	}

	if !authz.IsTeamMember(user, team.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this team"})
		return
	}

	if err := h.teamRepo.Delete(c.Request.Context(), team.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete team"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Team deleted successfully"})
}

// AddMember adds a user directly, bypassing the request flow
// @Summary Add a member by username or email
// @Tags Teams
// @Router /teams/{id}/members [post]
func (h *TeamHandler) AddMember(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team ID format"})
		return
	}

	team, err := h.teamRepo.GetByID(c.Request.Context(), teamID)
	if err != nil {
		if errors.Is(err, repository.ErrTeamNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Team not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve team"})
		return
	}

	if !authz.IsTeamMember(user, team.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not a member of this team"})
		return
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	target, err := h.userRepo.FindByEmailOrUsername(c.Request.Context(), req.UsernameOrEmail)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to find user"})
		return
	}
	if target == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if target.TeamID != nil {
		if *target.TeamID == team.ID {
			c.JSON(http.StatusCreated, gin.H{"message": "User is already in this team"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "User is already in another team"})
		return
	}

	if err := h.teamRepo.AssignMember(c.Request.Context(), target.ID, team.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add member"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Member added successfully"})
}

// RequestJoin asks for membership. A rejected request is re-opened in place;
// that is the only retry path after rejection.
// @Summary Request to join a team
// @Tags Teams
// @Router /teams/{id}/join [post]
func (h *TeamHandler) RequestJoin(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team ID format"})
		return
	}

	team, err := h.teamRepo.GetByID(c.Request.Context(), teamID)
	if err != nil {
		if errors.Is(err, repository.ErrTeamNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Team not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve team"})
		return
	}

	if authz.IsTeamMember(user, team.ID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You are already in this team"})
		return
	}

	existing, err := h.requestRepo.GetByTeamAndUser(c.Request.Context(), team.ID, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check join requests"})
		return
	}

	if existing != nil {
		switch existing.Status {
		case model.RequestPending:
			c.JSON(http.StatusBadRequest, gin.H{"error": "You already have a pending request for this team"})
			return
		case model.RequestApproved:
			c.JSON(http.StatusBadRequest, gin.H{"error": "You have already been approved for this team"})
			return
		case model.RequestRejected:
			if err := h.requestRepo.UpdateStatus(c.Request.Context(), existing.ID, model.RequestPending); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send join request"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"message": "Join request sent successfully"})
			return
		}
	}

	request := &model.TeamRequest{
		TeamID: team.ID,
		UserID: user.ID,
		Status: model.RequestPending,
	}
	if err := h.requestRepo.Create(c.Request.Context(), request); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send join request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Join request sent successfully"})
}

// loadPendingRequest runs the shared accept/reject preconditions and writes
// the error response itself when any fail.
func (h *TeamHandler) loadPendingRequest(c *gin.Context) *model.TeamRequest {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return nil
	}

	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team ID format"})
		return nil
	}
	requestID, err := uuid.Parse(c.Param("rid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID format"})
		return nil
	}

	team, err := h.teamRepo.GetByID(c.Request.Context(), teamID)
	if err != nil {
		if errors.Is(err, repository.ErrTeamNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Team not found"})
			return nil
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve team"})
		return nil
	}

	if !authz.IsTeamMember(user, team.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to manage requests for this team"})
		return nil
	}

	request, err := h.requestRepo.GetByID(c.Request.Context(), requestID)
	if err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
			return nil
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve request"})
		return nil
	}

	if request.TeamID != team.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request does not belong to this team"})
		return nil
	}
	if request.Status != model.RequestPending {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request is not pending"})
		return nil
	}

	return request
}

// AcceptRequest grants membership and approves the request atomically
// @Summary Accept a join request
// @Tags Teams
// @Router /teams/{id}/requests/{rid}/accept [post]
func (h *TeamHandler) AcceptRequest(c *gin.Context) {
	request := h.loadPendingRequest(c)
	if request == nil {
		return
	}

	if err := h.requestRepo.Approve(c.Request.Context(), request); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request accepted successfully"})
}

// RejectRequest denies the request without touching membership
// @Summary Reject a join request
// @Tags Teams
// @Router /teams/{id}/requests/{rid}/reject [post]
func (h *TeamHandler) RejectRequest(c *gin.Context) {
	request := h.loadPendingRequest(c)
	if request == nil {
		return
	}

	if err := h.requestRepo.UpdateStatus(c.Request.Context(), request.ID, model.RequestRejected); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reject request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request rejected successfully"})
}

// Leave clears the caller's membership. Outstanding requests are untouched.
// @Summary Leave the current team
// @Tags Teams
// @Router /teams/leave [post]
func (h *TeamHandler) Leave(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	if user.TeamID == nil {
		c.JSON(http.StatusOK, gin.H{"message": "User is not in any team"})
		return
	}

	if err := h.userRepo.ClearTeam(c.Request.Context(), user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to leave team"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Left team successfully"})
}
