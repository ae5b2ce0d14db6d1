package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reddrop/reddrop-api/internal/api/handler/v1/request"
	"github.com/reddrop/reddrop-api/internal/api/handler/v1/response"
	"github.com/reddrop/reddrop-api/internal/domain"
	"github.com/reddrop/reddrop-api/internal/service"
)

type UserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
	GetDonorProfile(ctx context.Context, userID uint) (domain.DonorProfile, error)
	CreateDonorProfile(ctx context.Context, profile domain.DonorProfile) (domain.DonorProfile, error)
	UpdateDonorProfile(ctx context.Context, userID uint, profile domain.DonorProfile) (domain.DonorProfile, error)
}

type UserHandler struct {
	svc UserService
}

func NewUserHandler(svc UserService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

// HandleGetUser godoc
// @Summary      Get a user by ID
// @Tags         users
// @Produce      json
// @Param        userID   path      int  true  "user ID"
// @Success      200      {object}  domain.User
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /users/{userID} [get]
// @Security     BearerAuth
func (h *UserHandler) HandleGetUser(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "userID")
	if !ok {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid user ID")))
		return
	}

	user, err := h.svc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", userID))
			return
		}

		err = fmt.Errorf("v1.HandleGetUser -> h.svc.GetUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// HandleGetMyDonorProfile godoc
// @Summary      Get the caller's donor profile
// @Tags         donors
// @Produce      json
// @Success      200  {object}  domain.DonorProfile
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /donors/me [get]
// @Security     BearerAuth
func (h *UserHandler) HandleGetMyDonorProfile(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	profile, err := h.svc.GetDonorProfile(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrDonorProfileNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("donor profile", "userID", userID))
			return
		}

		err = fmt.Errorf("v1.HandleGetMyDonorProfile -> h.svc.GetDonorProfile -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

// HandleCreateDonorProfile godoc
// @Summary      Create the caller's donor profile
// @Tags         donors
// @Accept       json
// @Produce      json
// @Param        request  body      request.DonorProfileRequest true "request body"
// @Success      201      {object}  domain.DonorProfile
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /donors/me [post]
// @Security     BearerAuth
func (h *UserHandler) HandleCreateDonorProfile(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.DonorProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	profile, err := h.svc.CreateDonorProfile(ctx.Request.Context(), domain.DonorProfile{
		UserID:      userID,
		BloodType:   req.BloodType,
		Phone:       req.Phone,
		DateOfBirth: req.DateOfBirth,
		City:        req.City,
		State:       req.State,
	})
	if err != nil {
		if errors.Is(err, service.ErrDonorProfileExists) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrDonorProfileExists))
			return
		}

		err = fmt.Errorf("v1.HandleCreateDonorProfile -> h.svc.CreateDonorProfile -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, profile)
}

// HandleUpdateDonorProfile godoc
// @Summary      Update the caller's donor profile
// @Tags         donors
// @Accept       json
// @Produce      json
// @Param        request  body      request.DonorProfileRequest true "request body"
// @Success      200      {object}  domain.DonorProfile
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /donors/me [put]
// @Security     BearerAuth
func (h *UserHandler) HandleUpdateDonorProfile(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.DonorProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	profile, err := h.svc.UpdateDonorProfile(ctx.Request.Context(), userID, domain.DonorProfile{
		BloodType:   req.BloodType,
		Phone:       req.Phone,
		DateOfBirth: req.DateOfBirth,
		City:        req.City,
		State:       req.State,
	})
	if err != nil {
		if errors.Is(err, service.ErrDonorProfileNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("donor profile", "userID", userID))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateDonorProfile -> h.svc.UpdateDonorProfile -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, profile)
}
