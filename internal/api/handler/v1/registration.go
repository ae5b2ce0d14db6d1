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

type RegistrationService interface {
	ListUserRegistrations(ctx context.Context, userID uint) ([]domain.RegistrationWithCamp, error)
	CancelRegistration(ctx context.Context, registrationID, userID uint) (domain.CampRegistration, error)
	UpdateRegistrationStatus(ctx context.Context, registrationID, callerID uint, status domain.RegistrationStatus) (domain.CampRegistration, error)
}

type RegistrationHandler struct {
	svc RegistrationService
}

func NewRegistrationHandler(svc RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{
		svc: svc,
	}
}

// HandleListMyRegistrations godoc
// @Summary      List the caller's registrations across camps
// @Tags         registrations
// @Produce      json
// @Success      200  {array}   domain.RegistrationWithCamp
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /registrations/mine [get]
// @Security     BearerAuth
func (h *RegistrationHandler) HandleListMyRegistrations(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	registrations, err := h.svc.ListUserRegistrations(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListMyRegistrations -> h.svc.ListUserRegistrations -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, registrations)
}

// HandleCancelRegistration godoc
// @Summary      Cancel one of the caller's registrations
// @Tags         registrations
// @Produce      json
// @Param        registrationID   path      int  true  "registration ID"
// @Success      200              {object}  domain.CampRegistration
// @Failure      403              {object}  response.Err
// @Failure      404              {object}  response.Err
// @Failure      409              {object}  response.Err
// @Failure      500              {object}  response.Err
// @Router       /registrations/{registrationID}/cancel [post]
// @Security     BearerAuth
func (h *RegistrationHandler) HandleCancelRegistration(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	registrationID, ok := parseIDParam(ctx, "registrationID")
	if !ok {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid registration ID")))
		return
	}

	registration, err := h.svc.CancelRegistration(ctx.Request.Context(), registrationID, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationNotFound):
			response.RenderErr(ctx, response.ErrNotFound("registration", "ID", registrationID))
		case errors.Is(err, service.ErrNotRegistrationOwner):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotRegistrationOwner))
		case errors.Is(err, service.ErrRegistrationClosed):
			response.RenderErr(ctx, response.ErrConflict(service.ErrRegistrationClosed))
		default:
			err = fmt.Errorf("v1.HandleCancelRegistration -> h.svc.CancelRegistration -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, registration)
}

// HandleUpdateRegistrationStatus godoc
// @Summary      Change a registration's status
// @Description  Camp organizer only. Check-in and check-out times are stamped on transition.
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Param        registrationID   path      int                                      true  "registration ID"
// @Param        request          body      request.UpdateRegistrationStatusRequest  true  "request body"
// @Success      200              {object}  domain.CampRegistration
// @Failure      400              {object}  response.Err
// @Failure      403              {object}  response.Err
// @Failure      404              {object}  response.Err
// @Failure      500              {object}  response.Err
// @Router       /registrations/{registrationID}/status [patch]
// @Security     BearerAuth
func (h *RegistrationHandler) HandleUpdateRegistrationStatus(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	registrationID, ok := parseIDParam(ctx, "registrationID")
	if !ok {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid registration ID")))
		return
	}

	var req request.UpdateRegistrationStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	registration, err := h.svc.UpdateRegistrationStatus(ctx.Request.Context(), registrationID, userID, domain.RegistrationStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationNotFound):
			response.RenderErr(ctx, response.ErrNotFound("registration", "ID", registrationID))
		case errors.Is(err, service.ErrNotCampOrganizer):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotCampOrganizer))
		case errors.Is(err, service.ErrInvalidRegistrationStatus):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidRegistrationStatus))
		default:
			err = fmt.Errorf("v1.HandleUpdateRegistrationStatus -> h.svc.UpdateRegistrationStatus -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, registration)
}
