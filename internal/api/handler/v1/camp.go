package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/reddrop/reddrop-api/internal/api/handler/v1/request"
	"github.com/reddrop/reddrop-api/internal/api/handler/v1/response"
	"github.com/reddrop/reddrop-api/internal/domain"
	"github.com/reddrop/reddrop-api/internal/service"
)

const (
	dateQueryLayout = "2006-01-02"

	defaultNearbyRadiusKm = 50
)

type CampService interface {
	CreateCamp(ctx context.Context, camp domain.DonationCamp, organizerID uint) (domain.DonationCamp, error)
	GetCamp(ctx context.Context, id uint) (domain.DonationCamp, error)
	ListUserCamps(ctx context.Context, organizerID uint) ([]domain.DonationCamp, error)
	ListPublicCamps(ctx context.Context, filters domain.CampFilters) ([]domain.DonationCamp, error)
	UpdateCamp(ctx context.Context, campID, callerID uint, update domain.CampUpdate) (domain.DonationCamp, error)
	UpdateCampStatus(ctx context.Context, campID, callerID uint, status domain.CampStatus) error
	DeleteCamp(ctx context.Context, campID, callerID uint) error
	RegisterForCamp(ctx context.Context, campID, userID uint, notes string) (domain.CampRegistration, error)
	ListCampRegistrations(ctx context.Context, campID, callerID uint) ([]domain.RegistrationWithDonor, error)
	FindNearbyCamps(ctx context.Context, lat, lng, radiusKm float64) ([]domain.NearbyCamp, error)
	GetCampStatistics(ctx context.Context, campID, callerID uint) (domain.CampStatistics, error)
}

type CampHandler struct {
	svc CampService
}

func NewCampHandler(svc CampService) *CampHandler {
	return &CampHandler{
		svc: svc,
	}
}

// HandleListCamps godoc
// @Summary      List public camps
// @Description  Filters compose conjunctively; city/state/search are case-insensitive partial matches.
// @Tags         camps
// @Produce      json
// @Param        status      query     string  false  "camp status"
// @Param        city        query     string  false  "city contains"
// @Param        state       query     string  false  "state contains"
// @Param        start_date  query     string  false  "camps starting on or after (YYYY-MM-DD)"
// @Param        end_date    query     string  false  "camps ending on or before (YYYY-MM-DD)"
// @Param        search      query     string  false  "matches name or description"
// @Success      200  {array}   domain.DonationCamp
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /camps [get]
func (h *CampHandler) HandleListCamps(ctx *gin.Context) {
	filters, err := parseCampFilters(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	camps, err := h.svc.ListPublicCamps(ctx.Request.Context(), filters)
	if err != nil {
		err = fmt.Errorf("v1.HandleListCamps -> h.svc.ListPublicCamps -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, camps)
}

// HandleGetCamp godoc
// @Summary      Get a camp by ID
// @Tags         camps
// @Produce      json
// @Param        campID   path      int  true  "camp ID"
// @Success      200      {object}  domain.DonationCamp
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /camps/{campID} [get]
func (h *CampHandler) HandleGetCamp(ctx *gin.Context) {
	campID, ok := parseIDParam(ctx, "campID")
	if !ok {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid camp ID")))
		return
	}

	camp, err := h.svc.GetCamp(ctx.Request.Context(), campID)
	if err != nil {
		if errors.Is(err, service.ErrCampNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("camp", "ID", campID))
			return
		}

		err = fmt.Errorf("v1.HandleGetCamp -> h.svc.GetCamp -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, camp)
}

// HandleFindNearbyCamps godoc
// @Summary      Find camps near a coordinate
// @Tags         camps
// @Produce      json
// @Param        lat        query     number  true   "latitude"
// @Param        lng        query     number  true   "longitude"
// @Param        radius_km  query     number  false  "radius in km (default 50)"
// @Success      200  {array}   domain.NearbyCamp
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /camps/nearby [get]
func (h *CampHandler) HandleFindNearbyCamps(ctx *gin.Context) {
	lat, err := strconv.ParseFloat(ctx.Query("lat"), 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid lat")))
		return
	}

	lng, err := strconv.ParseFloat(ctx.Query("lng"), 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid lng")))
		return
	}

	radiusKm := float64(defaultNearbyRadiusKm)
	if raw := ctx.Query("radius_km"); raw != "" {
		radiusKm, err = strconv.ParseFloat(raw, 64)
		if err != nil || radiusKm <= 0 {
			response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid radius_km")))
			return
		}
	}

	camps, err := h.svc.FindNearbyCamps(ctx.Request.Context(), lat, lng, radiusKm)
	if err != nil {
		err = fmt.Errorf("v1.HandleFindNearbyCamps -> h.svc.FindNearbyCamps -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, camps)
}

// HandleCreateCamp godoc
// @Summary      Create a camp
// @Description  The authenticated caller becomes the camp's organizer.
// @Tags         camps
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateCampRequest true "request body"
// @Success      201      {object}  domain.DonationCamp
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /camps [post]
// @Security     BearerAuth
func (h *CampHandler) HandleCreateCamp(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateCampRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	camp, err := h.svc.CreateCamp(ctx.Request.Context(), req.ToDomain(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateCamp -> h.svc.CreateCamp -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, camp)
}

// HandleListMyCamps godoc
// @Summary      List the caller's own camps
// @Tags         camps
// @Produce      json
// @Success      200  {array}   domain.DonationCamp
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /camps/mine [get]
// @Security     BearerAuth
func (h *CampHandler) HandleListMyCamps(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	camps, err := h.svc.ListUserCamps(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListMyCamps -> h.svc.ListUserCamps -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, camps)
}

// HandleUpdateCamp godoc
// @Summary      Update a camp
// @Description  Organizer only. Fields absent from the body stay unchanged.
// @Tags         camps
// @Accept       json
// @Produce      json
// @Param        campID   path      int                        true  "camp ID"
// @Param        request  body      request.UpdateCampRequest  true  "request body"
// @Success      200      {object}  domain.DonationCamp
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /camps/{campID} [put]
// @Security     BearerAuth
func (h *CampHandler) HandleUpdateCamp(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	campID, ok := parseIDParam(ctx, "campID")
	if !ok {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid camp ID")))
		return
	}

	var req request.UpdateCampRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	camp, err := h.svc.UpdateCamp(ctx.Request.Context(), campID, userID, req.ToDomain())
	if err != nil {
		if errors.Is(err, service.ErrInvalidDateRange) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidDateRange))
			return
		}

		h.renderCampErr(ctx, campID, fmt.Errorf("v1.HandleUpdateCamp -> h.svc.UpdateCamp -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, camp)
}

// HandleUpdateCampStatus godoc
// @Summary      Change a camp's status
// @Description  Organizer only. Status never auto-transitions from dates.
// @Tags         camps
// @Accept       json
// @Produce      json
// @Param        campID   path      int                              true  "camp ID"
// @Param        request  body      request.UpdateCampStatusRequest  true  "request body"
// @Success      204      "no content"
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /camps/{campID}/status [patch]
// @Security     BearerAuth
func (h *CampHandler) HandleUpdateCampStatus(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	campID, ok := parseIDParam(ctx, "campID")
	if !ok {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid camp ID")))
		return
	}

	var req request.UpdateCampStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	err := h.svc.UpdateCampStatus(ctx.Request.Context(), campID, userID, domain.CampStatus(req.Status))
	if err != nil {
		if errors.Is(err, service.ErrInvalidCampStatus) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidCampStatus))
			return
		}

		h.renderCampErr(ctx, campID, fmt.Errorf("v1.HandleUpdateCampStatus -> h.svc.UpdateCampStatus -> %w", err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleDeleteCamp godoc
// @Summary      Delete a camp
// @Tags         camps
// @Produce      json
// @Param        campID   path      int  true  "camp ID"
// @Success      204      "no content"
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /camps/{campID} [delete]
// @Security     BearerAuth
func (h *CampHandler) HandleDeleteCamp(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	campID, ok := parseIDParam(ctx, "campID")
	if !ok {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid camp ID")))
		return
	}

	if err := h.svc.DeleteCamp(ctx.Request.Context(), campID, userID); err != nil {
		h.renderCampErr(ctx, campID, fmt.Errorf("v1.HandleDeleteCamp -> h.svc.DeleteCamp -> %w", err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleRegisterForCamp godoc
// @Summary      Register the caller's donor profile for a camp
// @Tags         camps
// @Accept       json
// @Produce      json
// @Param        campID   path      int                             true  "camp ID"
// @Param        request  body      request.RegisterForCampRequest  false "request body"
// @Success      201      {object}  domain.CampRegistration
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /camps/{campID}/register [post]
// @Security     BearerAuth
func (h *CampHandler) HandleRegisterForCamp(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	campID, ok := parseIDParam(ctx, "campID")
	if !ok {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid camp ID")))
		return
	}

	req := request.RegisterForCampRequest{}
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		if err := req.Validate(); err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}
	}

	registration, err := h.svc.RegisterForCamp(ctx.Request.Context(), campID, userID, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCampNotFound):
			response.RenderErr(ctx, response.ErrNotFound("camp", "ID", campID))
		case errors.Is(err, service.ErrMissingDonorProfile):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrMissingDonorProfile))
		case errors.Is(err, service.ErrAlreadyRegistered):
			response.RenderErr(ctx, response.ErrConflict(service.ErrAlreadyRegistered))
		case errors.Is(err, service.ErrRegistrationClosed):
			response.RenderErr(ctx, response.ErrConflict(service.ErrRegistrationClosed))
		default:
			err = fmt.Errorf("v1.HandleRegisterForCamp -> h.svc.RegisterForCamp -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, registration)
}

// HandleListCampRegistrations godoc
// @Summary      List a camp's registrations
// @Description  Organizer only; rows carry donor identity and contact fields.
// @Tags         camps
// @Produce      json
// @Param        campID   path      int  true  "camp ID"
// @Success      200      {array}   domain.RegistrationWithDonor
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /camps/{campID}/registrations [get]
// @Security     BearerAuth
func (h *CampHandler) HandleListCampRegistrations(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	campID, ok := parseIDParam(ctx, "campID")
	if !ok {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid camp ID")))
		return
	}

	registrations, err := h.svc.ListCampRegistrations(ctx.Request.Context(), campID, userID)
	if err != nil {
		h.renderCampErr(ctx, campID, fmt.Errorf("v1.HandleListCampRegistrations -> h.svc.ListCampRegistrations -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, registrations)
}

// HandleGetCampStatistics godoc
// @Summary      Get a camp's registration statistics
// @Tags         camps
// @Produce      json
// @Param        campID   path      int  true  "camp ID"
// @Success      200      {object}  domain.CampStatistics
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /camps/{campID}/statistics [get]
// @Security     BearerAuth
func (h *CampHandler) HandleGetCampStatistics(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	campID, ok := parseIDParam(ctx, "campID")
	if !ok {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid camp ID")))
		return
	}

	stats, err := h.svc.GetCampStatistics(ctx.Request.Context(), campID, userID)
	if err != nil {
		h.renderCampErr(ctx, campID, fmt.Errorf("v1.HandleGetCampStatistics -> h.svc.GetCampStatistics -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// renderCampErr maps the shared camp error cases; err must already be
// wrapped with the handler's context.
func (h *CampHandler) renderCampErr(ctx *gin.Context, campID uint, err error) {
	switch {
	case errors.Is(err, service.ErrCampNotFound):
		response.RenderErr(ctx, response.ErrNotFound("camp", "ID", campID))
	case errors.Is(err, service.ErrNotCampOrganizer):
		response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotCampOrganizer))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}

func parseCampFilters(ctx *gin.Context) (domain.CampFilters, error) {
	filters := domain.CampFilters{
		City:       ctx.Query("city"),
		State:      ctx.Query("state"),
		SearchTerm: ctx.Query("search"),
	}

	if status := ctx.Query("status"); status != "" {
		campStatus := domain.CampStatus(status)
		if !campStatus.IsValid() {
			return domain.CampFilters{}, fmt.Errorf("invalid status %q", status)
		}
		filters.Status = campStatus
	}

	if raw := ctx.Query("start_date"); raw != "" {
		startDate, err := time.Parse(dateQueryLayout, raw)
		if err != nil {
			return domain.CampFilters{}, fmt.Errorf("invalid start_date: %v", err)
		}
		filters.StartDate = &startDate
	}

	if raw := ctx.Query("end_date"); raw != "" {
		endDate, err := time.Parse(dateQueryLayout, raw)
		if err != nil {
			return domain.CampFilters{}, fmt.Errorf("invalid end_date: %v", err)
		}
		filters.EndDate = &endDate
	}

	return filters, nil
}
