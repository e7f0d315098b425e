package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"kitchensaver/internal/auth"
	"kitchensaver/internal/errors"
	"kitchensaver/internal/repository"
	"kitchensaver/internal/service"
)

// JobError is the error body returned by job endpoints.
type JobError struct {
	Message string `json:"message"`
}

// JobImageRequest represents an image attachment request.
type JobImageRequest struct {
	ImageURL string `json:"imageUrl" validate:"required"`
}

// JobHandler handles job CRUD, status, image and filter endpoints.
type JobHandler struct {
	svc service.JobService
}

// NewJobHandler creates a new job handler.
func NewJobHandler(svc service.JobService) *JobHandler {
	return &JobHandler{svc: svc}
}

func jobID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("jobId"), 10, 64)
	return uint(id), err
}

// Create godoc
// @Summary Create a job (admin only)
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.JobInput true "Job fields"
// @Success 200 {object} service.JobView
// @Failure 400 {object} JobError
// @Router /jobs [post]
func (h *JobHandler) Create(c echo.Context) error {
	var in service.JobInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, JobError{Message: "invalid request body"})
	}

	view, err := h.svc.Create(c.Request().Context(), &in)
	if err != nil {
		return c.JSON(http.StatusBadRequest, JobError{Message: err.Error()})
	}
	return c.JSON(http.StatusOK, view)
}

// Update godoc
// @Summary Replace all mutable fields of a job (admin only)
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param jobId path int true "Job ID"
// @Param request body service.JobInput true "Job fields"
// @Success 200 {object} service.JobView
// @Failure 404 {object} nil
// @Router /jobs/{jobId} [put]
func (h *JobHandler) Update(c echo.Context) error {
	id, err := jobID(c)
	if err != nil {
		return c.NoContent(http.StatusNotFound)
	}

	var in service.JobInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, JobError{Message: "invalid request body"})
	}

	view, err := h.svc.Update(c.Request().Context(), id, &in)
	if err != nil {
		return c.NoContent(http.StatusNotFound)
	}
	return c.JSON(http.StatusOK, view)
}

// Delete godoc
// @Summary Delete a job (admin only)
// @Tags jobs
// @Security BearerAuth
// @Param jobId path int true "Job ID"
// @Success 204
// @Failure 404 {object} nil
// @Router /jobs/{jobId} [delete]
func (h *JobHandler) Delete(c echo.Context) error {
	id, err := jobID(c)
	if err != nil {
		return c.NoContent(http.StatusNotFound)
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return c.NoContent(http.StatusNotFound)
	}
	return c.NoContent(http.StatusNoContent)
}

// List godoc
// @Summary List jobs visible to the caller
// @Description Admins see all jobs; cabinet makers and installers only their own.
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.JobView
// @Failure 400 {object} nil
// @Router /jobs [get]
func (h *JobHandler) List(c echo.Context) error {
	claims, ok := auth.FromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, auth.GateResponse{Status: http.StatusUnauthorized, Message: "Invalid token"})
	}

	views, err := h.svc.ListVisible(c.Request().Context(), claims.Role, claims.UserID)
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}
	return c.JSON(http.StatusOK, views)
}

// UpdateStatus godoc
// @Summary Update job status and material statuses
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param jobId path int true "Job ID"
// @Param status query string true "Job status"
// @Param materialOrderStatus query string true "Material order status"
// @Param materialArrivalStatus query string true "Material arrival status"
// @Success 200 {object} service.JobView
// @Failure 400 {object} JobError
// @Failure 404 {object} JobError
// @Router /jobs/{jobId}/status [patch]
func (h *JobHandler) UpdateStatus(c echo.Context) error {
	id, err := jobID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, JobError{Message: "Invalid job id"})
	}

	view, err := h.svc.UpdateStatus(
		c.Request().Context(),
		id,
		c.QueryParam("status"),
		c.QueryParam("materialOrderStatus"),
		c.QueryParam("materialArrivalStatus"),
	)
	if err != nil {
		return c.JSON(errors.StatusFor(err), JobError{Message: err.Error()})
	}
	return c.JSON(http.StatusOK, view)
}

// UploadImage godoc
// @Summary Attach an image reference to a job
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param jobId path int true "Job ID"
// @Param request body JobImageRequest true "Image reference"
// @Success 200 {object} service.JobView
// @Failure 400 {object} JobError
// @Failure 404 {object} JobError
// @Router /jobs/{jobId}/uploadImage [post]
func (h *JobHandler) UploadImage(c echo.Context) error {
	id, err := jobID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, JobError{Message: "Invalid job id"})
	}

	var req JobImageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, JobError{Message: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, JobError{Message: err.Error()})
	}

	view, err := h.svc.UpdateImage(c.Request().Context(), id, req.ImageURL)
	if err != nil {
		return c.JSON(errors.StatusFor(err), JobError{Message: err.Error()})
	}
	return c.JSON(http.StatusOK, view)
}

// Filter godoc
// @Summary Filter jobs by up to five optional predicates
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param status query string false "Job status"
// @Param installerId query int false "Installer ID"
// @Param materialOrderStatus query string false "Material order status"
// @Param materialArrivalStatus query string false "Material arrival status"
// @Param office query string false "Office"
// @Success 200 {array} service.JobView
// @Router /jobs/filter [get]
func (h *JobHandler) Filter(c echo.Context) error {
	params := c.QueryParams()
	var f repository.JobFilter

	if params.Has("status") {
		v := params.Get("status")
		f.Status = &v
	}
	if params.Has("installerId") {
		id, err := strconv.ParseUint(params.Get("installerId"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, JobError{Message: "Invalid installer id"})
		}
		uid := uint(id)
		f.InstallerID = &uid
	}
	if params.Has("materialOrderStatus") {
		v := params.Get("materialOrderStatus")
		f.MaterialOrderStatus = &v
	}
	if params.Has("materialArrivalStatus") {
		v := params.Get("materialArrivalStatus")
		f.MaterialArrivalStatus = &v
	}
	if params.Has("office") {
		v := params.Get("office")
		f.Office = &v
	}

	views, err := h.svc.Filter(c.Request().Context(), f)
	if err != nil {
		return c.JSON(http.StatusBadRequest, JobError{Message: err.Error()})
	}
	return c.JSON(http.StatusOK, views)
}
