package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lidmar/site-api/internal/core/domain"
	"github.com/lidmar/site-api/internal/core/ports"
)

// ContentHandler serves and edits the public site content.
type ContentHandler struct {
	service ports.ContentService
}

func NewContentHandler(service ports.ContentService) *ContentHandler {
	return &ContentHandler{service: service}
}

// Get handles GET /v1/content. With checkTimestamp=true only the last
// modification time is returned.
//
// @Summary      Get site content
// @Tags         content
// @Produce      json
// @Param        checkTimestamp  query     bool  false  "Return only updated_at"
// @Success      200             {object}  contentResponse
// @Failure      503             {object}  errorResponse
// @Router       /v1/content [get]
func (h *ContentHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	if c.QueryParam("checkTimestamp") == "true" {
		stamp, err := h.service.Stamp(ctx)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, stamp)
	}

	content, err := h.service.Get(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toContentResponse(content))
}

// Replace handles PUT /v1/content.
//
// @Summary      Replace site content
// @Tags         content
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.SiteContent  true  "Complete content document"
// @Success      200   {object}  contentResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/content [put]
func (h *ContentHandler) Replace(c echo.Context) error {
	var req domain.SiteContent
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	content, err := h.service.Replace(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toContentResponse(content))
}

// PatchField handles PATCH /v1/content.
//
// @Summary      Change one content field
// @Tags         content
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      patchFieldRequest  true  "Field path and new value"
// @Success      200   {object}  contentResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/content [patch]
func (h *ContentHandler) PatchField(c echo.Context) error {
	var req patchFieldRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	content, err := h.service.SetField(c.Request().Context(), req.Field, req.Value)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toContentResponse(content))
}

// Fields handles GET /v1/content/fields.
//
// @Summary      List editable content fields
// @Tags         content
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  fieldsResponse
// @Router       /v1/content/fields [get]
func (h *ContentHandler) Fields(c echo.Context) error {
	return c.JSON(http.StatusOK, fieldsResponse{Fields: h.service.Fields()})
}
