package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lidmar/site-api/internal/core/ports"
)

const maxPageBody = 1 << 20

// PageHandler handles HTTP requests for owned pages.
type PageHandler struct {
	service ports.PageService
}

func NewPageHandler(service ports.PageService) *PageHandler {
	return &PageHandler{service: service}
}

// Get handles GET /v1/pages/:id. Anyone may read a page; can_edit tells the
// caller whether its session owns it.
//
// @Summary      Get a page
// @Tags         pages
// @Produce      json
// @Param        id   path      string  true  "Page id"
// @Success      200  {object}  pageResponse
// @Failure      404  {object}  errorResponse
// @Failure      503  {object}  errorResponse
// @Router       /v1/pages/{id} [get]
func (h *PageHandler) Get(c echo.Context) error {
	view, err := h.service.Get(c.Request().Context(), optionalClaims(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPageViewResponse(view))
}

// ListMine handles GET /v1/me/pages.
//
// @Summary      List my pages
// @Tags         pages
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  pageListResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/me/pages [get]
func (h *PageHandler) ListMine(c echo.Context) error {
	pages, err := h.service.ListMine(c.Request().Context(), optionalClaims(c))
	if err != nil {
		return err
	}

	resp := pageListResponse{Pages: make([]pageResponse, 0, len(pages))}
	for _, p := range pages {
		resp.Pages = append(resp.Pages, toPageResponse(p))
	}
	return c.JSON(http.StatusOK, resp)
}

// Create handles POST /v1/pages. The owner is always the session subject.
//
// @Summary      Create a page
// @Tags         pages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPageRequest  true  "Page"
// @Success      201   {object}  pageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/pages [post]
func (h *PageHandler) Create(c echo.Context) error {
	var req createPageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	page, err := h.service.Create(c.Request().Context(), optionalClaims(c), ports.CreatePageInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toPageResponse(page))
}

// Update handles PUT /v1/pages/:id. Authorization is decided before the body
// is looked at, so a malformed body from a non-owner still yields 403.
//
// @Summary      Update a page
// @Tags         pages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "Page id"
// @Param        body  body      object  true  "Fields to change: title, content"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/pages/{id} [put]
func (h *PageHandler) Update(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxPageBody))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	_, err = h.service.Update(c.Request().Context(), optionalClaims(c), c.Param("id"), decodePageUpdate(body))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// Delete handles DELETE /v1/pages/:id.
//
// @Summary      Delete a page
// @Tags         pages
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Page id"
// @Success      200  {object}  successResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/pages/{id} [delete]
func (h *PageHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), optionalClaims(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}
