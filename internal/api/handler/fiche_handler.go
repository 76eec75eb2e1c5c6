package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fichedesk/dashboard/internal/api/metrics"
	"github.com/fichedesk/dashboard/internal/core/domain"
	"github.com/fichedesk/dashboard/internal/core/ports"
)

type FicheHandler struct {
	ficheService ports.FicheService
}

func NewFicheHandler(ficheService ports.FicheService) *FicheHandler {
	return &FicheHandler{ficheService: ficheService}
}

// List returns one page of the fiches visible to the caller.
//
// @Summary      List fiches
// @Tags         fiches
// @Produce      json
// @Param        page     query     int     false  "1-based page"
// @Param        limit    query     int     false  "page size"
// @Param        status   query     string  false  "exact status"
// @Param        product  query     string  false  "exact product"
// @Param        search   query     string  false  "client name substring"
// @Success      200      {object}  listFichesResponse
// @Failure      400      {object}  map[string]string
// @Failure      401      {object}  map[string]string
// @Router       /fiches [get]
func (h *FicheHandler) List(c echo.Context) error {
	user, err := sessionUser(c)
	if err != nil {
		return err
	}

	var q listFichesQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters").SetInternal(err)
	}

	result, err := h.ficheService.List(c.Request().Context(), user, ports.ListFichesInput{
		Status:  q.Status,
		Product: q.Product,
		Search:  q.Search,
		Page:    q.Page,
		Limit:   q.Limit,
	})
	if err != nil {
		return err
	}

	items := make([]ficheListItemResponse, len(result.Items))
	for i, it := range result.Items {
		items[i] = ficheListItemResponse{
			ficheResponse: toFicheResponse(it.Fiche),
			AdvisorName:   it.AdvisorName,
		}
	}

	return c.JSON(http.StatusOK, listFichesResponse{
		Data: items,
		Meta: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// Get returns a single fiche.
//
// @Summary      Get fiche
// @Tags         fiches
// @Produce      json
// @Param        id   path      string  true  "Fiche ID"
// @Success      200  {object}  ficheResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /fiches/{id} [get]
func (h *FicheHandler) Get(c echo.Context) error {
	user, err := sessionUser(c)
	if err != nil {
		return err
	}

	fiche, err := h.ficheService.Get(c.Request().Context(), user, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toFicheResponse(*fiche))
}

// Patch updates the status and/or advisor of a fiche.
// Sending "advisorId": null unassigns; omitting it leaves the advisor as is.
//
// @Summary      Update fiche
// @Tags         fiches
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Fiche ID"
// @Param        body  body      patchFicheRequest  true  "Fields to change"
// @Success      200   {object}  ficheResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /fiches/{id} [patch]
func (h *FicheHandler) Patch(c echo.Context) error {
	user, err := sessionUser(c)
	if err != nil {
		return err
	}

	var req patchFicheRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload").SetInternal(err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	fiche, err := h.ficheService.Patch(c.Request().Context(), user, c.Param("id"), ports.PatchFicheInput{
		Status:    domain.FicheStatus(req.Status),
		AdvisorID: ports.OptionalAdvisor{Set: req.AdvisorID.Set, Value: req.AdvisorID.Value},
	})
	if err != nil {
		return err
	}

	role := string(user.Role)
	if req.Status != "" {
		metrics.FicheMutationsTotal.WithLabelValues("status", role).Inc()
	}
	if req.AdvisorID.Set {
		metrics.FicheMutationsTotal.WithLabelValues("reassign", role).Inc()
	}
	return c.JSON(http.StatusOK, toFicheResponse(*fiche))
}

// Delete removes a fiche. Admin only.
//
// @Summary      Delete fiche
// @Tags         fiches
// @Produce      json
// @Param        id   path      string  true  "Fiche ID"
// @Success      200  {object}  successResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /fiches/{id} [delete]
func (h *FicheHandler) Delete(c echo.Context) error {
	user, err := sessionUser(c)
	if err != nil {
		return err
	}

	if err := h.ficheService.Delete(c.Request().Context(), user, c.Param("id")); err != nil {
		return err
	}

	metrics.FicheMutationsTotal.WithLabelValues("delete", string(user.Role)).Inc()
	return c.JSON(http.StatusOK, successResponse{Success: true})
}
