package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fichedesk/dashboard/internal/core/domain"
	"github.com/fichedesk/dashboard/internal/core/ports"
)

type AnalyticsHandler struct {
	analyticsService ports.AnalyticsService
}

func NewAnalyticsHandler(analyticsService ports.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

type monthlyResponse struct {
	Month  string `json:"month"`
	Label  string `json:"mois"`
	Fiches int    `json:"fiches"`
}

type advisorCountResponse struct {
	ID    string `json:"id"`
	Name  string `json:"nom"`
	Count int    `json:"count"`
}

type analyticsResponse struct {
	TotalFiches      int                        `json:"totalFiches"`
	ActiveFiches     int                        `json:"activeFiches"`
	StatusCounts     map[domain.FicheStatus]int `json:"statusCounts"`
	ProductCounts    map[domain.Product]int     `json:"productCounts"`
	TotalPrimes      float64                    `json:"totalPrimes"`
	MonthlyData      []monthlyResponse          `json:"monthlyData"`
	ConseillerCounts []advisorCountResponse     `json:"conseillerCounts"`
	RecentFiches     []ports.RecentFiche        `json:"recentFiches"`
}

// Summary returns the dashboard aggregate over the fiches visible to the caller.
//
// @Summary      Dashboard analytics
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  analyticsResponse
// @Failure      401  {object}  map[string]string
// @Router       /analytics [get]
func (h *AnalyticsHandler) Summary(c echo.Context) error {
	user, err := sessionUser(c)
	if err != nil {
		return err
	}

	sum, err := h.analyticsService.Summary(c.Request().Context(), user)
	if err != nil {
		return err
	}

	monthly := make([]monthlyResponse, len(sum.Monthly))
	for i, m := range sum.Monthly {
		monthly[i] = monthlyResponse{Month: m.Month, Label: monthLabel(m.Month), Fiches: m.Count}
	}
	advisors := make([]advisorCountResponse, len(sum.Advisors))
	for i, a := range sum.Advisors {
		advisors[i] = advisorCountResponse{ID: a.AdvisorID, Name: firstName(a.Name), Count: a.Count}
	}

	return c.JSON(http.StatusOK, analyticsResponse{
		TotalFiches:      sum.TotalFiches,
		ActiveFiches:     sum.ActiveFiches,
		StatusCounts:     sum.StatusCounts,
		ProductCounts:    sum.ProductCounts,
		TotalPrimes:      sum.TotalPrimes,
		MonthlyData:      monthly,
		ConseillerCounts: advisors,
		RecentFiches:     sum.Recent,
	})
}
