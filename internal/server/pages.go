package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	geodomain "github.com/smallbiznis/heritage/internal/geo/domain"
	"github.com/smallbiznis/heritage/pkg/db/pagination"
)

// formErrorResponse re-presents a rejected form with its submitted input.
type formErrorResponse struct {
	Error   errorPayload       `json:"error"`
	Input   any                `json:"input"`
	Choices *geodomain.Choices `json:"choices,omitempty"`
}

// abortForm answers validation failures with the submitted input echoed
// back; other errors go through the error middleware.
func (s *Server) abortForm(c *gin.Context, err error, input any) {
	status, payload := mapError(err)
	if status != http.StatusBadRequest {
		AbortWithError(c, err)
		return
	}
	_ = c.Error(err)

	resp := formErrorResponse{Error: payload, Input: input}
	if choices, cerr := s.geoSvc.FormChoices(c.Request.Context()); cerr == nil {
		resp.Choices = &choices
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, resp)
}

func (s *Server) currentUser(c *gin.Context) gin.H {
	userID, ok := s.userIDFromSession(c)
	if !ok {
		return nil
	}
	user := gin.H{"id": userID.String()}
	if u, err := s.authsvc.GetUser(c.Request.Context(), userID); err == nil && u != nil {
		user["email"] = u.Email
		user["display_name"] = u.DisplayName
		user["role"] = u.Role
	}
	return user
}

func (s *Server) HomePage(c *gin.Context) {
	ctx := c.Request.Context()
	settings := s.catalog.Get()

	stats, err := s.siteSvc.Stats(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	countryAreas, err := s.geoSvc.CountCountryAreas(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":              settings.HomeTitle,
		"site_count":         stats.Sites,
		"country_area_count": countryAreas,
		"sites_by_category":  stats.SitesByCategory,
		"user":               s.currentUser(c),
	})
}

func (s *Server) AboutPage(c *gin.Context) {
	settings := s.catalog.Get()
	c.JSON(http.StatusOK, gin.H{
		"title": "About",
		"text":  settings.AboutText,
		"user":  s.currentUser(c),
	})
}

func (s *Server) CountryAreaListPage(c *gin.Context) {
	var req pagination.Pagination
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.geoSvc.ListCountryAreas(c.Request.Context(), geodomain.ListCountryAreaRequest{
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) CountryAreaDetailPage(c *gin.Context) {
	detail, err := s.geoSvc.GetCountryArea(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"country_area": detail})
}
