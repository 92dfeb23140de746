package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	sitedomain "github.com/smallbiznis/heritage/internal/heritagesite/domain"
)

// ListSites godoc
// @Summary      List heritage sites
// @Description  Filtered, paginated list ordered by site name.
// @Tags         sites
// @Produce      json
// @Param        site_name               query  string  false  "case-insensitive substring"
// @Param        description             query  string  false  "case-insensitive substring"
// @Param        heritage_site_category  query  int     false  "category id"
// @Param        region                  query  int     false  "region id"
// @Param        sub_region              query  int     false  "sub-region id"
// @Param        intermediate_region     query  int     false  "intermediate region id"
// @Param        country_area            query  int     false  "country/area id"
// @Param        date_inscribed          query  int     false  "year"
// @Param        page                    query  int     false  "page number"
// @Param        page_size               query  int     false  "page size"
// @Success      200  {object}  domain.ListSiteResponse
// @Failure      400  {object}  errorResponse
// @Router       /sites/ [get]
func (s *Server) ListSites(c *gin.Context) {
	q, filter, err := bindFilterQuery(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.siteSvc.List(c.Request.Context(), sitedomain.ListSiteRequest{
		Filter:   filter,
		Page:     q.Page,
		PageSize: q.PageSize,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetSite godoc
// @Summary  Retrieve a heritage site
// @Tags     sites
// @Produce  json
// @Param    id   path      int  true  "site id"
// @Success  200  {object}  domain.Site
// @Failure  404  {object}  errorResponse
// @Router   /sites/{id}/ [get]
func (s *Server) GetSite(c *gin.Context) {
	site, err := s.siteSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, site)
}

// CreateSite godoc
// @Summary   Create a heritage site
// @Tags      sites
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Success   201  {object}  domain.Site
// @Failure   400  {object}  errorResponse
// @Failure   401  {object}  errorResponse
// @Router    /sites/ [post]
func (s *Server) CreateSite(c *gin.Context) {
	var req siteForm
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, bindingError(err))
		return
	}

	site, err := s.siteSvc.Create(c.Request.Context(), sitedomain.CreateSiteRequest{SiteInput: req.input()})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, site)
}

// UpdateSite godoc
// @Summary   Replace a heritage site
// @Tags      sites
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id   path      int  true  "site id"
// @Success   200  {object}  domain.Site
// @Failure   400  {object}  errorResponse
// @Failure   409  {object}  errorResponse
// @Router    /sites/{id}/ [put]
func (s *Server) UpdateSite(c *gin.Context) {
	var req siteForm
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, bindingError(err))
		return
	}

	site, err := s.siteSvc.Update(c.Request.Context(), sitedomain.UpdateSiteRequest{
		ID:        c.Param("id"),
		SiteInput: req.input(),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, site)
}

// PatchSite godoc
// @Summary   Partially update a heritage site
// @Tags      sites
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id   path      int  true  "site id"
// @Success   200  {object}  domain.Site
// @Failure   400  {object}  errorResponse
// @Router    /sites/{id}/ [patch]
func (s *Server) PatchSite(c *gin.Context) {
	var req sitePatch
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, bindingError(err))
		return
	}

	site, err := s.siteSvc.Patch(c.Request.Context(), req.request(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, site)
}

// DeleteSite godoc
// @Summary   Delete a heritage site
// @Tags      sites
// @Security  BearerAuth
// @Param     id  path  int  true  "site id"
// @Success   204
// @Failure   404  {object}  errorResponse
// @Router    /sites/{id}/ [delete]
func (s *Server) DeleteSite(c *gin.Context) {
	if err := s.siteSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
