package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	sitedomain "github.com/smallbiznis/heritage/internal/heritagesite/domain"
	"github.com/smallbiznis/heritage/pkg/db/pagination"
)

const (
	siteListPath = "/sites/"
	sitePDFType  = "application/pdf"
)

func siteDetailPath(id int) string {
	return "/sites/" + strconv.Itoa(id) + "/"
}

func (s *Server) SiteListPage(c *gin.Context) {
	var req pagination.Pagination
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.siteSvc.List(c.Request.Context(), sitedomain.ListSiteRequest{
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) SiteDetailPage(c *gin.Context) {
	site, err := s.siteSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"site": site,
		"user": s.currentUser(c),
	})
}

func (s *Server) SiteFilterPage(c *gin.Context) {
	q, filter, err := bindFilterQuery(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	choices, err := s.geoSvc.FilterChoices(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	resp, err := s.siteSvc.List(ctx, sitedomain.ListSiteRequest{
		Filter:   filter,
		Page:     q.Page,
		PageSize: q.PageSize,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"filter":  q,
		"choices": choices,
		"results": resp,
	})
}

func (s *Server) SiteCreateForm(c *gin.Context) {
	choices, err := s.geoSvc.FormChoices(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"input":   siteForm{},
		"choices": choices,
	})
}

func (s *Server) SiteCreatePage(c *gin.Context) {
	var form siteForm
	if err := c.ShouldBind(&form); err != nil {
		s.abortForm(c, bindingError(err), form)
		return
	}

	site, err := s.siteSvc.Create(c.Request.Context(), sitedomain.CreateSiteRequest{SiteInput: form.input()})
	if err != nil {
		s.abortForm(c, err, form)
		return
	}

	c.Redirect(http.StatusSeeOther, siteDetailPath(site.HeritageSiteID))
}

func (s *Server) SiteUpdateForm(c *gin.Context) {
	ctx := c.Request.Context()
	site, err := s.siteSvc.Get(ctx, c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	choices, err := s.geoSvc.FormChoices(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"site":    site,
		"input":   siteFormFrom(site),
		"choices": choices,
	})
}

func (s *Server) SiteUpdatePage(c *gin.Context) {
	var form siteForm
	if err := c.ShouldBind(&form); err != nil {
		s.abortForm(c, bindingError(err), form)
		return
	}

	site, err := s.siteSvc.Update(c.Request.Context(), sitedomain.UpdateSiteRequest{
		ID:        c.Param("id"),
		SiteInput: form.input(),
	})
	if err != nil {
		s.abortForm(c, err, form)
		return
	}

	c.Redirect(http.StatusSeeOther, siteDetailPath(site.HeritageSiteID))
}

func (s *Server) SiteDeletePage(c *gin.Context) {
	if err := s.siteSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, siteListPath)
}

func (s *Server) SiteFactSheet(c *gin.Context) {
	ctx := c.Request.Context()
	site, err := s.siteSvc.Get(ctx, c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	doc, err := s.pdf.GenerateFactSheet(ctx, site)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if doc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	filename := site.Slug
	if filename == "" {
		filename = "site-" + strconv.Itoa(site.HeritageSiteID)
	}
	c.DataFromReader(http.StatusOK, -1, sitePDFType, doc, map[string]string{
		"Content-Disposition": fmt.Sprintf(`inline; filename="%s.pdf"`, filename),
	})
}
