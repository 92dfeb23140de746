package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/heritage/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const swaggerDocPath = "/api/docs/"

func (s *Server) registerDocsRoutes() {
	api := s.engine.Group("/api")

	api.GET("/docs/", SwaggerDocument)
	api.GET("/swagger-docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL(swaggerDocPath)))
}

// SwaggerDocument serves the generated OpenAPI document.
func SwaggerDocument(c *gin.Context) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(docs.SwaggerInfo.ReadDoc()))
}
