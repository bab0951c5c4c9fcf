package http

import (
	"github.com/gin-gonic/gin"
	"github.com/iyhunko/product-catalog/internal/config"
	"github.com/iyhunko/product-catalog/internal/http/controller"
	"github.com/iyhunko/product-catalog/internal/http/middleware"
)

// ProductsPath is the base path of the product resource.
const ProductsPath = "/api/products"

// InitRouter registers middleware and routes on server. ctr may be nil when
// no health endpoint is wanted.
func InitRouter(conf *config.Config, server *gin.Engine, ctr *controller.Controller, productCtr *controller.ProductController) *gin.Engine {
	server.Use(middleware.RequestID(), middleware.Logger(), middleware.Recovery(), middleware.CORS())

	if ctr != nil {
		server.GET("/ping", ctr.Ping)
	}

	products := server.Group(ProductsPath)
	{
		products.POST("", productCtr.CreateProduct)
		products.GET("", productCtr.ListProducts)
		products.PUT("/:id", productCtr.UpdateProduct)
		products.DELETE("/:id", productCtr.DeleteProduct)
	}

	if conf != nil && conf.IsProduction() {
		server.NoRoute(Frontend(conf.StaticDir))
	} else {
		server.NoRoute(notFound)
	}

	return server
}
