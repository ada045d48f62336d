package router

import "github.com/gin-gonic/gin"

// Module is one feature area of the API (auth, properties, favorites, ...)
// that knows how to mount its own routes.
type Module interface {
	Register(rg *gin.RouterGroup)
}
