package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const Greeting = "Crowdcube server is running"

func Root() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, Greeting)
	}
}
