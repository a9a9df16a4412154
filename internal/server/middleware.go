package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RequestTimeMiddleware logs how long each request took.
func RequestTimeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		reqTime := time.Since(start)
		logrus.Infof("request time: %v %v: %v", c.Request.Method, c.Request.URL.Path, reqTime)
	}
}
