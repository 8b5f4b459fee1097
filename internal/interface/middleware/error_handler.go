package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/streamvault/streamvault/pkg/apperror"
	"github.com/streamvault/streamvault/pkg/response"
)

// ErrorHandler is the single error boundary. Handlers attach errors with
// c.Error and return; this middleware converts the first one into the
// response envelope. Unrecognized errors become a generic 500 and the
// detail stays in the server log only.
func ErrorHandler(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors[0].Err
		ae := apperror.From(err)
		if ae.Code >= 500 && logger != nil {
			logger.WithError(err).
				WithField("request_id", c.GetString("request_id")).
				WithField("path", c.Request.URL.Path).
				Error("request failed")
		}
		resp := response.Error(c, ae.Code, ae.Message, ae.Errs)
		c.AbortWithStatusJSON(ae.Code, resp)
	}
}

// Recovery converts panics into the same 500 envelope the error boundary
// produces, so clients never see a bare stack or empty body.
func Recovery(logger *logrus.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		if logger != nil {
			logger.WithField("panic", recovered).
				WithField("request_id", c.GetString("request_id")).
				Error("panic recovered")
		}
		ae := apperror.Internal("internal server error")
		resp := response.Error(c, ae.Code, ae.Message, nil)
		c.AbortWithStatusJSON(ae.Code, resp)
	})
}
