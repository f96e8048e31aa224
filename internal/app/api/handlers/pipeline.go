package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fatflowers/giftflow/internal/app/service/dispatch"
	"github.com/fatflowers/giftflow/internal/app/service/issuance"
	"github.com/fatflowers/giftflow/pkg/metrics"
	"github.com/fatflowers/giftflow/pkg/response"
)

// @Summary      Run Issuance Pass (Admin)
// @Description  Claims at most one pending order and issues its vouchers. Intended for operators and for deployments running with the scheduler disabled.
// @Tags         Pipeline
// @Produce      json
// @Success      200  {object}  handlers.RespPassResult
// @Router       /api/v1/admin/pipeline/issuance/run [post]
func ApiRunIssuancePass(svc *issuance.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := svc.RunPass(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		metrics.ObservePipelinePass("issuance", res.Processed, res.Failed)
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Run Dispatch Pass (Admin)
// @Description  Claims at most one due order and delivers its vouchers.
// @Tags         Pipeline
// @Produce      json
// @Success      200  {object}  handlers.RespPassResult
// @Router       /api/v1/admin/pipeline/dispatch/run [post]
func ApiRunDispatchPass(svc *dispatch.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := svc.RunPass(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		metrics.ObservePipelinePass("dispatch", res.Processed, res.Failed)
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

func RegisterPipelineRoutes(r gin.IRouter, issue *issuance.Service, send *dispatch.Service) {
	r.POST("/pipeline/issuance/run", ApiRunIssuancePass(issue))
	r.POST("/pipeline/dispatch/run", ApiRunDispatchPass(send))
}
