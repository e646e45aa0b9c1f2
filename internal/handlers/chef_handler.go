package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/wiissal/take-a-chef/internal/httperr"
	"github.com/wiissal/take-a-chef/internal/httpresp"
	ucChef "github.com/wiissal/take-a-chef/internal/usecase/chef"
)

type ChefHandler struct {
	summaryUC *ucChef.GetChefSummary
}

func NewChefHandler(summaryUC *ucChef.GetChefSummary) *ChefHandler {
	return &ChefHandler{summaryUC: summaryUC}
}

func (h *ChefHandler) Get(c *gin.Context) {
	chefID, ok := pathID(c, "id")
	if !ok {
		return
	}

	chef, err := h.summaryUC.Execute(c.Request.Context(), chefID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, "", gin.H{"chef": chef})
}
