package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wiissal/take-a-chef/internal/audit"
	"github.com/wiissal/take-a-chef/internal/dto"
	"github.com/wiissal/take-a-chef/internal/httperr"
	"github.com/wiissal/take-a-chef/internal/httpresp"
	"github.com/wiissal/take-a-chef/internal/timezone"
	ucAccount "github.com/wiissal/take-a-chef/internal/usecase/account"
)

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 200
)

type MeHandler struct {
	meUC  *ucAccount.GetMe
	audit *audit.Logger
}

func NewMeHandler(meUC *ucAccount.GetMe, auditLogger *audit.Logger) *MeHandler {
	return &MeHandler{meUC: meUC, audit: auditLogger}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}

	p, err := h.meUC.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var profile any
	switch {
	case p.Chef != nil:
		chef := dto.NewChefSummary(p.Chef)
		chef.Name = p.User.Name
		profile = chef
	case p.Customer != nil:
		profile = gin.H{
			"id":      p.Customer.ID,
			"phone":   p.Customer.Phone,
			"address": p.Customer.Address,
		}
	}

	httpresp.OK(c, "", gin.H{"user": dto.NewUser(p.User), "profile": profile})
}

// Activity lists the caller's own audit trail. Optional filters: action,
// entity, from and to (YYYY-MM-DD, inclusive).
func (h *MeHandler) Activity(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}

	page, limit := activityPage(queryInt(c, "page"), queryInt(c, "limit"))

	f := audit.Filter{
		ActorUserID: id.UserID,
		Action:      c.Query("action"),
		Entity:      c.Query("entity"),
		Page:        page,
		Limit:       limit,
	}
	if from, err := time.Parse(timezone.DateLayout, c.Query("from")); err == nil {
		f.From = &from
	}
	if to, err := time.Parse(timezone.DateLayout, c.Query("to")); err == nil {
		end := to.Add(24 * time.Hour)
		f.To = &end
	}

	logs, total, err := h.audit.List(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, "", gin.H{
		"logs":       logs,
		"pagination": httpresp.NewPagination(page, limit, total),
	})
}

// activityPage defaults missing values and caps limit at maxActivityLimit,
// the same way booking and review listings treat theirs.
func activityPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}
	return page, limit
}
