package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/wiissal/take-a-chef/internal/dto"
	"github.com/wiissal/take-a-chef/internal/httperr"
	"github.com/wiissal/take-a-chef/internal/httpresp"
	ucReview "github.com/wiissal/take-a-chef/internal/usecase/review"
)

type ReviewHandler struct {
	createUC *ucReview.CreateReview
	listUC   *ucReview.ListChefReviews
}

func NewReviewHandler(
	createUC *ucReview.CreateReview,
	listUC *ucReview.ListChefReviews,
) *ReviewHandler {
	return &ReviewHandler{createUC: createUC, listUC: listUC}
}

// Rating is range-checked by the use case so that eligibility failures are
// reported first.
type CreateReviewRequest struct {
	BookingID uint   `json:"bookingId" binding:"required,min=1"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

func (h *ReviewHandler) Create(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}

	var req CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	rv, err := h.createUC.Execute(c.Request.Context(), ucReview.CreateReviewInput{
		Identity:  id,
		BookingID: req.BookingID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, "Review created successfully", gin.H{"review": dto.NewReview(rv)})
}

func (h *ReviewHandler) ListForChef(c *gin.Context) {
	chefID, ok := pathID(c, "id")
	if !ok {
		return
	}

	res, err := h.listUC.Execute(c.Request.Context(), chefID, queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, "", dto.NewReviewList(res.Items, res.Page, res.Limit, res.Total))
}
