// Package server exposes the telemetry store, the stats aggregator, and
// the prediction client over HTTP for the dashboard frontend.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"goldpulse/internal/prediction"
	"goldpulse/internal/telemetry"
)

// Forecaster is the prediction boundary the handlers depend on. It never
// fails; degraded results come back as ordinary forecasts.
type Forecaster interface {
	Predict(ctx context.Context, currentPrice float64, historicalSummary string) prediction.Result
}

// PriceSource yields the current simulated spot price.
type PriceSource interface {
	Price() float64
}

type Handler struct {
	Store     *telemetry.Store
	Stats     *telemetry.Aggregator
	Predictor Forecaster
	Prices    PriceSource
}

// NewRouter wires all API routes onto a gin engine.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.Default()

	api := r.Group("/api")
	api.POST("/predict", h.Predict)
	api.GET("/activities", h.ListActivities)
	api.POST("/activities", h.LogActivity)
	api.GET("/users/:id/activities", h.ListUserActivities)
	api.GET("/reviews", h.ListReviews)
	api.POST("/reviews", h.AddReview)
	api.GET("/stats", h.GetStats)
	api.GET("/price", h.GetPrice)

	return r
}

type identity struct {
	UserID    string `json:"userId"`
	UserEmail string `json:"userEmail"`
	UserName  string `json:"userName"`
}

type predictRequest struct {
	identity
	CurrentPrice   float64 `json:"currentPrice" binding:"required"`
	HistoricalData string  `json:"historicalData"`
}

// Predict returns a forecast for the submitted price. Upstream failures
// never surface here; the predictor degrades to a synthetic estimate and
// the route answers 200 either way. When the caller identifies itself the
// request is logged as an activity with the forecast attached.
func (h *Handler) Predict(c *gin.Context) {
	var req predictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.CurrentPrice <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "currentPrice must be positive"})
		return
	}

	res := h.Predictor.Predict(c.Request.Context(), req.CurrentPrice, req.HistoricalData)

	if req.UserID != "" {
		h.Store.LogActivity(
			req.UserID, req.UserEmail, req.UserName,
			telemetry.ActionPredictionRequest,
			fmt.Sprintf("Requested forecast for NPR %.2f", req.CurrentPrice),
			&telemetry.PredictionSnapshot{
				CurrentPrice:   req.CurrentPrice,
				PredictedPrice: res.PredictedPrice,
				Trend:          res.Trend,
			},
		)
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ListActivities(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Activities())
}

func (h *Handler) ListUserActivities(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.ActivitiesByUser(c.Param("id")))
}

type logActivityRequest struct {
	identity
	Action     string                        `json:"action" binding:"required"`
	Details    string                        `json:"details"`
	Prediction *telemetry.PredictionSnapshot `json:"prediction"`
}

func (h *Handler) LogActivity(c *gin.Context) {
	var req logActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}
	a := h.Store.LogActivity(req.UserID, req.UserEmail, req.UserName, req.Action, req.Details, req.Prediction)
	c.JSON(http.StatusCreated, a)
}

func (h *Handler) ListReviews(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Reviews())
}

type addReviewRequest struct {
	identity
	Rating  telemetry.Rating `json:"rating" binding:"required"`
	Comment string           `json:"comment"`
}

// AddReview stores the feedback and, mirroring the dashboard's behavior,
// logs a companion Feedback Submitted activity.
func (h *Handler) AddReview(c *gin.Context) {
	var req addReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}
	if !req.Rating.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid rating %q", req.Rating)})
		return
	}
	r := h.Store.AddReview(req.UserID, req.UserEmail, req.UserName, req.Rating, req.Comment)
	h.Store.LogActivity(
		req.UserID, req.UserEmail, req.UserName,
		telemetry.ActionFeedbackSubmitted,
		fmt.Sprintf("User provided %s feedback on prediction", req.Rating),
		nil,
	)
	c.JSON(http.StatusCreated, r)
}

func (h *Handler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"activities": h.Stats.ActivityStats(),
		"reviews":    h.Stats.ReviewStats(),
	})
}

func (h *Handler) GetPrice(c *gin.Context) {
	if h.Prices == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "price feed disabled"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"price": h.Prices.Price()})
}
