// README: Gift generation and product lookup handlers.
package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"giftgenie/internal/ai"
	"giftgenie/internal/modules/gifts"
	"giftgenie/internal/modules/usage"
)

// generateTimeout bounds the whole pipeline: one LLM call plus up to a
// dozen sequential provider lookups.
const generateTimeout = 90 * time.Second

type GiftHandler struct {
	gifts *gifts.Service
	usage *usage.Service
	model string
}

func NewGiftHandler(giftSvc *gifts.Service, usageSvc *usage.Service, model string) *GiftHandler {
	return &GiftHandler{gifts: giftSvc, usage: usageSvc, model: model}
}

type generateReq struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Generate handles POST /api/gifts/generate.
func (h *GiftHandler) Generate(c *gin.Context) {
	var req generateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "bad_request", "invalid json")
		return
	}

	intent, ok := decodeIntent(req)
	if !ok {
		writeError(c, http.StatusBadRequest, "bad_request", "unknown intent type")
		return
	}

	if err := h.usage.UseQuota(c.Request.Context(), c.ClientIP()); err != nil {
		writeGiftError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), generateTimeout)
	defer cancel()

	start := time.Now()
	proposals, ideaCount, err := h.gifts.Generate(ctx, intent)
	if err != nil {
		log.Printf("[http] generate failed: %v", err)
		writeGiftError(c, err)
		return
	}

	h.usage.Log(c.Request.Context(), usage.Record{
		ClientID:  c.ClientIP(),
		Intent:    string(intent.Kind),
		Model:     h.model,
		Ideas:     ideaCount,
		Proposals: len(proposals),
		Duration:  time.Since(start),
	})

	writeJSON(c, http.StatusOK, gin.H{
		"success": true,
		"count":   len(proposals),
		"gifts":   proposals,
	})
}

// decodeIntent maps the tagged request body onto exactly one intent shape.
func decodeIntent(req generateReq) (gifts.Intent, bool) {
	switch ai.IntakeKind(req.Type) {
	case ai.IntakeForm:
		var f gifts.FormIntent
		if err := json.Unmarshal(req.Data, &f); err != nil {
			return gifts.Intent{}, false
		}
		return gifts.Intent{Kind: ai.IntakeForm, Form: f}, true
	case ai.IntakeDescription:
		var d gifts.DescriptionIntent
		if err := json.Unmarshal(req.Data, &d); err != nil {
			return gifts.Intent{}, false
		}
		return gifts.Intent{Kind: ai.IntakeDescription, Description: d}, true
	case ai.IntakeRandom:
		return gifts.Intent{Kind: ai.IntakeRandom}, true
	default:
		return gifts.Intent{}, false
	}
}

// Lookup handles GET /api/products/lookup.
func (h *GiftHandler) Lookup(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		writeError(c, http.StatusBadRequest, "bad_request", "missing query parameter")
		return
	}
	minPrice := parseFloatParam(c.Query("minPrice"))
	maxPrice := parseFloatParam(c.Query("maxPrice"))

	ctx, cancel := context.WithTimeout(c.Request.Context(), 20*time.Second)
	defer cancel()

	product, err := h.gifts.LookupProduct(ctx, query, minPrice, maxPrice)
	if err != nil {
		log.Printf("[http] lookup %q failed: %v", query, err)
		writeGiftError(c, err)
		return
	}
	if product == nil {
		writeError(c, http.StatusNotFound, "not_found", "Nie znaleziono produktu.")
		return
	}

	writeJSON(c, http.StatusOK, gin.H{
		"success": true,
		"product": gin.H{
			"productId":   product.ID,
			"name":        product.Name,
			"imageUrl":    product.ThumbnailURL,
			"lowestPrice": product.Price.Amount,
			"currency":    product.Price.Currency,
			"url":         product.URL,
		},
	})
}

func parseFloatParam(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
