package controllers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	config "github.com/phillip/crowdcube-go/config"
	middleware "github.com/phillip/crowdcube-go/middleware"
	models "github.com/phillip/crowdcube-go/models"
	utils "github.com/phillip/crowdcube-go/utils"
)

// operationContext bounds one driver call by the request lifetime and the
// configured timeout.
func operationContext(c *gin.Context, cfg *config.Config) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), cfg.OperationTimeout())
}

// storageFailure logs the driver error and answers with a fixed message.
func storageFailure(c *gin.Context, op, message string, err error) {
	slog.Error("storage operation failed",
		"op", op,
		"request_id", c.GetString(middleware.RequestIDKey),
		"error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}

// bindDocument decodes the request body into a JSON object.
func bindDocument(c *gin.Context) (models.Document, bool) {
	var doc models.Document
	if err := c.ShouldBindJSON(&doc); err != nil || doc == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be a JSON object"})
		return nil, false
	}
	return doc, true
}

// optionalQuery returns the query value, or nil when the parameter is
// absent so the equality filter matches documents lacking the field.
func optionalQuery(c *gin.Context, key string) interface{} {
	if v, ok := c.GetQuery(key); ok {
		return v
	}
	return nil
}

func findDocuments(ctx context.Context, col *mongo.Collection, filter bson.M) ([]models.Document, error) {
	cursor, err := col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	docs := []models.Document{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []models.Document{}
	}
	return docs, nil
}

// respondWithETag writes v as JSON, tagged with an ETag of the body, and
// answers 304 when the client already holds that representation.
func respondWithETag(c *gin.Context, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Error("encoding response", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not encode response"})
		return
	}

	etag := utils.GenerateETag(body)
	if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
		c.Status(http.StatusNotModified)
		return
	}
	c.Header("ETag", etag)
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}
