package controllers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	config "github.com/phillip/crowdcube-go/config"
	models "github.com/phillip/crowdcube-go/models"
	utils "github.com/phillip/crowdcube-go/utils"
)

func campaignID(c *gin.Context) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid campaign id"})
		return primitive.NilObjectID, false
	}
	return oid, true
}

// ---------------- LIST ----------------
// ListCampaigns returns every campaign, or only those owned by ?userEmail=.
func ListCampaigns(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := bson.M{}
		if email := c.Query("userEmail"); email != "" {
			filter[models.FieldUserEmail] = email
		}

		ctx, cancel := operationContext(c, cfg)
		defer cancel()

		campaigns, err := findDocuments(ctx, cfg.Collection(models.CampaignCollection), filter)
		if err != nil {
			storageFailure(c, "list campaigns", "Failed to fetch campaigns", err)
			return
		}

		respondWithETag(c, campaigns)
	}
}

// ListUserCampaigns filters by ?email= only; the parameter is not validated.
func ListUserCampaigns(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := bson.M{models.FieldUserEmail: optionalQuery(c, "email")}

		ctx, cancel := operationContext(c, cfg)
		defer cancel()

		campaigns, err := findDocuments(ctx, cfg.Collection(models.CampaignCollection), filter)
		if err != nil {
			storageFailure(c, "list user campaigns", "Failed to fetch user campaigns", err)
			return
		}

		respondWithETag(c, campaigns)
	}
}

// ---------------- GET ----------------
func GetCampaign(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, ok := campaignID(c)
		if !ok {
			return
		}

		ctx, cancel := operationContext(c, cfg)
		defer cancel()

		var campaign models.Document
		err := cfg.Collection(models.CampaignCollection).
			FindOne(ctx, bson.M{models.FieldID: oid}).
			Decode(&campaign)
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
			return
		}
		if err != nil {
			storageFailure(c, "get campaign", "Failed to fetch campaign", err)
			return
		}

		respondWithETag(c, campaign)
	}
}

// ---------------- CREATE ----------------
func CreateCampaign(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		campaign, ok := bindDocument(c)
		if !ok {
			return
		}

		ctx, cancel := operationContext(c, cfg)
		defer cancel()

		res, err := cfg.Collection(models.CampaignCollection).InsertOne(ctx, campaign)
		if err != nil {
			storageFailure(c, "create campaign", "Failed to add campaign", err)
			return
		}

		c.JSON(http.StatusOK, models.NewInsertResult(res))
	}
}

// ---------------- UPDATE ----------------
// UpdateCampaign overwrites only the supplied fields. A deadline is stored
// as a date. An unmatched id still answers 200 with a zero count.
func UpdateCampaign(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, ok := campaignID(c)
		if !ok {
			return
		}

		update, ok := bindDocument(c)
		if !ok {
			return
		}

		// _id is immutable; leaving it in would fail the whole $set
		delete(update, models.FieldID)
		if len(update) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		if d, present := update[models.FieldDeadline]; present && utils.IsSet(d) {
			deadline, err := utils.ParseDeadline(d)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": utils.ErrInvalidDeadline.Error()})
				return
			}
			update[models.FieldDeadline] = deadline
		}

		ctx, cancel := operationContext(c, cfg)
		defer cancel()

		res, err := cfg.Collection(models.CampaignCollection).
			UpdateOne(ctx, bson.M{models.FieldID: oid}, bson.M{"$set": update})
		if err != nil {
			storageFailure(c, "update campaign", "Failed to update campaign", err)
			return
		}

		c.JSON(http.StatusOK, models.NewUpdateResult(res))
	}
}

// ---------------- DELETE ----------------
func DeleteCampaign(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, ok := campaignID(c)
		if !ok {
			return
		}

		ctx, cancel := operationContext(c, cfg)
		defer cancel()

		res, err := cfg.Collection(models.CampaignCollection).DeleteOne(ctx, bson.M{models.FieldID: oid})
		if err != nil {
			storageFailure(c, "delete campaign", "Failed to delete campaign", err)
			return
		}

		c.JSON(http.StatusOK, models.NewDeleteResult(res))
	}
}

// ---------------- IMAGE ----------------
type imageUploadResult struct {
	models.UpdateResult
	Image string `json:"image"`
}

// UploadCampaignImage stores the multipart "image" file and points the
// campaign's image field at it.
func UploadCampaignImage(cfg *config.Config, images utils.ImageUploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		if images == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image uploads are not configured"})
			return
		}

		oid, ok := campaignID(c)
		if !ok {
			return
		}

		fileHeader, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open file"})
			return
		}
		defer file.Close()

		uploadCtx, cancelUpload := context.WithTimeout(c.Request.Context(), 60*time.Second)
		defer cancelUpload()

		url, err := images.Upload(uploadCtx, file, utils.CampaignImageFolder, oid.Hex())
		if err != nil {
			slog.Error("image upload failed", "campaign", oid.Hex(), "file", fileHeader.Filename, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "image upload failed"})
			return
		}

		ctx, cancel := operationContext(c, cfg)
		defer cancel()

		res, err := cfg.Collection(models.CampaignCollection).
			UpdateOne(ctx, bson.M{models.FieldID: oid}, bson.M{"$set": bson.M{models.FieldImage: url}})
		if err != nil {
			storageFailure(c, "set campaign image", "Failed to update campaign", err)
			return
		}

		c.JSON(http.StatusOK, imageUploadResult{UpdateResult: models.NewUpdateResult(res), Image: url})
	}
}
