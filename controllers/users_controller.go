package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	config "github.com/phillip/crowdcube-go/config"
	models "github.com/phillip/crowdcube-go/models"
)

// ---------------- UPSERT ----------------
// UpsertUser inserts the user or overwrites the supplied fields of the
// existing user with the same email.
func UpsertUser(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := bindDocument(c)
		if !ok {
			return
		}

		delete(user, models.FieldID)
		if len(user) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		ctx, cancel := operationContext(c, cfg)
		defer cancel()

		res, err := cfg.Collection(models.UserCollection).UpdateOne(ctx,
			bson.M{models.FieldEmail: user[models.FieldEmail]},
			bson.M{"$set": user},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			storageFailure(c, "upsert user", "Failed to upsert user", err)
			return
		}

		c.JSON(http.StatusOK, models.NewUpdateResult(res))
	}
}

// ---------------- GET ----------------
// GetUser answers null rather than 404 when no user has that email.
func GetUser(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := operationContext(c, cfg)
		defer cancel()

		var user models.Document
		err := cfg.Collection(models.UserCollection).
			FindOne(ctx, bson.M{models.FieldEmail: c.Param("email")}).
			Decode(&user)
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			storageFailure(c, "get user", "Failed to fetch user", err)
			return
		}

		c.JSON(http.StatusOK, user)
	}
}
