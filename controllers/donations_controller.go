package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	config "github.com/phillip/crowdcube-go/config"
	models "github.com/phillip/crowdcube-go/models"
	utils "github.com/phillip/crowdcube-go/utils"
)

const receiptTimeout = 30 * time.Second

// ---------------- CREATE ----------------
// CreateDonation stores the donation untouched. When a mailer is wired and
// the donation names a userEmail, a receipt goes out in the background.
func CreateDonation(cfg *config.Config, mailer utils.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		donation, ok := bindDocument(c)
		if !ok {
			return
		}

		email := models.StringField(donation, models.FieldUserEmail)
		amount := donation[models.FieldAmount]
		slog.Info("received donation", "user_email", email, "amount", amount)

		ctx, cancel := operationContext(c, cfg)
		defer cancel()

		res, err := cfg.Collection(models.DonationCollection).InsertOne(ctx, donation)
		if err != nil {
			storageFailure(c, "create donation", "Failed to add donation", err)
			return
		}

		if mailer != nil && email != "" {
			go sendReceipt(mailer, email, amount)
		}

		c.JSON(http.StatusOK, models.NewInsertResult(res))
	}
}

func sendReceipt(mailer utils.Mailer, to string, amount interface{}) {
	ctx, cancel := context.WithTimeout(context.Background(), receiptTimeout)
	defer cancel()

	subject, body := utils.DonationReceipt(amount)
	if err := mailer.Send(ctx, to, subject, body); err != nil {
		slog.Warn("donation receipt not sent", "to", to, "error", err)
	}
}

// ---------------- LIST ----------------
func ListUserDonations(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := bson.M{models.FieldUserEmail: optionalQuery(c, "email")}

		ctx, cancel := operationContext(c, cfg)
		defer cancel()

		donations, err := findDocuments(ctx, cfg.Collection(models.DonationCollection), filter)
		if err != nil {
			storageFailure(c, "list donations", "Failed to fetch donations", err)
			return
		}

		respondWithETag(c, donations)
	}
}
