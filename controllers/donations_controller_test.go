package controllers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	models "github.com/phillip/crowdcube-go/models"
	utils "github.com/phillip/crowdcube-go/utils"
)

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	sent chan sentMail
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{sent: make(chan sentMail, 1)}
}

func (f *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	f.sent <- sentMail{to: to, subject: subject, body: body}
	return nil
}

func donationRouter(mt *mtest.T, mailer utils.Mailer) *gin.Engine {
	cfg := testConfig(mt)
	r := gin.New()
	r.POST("/donate", CreateDonation(cfg, mailer))
	r.GET("/myDonations", ListUserDonations(cfg))
	return r
}

func TestCreateDonation(t *testing.T) {
	mt := newMockT(t)

	mt.Run("inserts and mails a receipt", func(mt *mtest.T) {
		mailer := newFakeMailer()
		r := donationRouter(mt, mailer)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		w := perform(r, http.MethodPost, "/donate", map[string]interface{}{
			"userEmail":  "a@x.com",
			"amount":     50,
			"campaignId": "65f0c0ffee0000000000abcd",
		})
		require.Equal(mt, http.StatusOK, w.Code)

		var got models.InsertResult
		decodeBody(mt, w, &got)
		assert.NotNil(mt, got.InsertedID)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, models.DonationCollection, evt.Command.Lookup("insert").StringValue())
		doc := evt.Command.Lookup("documents").Array().Index(0).Value().Document()
		assert.Equal(mt, 50.0, doc.Lookup("amount").Double())
		assert.Equal(mt, "65f0c0ffee0000000000abcd", doc.Lookup("campaignId").StringValue())

		select {
		case mail := <-mailer.sent:
			assert.Equal(mt, "a@x.com", mail.to)
			assert.Contains(mt, mail.body, "50")
		case <-time.After(2 * time.Second):
			mt.Fatal("receipt was not sent")
		}
	})

	mt.Run("no email means no receipt", func(mt *mtest.T) {
		mailer := newFakeMailer()
		r := donationRouter(mt, mailer)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		w := perform(r, http.MethodPost, "/donate", map[string]interface{}{"amount": 5})
		require.Equal(mt, http.StatusOK, w.Code)

		select {
		case mail := <-mailer.sent:
			mt.Fatalf("unexpected receipt to %q", mail.to)
		case <-time.After(100 * time.Millisecond):
		}
	})

	mt.Run("failed insert sends nothing", func(mt *mtest.T) {
		mailer := newFakeMailer()
		r := donationRouter(mt, mailer)
		mt.AddMockResponses(storageError())

		w := perform(r, http.MethodPost, "/donate", map[string]interface{}{"userEmail": "a@x.com", "amount": 5})
		assert.Equal(mt, http.StatusInternalServerError, w.Code)
		assert.JSONEq(mt, `{"error":"Failed to add donation"}`, w.Body.String())

		select {
		case <-mailer.sent:
			mt.Fatal("receipt sent for a failed donation")
		case <-time.After(100 * time.Millisecond):
		}
	})

	mt.Run("works without a mailer", func(mt *mtest.T) {
		r := donationRouter(mt, nil)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		w := perform(r, http.MethodPost, "/donate", map[string]interface{}{"userEmail": "a@x.com", "amount": 5})
		assert.Equal(mt, http.StatusOK, w.Code)
	})
}

func TestListUserDonations(t *testing.T) {
	mt := newMockT(t)

	mt.Run("filters by email", func(mt *mtest.T) {
		r := donationRouter(mt, nil)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(models.DonationCollection), mtest.FirstBatch,
			bson.D{{Key: "userEmail", Value: "a@x.com"}, {Key: "amount", Value: 50.0}},
		))

		w := perform(r, http.MethodGet, "/myDonations?email=a@x.com", nil)
		require.Equal(mt, http.StatusOK, w.Code)

		var got []map[string]interface{}
		decodeBody(mt, w, &got)
		require.Len(mt, got, 1)
		assert.Equal(mt, 50.0, got[0]["amount"])

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, models.DonationCollection, evt.Command.Lookup("find").StringValue())
		filter := evt.Command.Lookup("filter").Document()
		assert.Equal(mt, "a@x.com", filter.Lookup(models.FieldUserEmail).StringValue())
	})

	mt.Run("driver error", func(mt *mtest.T) {
		r := donationRouter(mt, nil)
		mt.AddMockResponses(storageError())

		w := perform(r, http.MethodGet, "/myDonations?email=a@x.com", nil)
		assert.Equal(mt, http.StatusInternalServerError, w.Code)
		assert.JSONEq(mt, `{"error":"Failed to fetch donations"}`, w.Body.String())
	})
}
