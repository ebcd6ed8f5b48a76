package routes

import (
	"github.com/gin-gonic/gin"
	config "github.com/phillip/crowdcube-go/config"
	controllers "github.com/phillip/crowdcube-go/controllers"
	utils "github.com/phillip/crowdcube-go/utils"
)

// Integrations are the optional outside services. A nil field disables
// the feature that depends on it.
type Integrations struct {
	Images utils.ImageUploader
	Mailer utils.Mailer
}

func SetupRoutes(r *gin.Engine, cfg *config.Config, ext Integrations) {
	r.GET("/", controllers.Root())

	// campaigns
	r.GET("/campaign", controllers.ListCampaigns(cfg))
	r.GET("/campaigns", controllers.ListCampaigns(cfg))
	r.GET("/campaign/:id", controllers.GetCampaign(cfg))
	r.POST("/campaign", controllers.CreateCampaign(cfg))
	r.PUT("/campaign/:id", controllers.UpdateCampaign(cfg))
	r.DELETE("/campaign/:id", controllers.DeleteCampaign(cfg))
	r.POST("/campaign/:id/image", controllers.UploadCampaignImage(cfg, ext.Images))
	r.GET("/user/campaigns", controllers.ListUserCampaigns(cfg))

	// donations
	r.POST("/donate", controllers.CreateDonation(cfg, ext.Mailer))
	r.GET("/myDonations", controllers.ListUserDonations(cfg))

	// users; POST is kept for older clients and upserts like PUT
	r.PUT("/users", controllers.UpsertUser(cfg))
	r.POST("/users", controllers.UpsertUser(cfg))
	r.GET("/users/:email", controllers.GetUser(cfg))
}
