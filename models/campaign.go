package models

const CampaignCollection = "campaign"

// Campaign fields the server itself reads or writes.
const (
	FieldUserEmail = "userEmail"
	FieldDeadline  = "deadline"
	FieldImage     = "image"
)
