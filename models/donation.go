package models

const DonationCollection = "donated"

const FieldAmount = "amount"
