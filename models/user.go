package models

const UserCollection = "users"

// FieldEmail is the natural key of a user document.
const FieldEmail = "email"
