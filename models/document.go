package models

import (
	"go.mongodb.org/mongo-driver/bson"
)

// Document is a schema-less record. Whatever JSON object the client sends
// is stored as-is.
type Document = bson.M

const FieldID = "_id"

// StringField returns doc[key] when it holds a string.
func StringField(doc Document, key string) string {
	s, _ := doc[key].(string)
	return s
}
