package helper

import "gorm.io/gorm/schema"

var naming = schema.NamingStrategy{}

// Underscore converts a Go field name to the snake_case key used in
// responses: "PublicationDate" -> "publication_date", "AuthorID" -> "author_id".
func Underscore(s string) string {
	return naming.ColumnName("", s)
}
