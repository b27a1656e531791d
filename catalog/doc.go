// Package catalog holds the domain model for the movie catalog: the list
// categories and their routing keys, the sort orders the remote service
// recognizes, the fixed genre catalog, the immutable filter/sort value
// object, and the translators that turn wire records into domain records
// with defaulting and absolute image URLs.
package catalog
