// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data. There is no inheritance here:
// a Joke is just a bundle of fields with JSON tags describing its wire shape.
package model

// DefaultCategory is assigned to submitted jokes that arrive without a category.
const DefaultCategory = "General"

// Joke is a single entry in the joke store.
//
// The `json:"..."` tags tell encoding/json how to serialize the struct, so
// a Joke goes over the wire as:
//
//	{"id":7,"text":"What do you call a fake noodle? An impasta!","category":"Food"}
//
// WHY int64 FOR ID?
// IDs are assigned by the store from a monotonically increasing counter.
// They are never reused, so a 64-bit counter is the natural fit and matches
// SQLite's INTEGER PRIMARY KEY.
type Joke struct {
	ID       int64  `json:"id"`
	Text     string `json:"text"`
	Category string `json:"category"`
}

// Category summarises how many jokes the store holds under one label.
type Category struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
