package model

import "time"

// FavoriteCategory is the label every favorite carries, whatever the
// category of the joke it was copied from.
const FavoriteCategory = "User Favorite"

// Favorite is a joke the user chose to keep during one client session.
//
// Favorites never reach the server. The ID is generated by the client at
// favoriting time and lives in its own identifier space, separate from Joke IDs.
type Favorite struct {
	ID       string    `json:"id"`
	Text     string    `json:"text"`
	Category string    `json:"category"`
	SavedAt  time.Time `json:"savedAt"`
}

// FallbackMessage is shown in place of a joke when fetching one fails.
// It is never saved as a favorite.
const FallbackMessage = "Oops! Couldn't fetch a joke. Try again!"
