package domain

import "github.com/google/uuid"

// Subscription links a follower to an author whose recipes they track.
// The (UserID, AuthorID) pair is unique and a user can never subscribe to
// themselves.
type Subscription struct {
	UserID   uuid.UUID
	AuthorID uuid.UUID
}

// SubscribedAuthor is one entry of a user's subscription listing: the author
// plus a preview of their recipes and the total recipe count.
type SubscribedAuthor struct {
	Author       User
	Recipes      []Recipe // newest-first preview, possibly truncated
	RecipesCount int
}
