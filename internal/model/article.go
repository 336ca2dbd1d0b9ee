package model

// Article data model. OwnerID is the user that created the article and is the
// only one allowed to change it.
type Article struct {
	ID              int64    `json:"id"`
	Title           string   `json:"title"`
	Abstract        string   `json:"abstract"`
	PublicationDate Date     `json:"publication_date"`
	OwnerID         int64    `json:"user_id"`
	OwnerName       string   `json:"-"`
	Authors         []Author `json:"authors"`
	Tags            []Tag    `json:"tags"`
}

// Author of an article. Authors are plain names, not users.
type Author struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
