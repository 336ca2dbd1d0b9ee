package model

type Comment struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	ArticleID int64  `json:"article_id"`
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
}
