package model

import "time"

type Color struct {
	ID   int64  `json:"color_id"`
	Name string `json:"color_name"`
}

type User struct {
	ID        int64     `json:"user_id"`
	Phone     string    `json:"user_phone_number"`
	Tag       string    `json:"user_acctag"`
	Name      string    `json:"user_name"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Directory bool      `json:"ldap_auth"`
	CreatedAt time.Time `json:"created_at"`
}

type Board struct {
	ID        int64     `json:"board_id"`
	Name      string    `json:"board_name"`
	ColorID   int64     `json:"-"`
	Color     string    `json:"board_colour"`
	CreatorID *int64    `json:"board_creator"`
	CreatedAt time.Time `json:"-"`
}

// CreatedBy reports whether userID is the board's creator. A board whose
// creator account is gone has no creator.
func (b Board) CreatedBy(userID int64) bool {
	return b.CreatorID != nil && *b.CreatorID == userID
}

// Member is the public summary of a user on a board.
type Member struct {
	UserID    int64  `json:"user_id"`
	Name      string `json:"user_name"`
	Tag       string `json:"user_acctag"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

type Column struct {
	ID      int64  `json:"column_id"`
	BoardID int64  `json:"-"`
	Name    string `json:"column_name"`
	ColorID int64  `json:"-"`
	Color   string `json:"column_colour"`
	// Records holds record texts in insertion order; only filled for board views.
	Records []string `json:"records"`
}

type Record struct {
	ID       int64
	ColumnID int64
	AuthorID int64
	Text     string
}

// BoardView is a board together with its columns and their records.
type BoardView struct {
	Board
	Columns []Column `json:"columns"`
}

type InviteStatus string

const (
	InvitePending  InviteStatus = "pending"
	InviteAccepted InviteStatus = "accepted"
	InviteDeclined InviteStatus = "declined"
)

type Invite struct {
	Token     string       `json:"token"`
	BoardID   int64        `json:"board_id"`
	InviterID int64        `json:"inviter_id"`
	Status    InviteStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
}

// Post is a feed entry. Date is YYYY-MM-DD and Time is HH:MM:SS.
type Post struct {
	ID      int64  `json:"post_id"`
	UserID  int64  `json:"post_user_id"`
	BoardID *int64 `json:"board_id,omitempty"`
	Text    string `json:"post_text"`
	Picture string `json:"post_picture,omitempty"`
	Date    string `json:"post_date"`
	Time    string `json:"post_time"`
	Views   int64  `json:"post_views"`
}

// FeedItem is a post joined with its author and board for display.
type FeedItem struct {
	Post
	UserName  string `json:"user_name"`
	UserTag   string `json:"user_acctag"`
	AvatarURL string `json:"avatar_url,omitempty"`
	BoardName string `json:"board_name"`
}
