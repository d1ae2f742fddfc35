package model

import "time"

// IdPが発行したアクセストークンから作るセッション
type Session struct {
	Token     string    `json:"token"`
	Subject   string    `json:"subject"`
	Roles     []string  `json:"roles,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// トークンがあり期限内ならログイン中（期限なしは無効）
func (s Session) Authenticated(now time.Time) bool {
	if s.Token == "" || s.Subject == "" || s.ExpiresAt.IsZero() {
		return false
	}
	return now.Before(s.ExpiresAt)
}
