package pokedex

import "time"

// ViewerSession is one client's browsing state: the filter plus the
// animated-sprite toggle
type ViewerSession struct {
	ID        string      `json:"id"`
	Filter    FilterState `json:"filter"`
	Animated  bool        `json:"animated"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// Clone returns a deep copy so stored sessions are never shared
func (s *ViewerSession) Clone() *ViewerSession {
	if s == nil {
		return nil
	}
	out := *s
	out.Filter.SelectedTypes = append([]string(nil), s.Filter.SelectedTypes...)
	return &out
}
