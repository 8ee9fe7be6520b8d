package domain

import "time"

// BlogPost is a story or tutorial shown on the public site once
// published.
type BlogPost struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Author      string     `json:"author"`
	Summary     string     `json:"summary,omitempty"`
	Content     string     `json:"content"`
	Tags        []string   `json:"tags,omitempty"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	Published   bool       `json:"published"`
	CreatedAt   time.Time  `json:"createdAt"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}

// Clone returns a deep copy of the post, including its tag slice.
func (p BlogPost) Clone() BlogPost {
	out := p
	out.Tags = make([]string, len(p.Tags))
	copy(out.Tags, p.Tags)
	return out
}
