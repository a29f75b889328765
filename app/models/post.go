package models

import "errors"

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	return validate.Struct(p)
}

// BeforeCreate assigns an id, creation date and an empty comment list
func (p *Post) BeforeCreate() {
	if p.ID == "" {
		p.ID = NewID()
	}
	if p.Date.IsZero() {
		p.Date = Now()
	}
	if p.Comments == nil {
		p.Comments = []string{}
	}
}

// PrependComment puts a comment id at the front of the post's comment list.
func (p *Post) PrependComment(commentID string) error {
	if commentID == "" {
		return errors.New("comment id cannot be empty")
	}

	p.Comments = append([]string{commentID}, p.Comments...)
	return nil
}

// HasComment reports whether the post references commentID.
func (p *Post) HasComment(commentID string) bool {
	for _, id := range p.Comments {
		if id == commentID {
			return true
		}
	}
	return false
}
