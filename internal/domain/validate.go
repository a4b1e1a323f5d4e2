package domain

import (
	"fmt"
	"strings"
)

func required(fields ...string) error {
	var missing []string
	for i := 0; i+1 < len(fields); i += 2 {
		if strings.TrimSpace(fields[i+1]) == "" {
			missing = append(missing, fields[i])
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", ErrInvalidArgument, strings.Join(missing, ", "))
	}
	return nil
}

func (u *User) Validate() error {
	if err := required("username", u.Username, "mail", u.Mail, "password", u.Password); err != nil {
		return err
	}
	if u.Type == "" {
		u.Type = RoleUser
	}
	if !u.Type.Valid() {
		return fmt.Errorf("%w: type must be one of user, farmer", ErrInvalidArgument)
	}
	return nil
}

func (p *Product) Validate() error {
	if err := required("productName", p.Name, "productId", p.Code); err != nil {
		return err
	}
	if p.Type != "" && !p.Type.Valid() {
		return fmt.Errorf("%w: productType must be one of fertilizer, pesticide, crop", ErrInvalidArgument)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidArgument)
	}
	if p.Quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", ErrInvalidArgument)
	}
	return nil
}

func (b *Blog) Validate() error {
	if err := required("title", b.Title, "content", b.Content); err != nil {
		return err
	}
	if len(b.Images) > MaxBlogImages {
		return fmt.Errorf("%w: at most %d images per blog", ErrInvalidArgument, MaxBlogImages)
	}
	return nil
}

func (s *Shop) Validate() error {
	return required("title", s.Title, "location", s.Location, "ownerName", s.OwnerName)
}

func (m *MarketPrice) Validate() error {
	if err := required("item", m.Item); err != nil {
		return err
	}
	if m.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidArgument)
	}
	if m.Category != "" && !m.Category.Valid() {
		return fmt.Errorf("%w: category must be one of vegetable, fruits, paddycrops", ErrInvalidArgument)
	}
	return nil
}

func (t *Training) Validate() error {
	return required("title", t.Title, "name", t.Name, "course", t.Course, "link", t.Link)
}
