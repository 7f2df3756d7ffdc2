package domain

import "time"

// Page is one informational page (shipping & delivery, fabric care, FAQs,
// terms, about, ...) served by slug.
type Page struct {
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FAQ is a single question/answer entry on the storefront settings.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Slider is one hero slider entry.
type Slider struct {
	Image    string `json:"image"`
	Title    string `json:"title"`
	SubTitle string `json:"subTitle"`
	Link     string `json:"link"`
}

// Contact holds the shop's contact details.
type Contact struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// SocialMedia holds the shop's social links.
type SocialMedia struct {
	Facebook  string `json:"facebook,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	YouTube   string `json:"youtube,omitempty"`
}

// Storefront is the shop-wide settings singleton.
type Storefront struct {
	ShopName    string      `json:"shopName"`
	Description string      `json:"description"`
	Contact     Contact     `json:"contact"`
	SocialMedia SocialMedia `json:"socialMedia"`
	FAQ         []FAQ       `json:"faq"`
	Logo        string      `json:"logo"`
	Sliders     []Slider    `json:"sliders"`
}
