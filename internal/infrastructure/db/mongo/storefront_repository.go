package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/threadline/storefront-api/internal/core/domain"
)

const storefrontCollection = "storefront"

// settingsID is the fixed id of the settings singleton document.
const settingsID = "settings"

// StorefrontRepository reads the shop-wide settings singleton: contact
// details, social links, FAQ entries, logo and hero sliders.
type StorefrontRepository struct {
	coll *mongo.Collection
}

func NewStorefrontRepository(db *mongo.Database) *StorefrontRepository {
	return &StorefrontRepository{coll: db.Collection(storefrontCollection)}
}

type mongoStorefront struct {
	ID          string `bson:"_id"`
	ShopName    string `bson:"shop_name"`
	Description string `bson:"description"`
	Contact     struct {
		Email   string `bson:"email"`
		Phone   string `bson:"phone"`
		Address string `bson:"address"`
	} `bson:"contact"`
	SocialMedia struct {
		Facebook  string `bson:"facebook,omitempty"`
		Twitter   string `bson:"twitter,omitempty"`
		Instagram string `bson:"instagram,omitempty"`
		LinkedIn  string `bson:"linkedin,omitempty"`
		YouTube   string `bson:"youtube,omitempty"`
	} `bson:"social_media"`
	FAQ []struct {
		Question string `bson:"question"`
		Answer   string `bson:"answer"`
	} `bson:"faq"`
	Logo    string `bson:"logo"`
	Sliders []struct {
		Image    string `bson:"image"`
		Title    string `bson:"title"`
		SubTitle string `bson:"sub_title"`
		Link     string `bson:"link"`
	} `bson:"sliders"`
}

func (r *StorefrontRepository) Get(ctx context.Context) (*domain.Storefront, error) {
	var ms mongoStorefront
	if err := r.coll.FindOne(ctx, bson.M{"_id": settingsID}).Decode(&ms); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find storefront settings: %w", err)
	}

	sf := &domain.Storefront{
		ShopName:    ms.ShopName,
		Description: ms.Description,
		Contact: domain.Contact{
			Email:   ms.Contact.Email,
			Phone:   ms.Contact.Phone,
			Address: ms.Contact.Address,
		},
		SocialMedia: domain.SocialMedia{
			Facebook:  ms.SocialMedia.Facebook,
			Twitter:   ms.SocialMedia.Twitter,
			Instagram: ms.SocialMedia.Instagram,
			LinkedIn:  ms.SocialMedia.LinkedIn,
			YouTube:   ms.SocialMedia.YouTube,
		},
		Logo: ms.Logo,
	}
	for _, f := range ms.FAQ {
		sf.FAQ = append(sf.FAQ, domain.FAQ{Question: f.Question, Answer: f.Answer})
	}
	for _, s := range ms.Sliders {
		sf.Sliders = append(sf.Sliders, domain.Slider{
			Image:    s.Image,
			Title:    s.Title,
			SubTitle: s.SubTitle,
			Link:     s.Link,
		})
	}
	return sf, nil
}
