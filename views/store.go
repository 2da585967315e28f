package views

import (
	"strings"

	"github.com/zahabco/gold-dashboard/models"
)

// StoreLinks holds the outbound links derived from store info. A field is
// empty when its source field was empty, which tells the page to leave the
// previous region content untouched.
type StoreLinks struct {
	PhoneLink     string
	WhatsappLink  string
	InstagramLink string
	FacebookLink  string
}

// BuildStoreLinks normalizes the optional social fields into outbound links:
// phone numbers keep digits only, handles drop a leading "@".
func BuildStoreLinks(info models.StoreInfo) StoreLinks {
	links := StoreLinks{}
	if info.Phone != "" {
		links.PhoneLink = "tel:" + digitsOnly(info.Phone)
	}
	if info.Whatsapp != "" {
		links.WhatsappLink = "https://wa.me/" + digitsOnly(info.Whatsapp)
	}
	if info.Instagram != "" {
		links.InstagramLink = "https://instagram.com/" + strings.TrimPrefix(info.Instagram, "@")
	}
	if info.Facebook != "" {
		links.FacebookLink = "https://facebook.com/" + strings.TrimPrefix(info.Facebook, "@")
	}
	return links
}

func digitsOnly(value string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, value)
}
