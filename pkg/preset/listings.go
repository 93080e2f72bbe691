package preset

import (
	"github.com/walteh/reshape/pkg/config"
)

// ListingsTarget is the route handler file the listings preset rewrites
const ListingsTarget = "backend/src/routes/listings.rs"

// hostListingsMatch is the output loop of get_host_listings before the
// marketplace shape existed.
const hostListingsMatch = `
let mut out: Vec<ListingWithDetails> = Vec::with_capacity(listings.len());
for l in listings {
    let sid = l.id.clone();
    let safety_items: Vec<String> = l
        .safety_devices
        .as_ref()
        .and_then(|s| serde_json::from_str(s).ok())
        .unwrap_or_default();
    out.push(ListingWithDetails {
        listing: l,
        amenities: Vec::new(),
        photos: photos_map.remove(&sid).unwrap_or_default(),
        videos: Vec::new(),
        safety_items,
        unavailable_dates: Vec::new(),
        contact_phone: contact_phone.clone(),
        host_avatar: host_avatar.clone(),
        host_username: None,
    });
}`

const hostListingsReplace = `let mut out: Vec<MarketplaceListing> = Vec::with_capacity(listings.len());
    for l in listings {
        let sid = l.id.clone();
        out.push(MarketplaceListing {
            listing: MarketplaceListingInner {
                id: l.id,
                host_id,
                title: l.title,
                city: l.city,
                price_per_night: l.price_per_night,
                currency: l.currency,
                property_type: l.property_type,
            },
            photos: photos_map.remove(&sid).unwrap_or_default(),
            host_avatar: host_avatar.clone(),
            host_username: None,
        });
    }`

// myListingsMatch is the same loop in get_my_listings, where the profile
// fields are never populated.
const myListingsMatch = `
let mut out: Vec<ListingWithDetails> = Vec::with_capacity(listings.len());
for l in listings {
    let sid = l.id.clone();
    let safety_items: Vec<String> = l
        .safety_devices
        .as_ref()
        .and_then(|s| serde_json::from_str(s).ok())
        .unwrap_or_default();
    out.push(ListingWithDetails {
        listing: l,
        amenities: Vec::new(),
        photos: photos_map.remove(&sid).unwrap_or_default(),
        videos: Vec::new(),
        safety_items,
        unavailable_dates: Vec::new(),
        contact_phone: None,
        host_avatar: None,
        host_username: None,
    });
}`

const myListingsReplace = `let mut out: Vec<MarketplaceListing> = Vec::with_capacity(listings.len());
    for l in listings {
        let sid = l.id.clone();
        out.push(MarketplaceListing {
            listing: MarketplaceListingInner {
                id: l.id,
                host_id: user_id,
                title: l.title,
                city: l.city,
                price_per_night: l.price_per_night,
                currency: l.currency,
                property_type: l.property_type,
            },
            photos: photos_map.remove(&sid).unwrap_or_default(),
            host_avatar: None,
            host_username: None,
        });
    }`

// Listings collapses the ListingWithDetails output loops of the listings
// routes into MarketplaceListing values.
func Listings() *config.Config {
	return &config.Config{
		Target: ListingsTarget,
		Rules: []config.Rule{
			{
				Name:    "host_listings",
				Kind:    "whitespace",
				Match:   hostListingsMatch,
				Replace: hostListingsReplace,
				Files:   "**/*.rs",
			},
			{
				Name:    "my_listings",
				Kind:    "whitespace",
				Match:   myListingsMatch,
				Replace: myListingsReplace,
				Files:   "**/*.rs",
			},
		},
	}
}
