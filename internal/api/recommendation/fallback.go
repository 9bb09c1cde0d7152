package recommendation

import (
	"fmt"
	"strings"

	"github.com/galagram/galagram-api/internal/types"
)

// Static records served whenever live data is unavailable or unusable.
// Ratings are quoted strings on purpose: the live model returns them that way
// too, and the normalization pipeline owns the parsing.

var fallbackDestinations = []types.RawRecommendation{
	{
		ID:          "fallback-1",
		Name:        "El Nido, Palawan",
		Description: "Stunning limestone cliffs, crystal-clear lagoons, and pristine beaches make El Nido a tropical paradise.",
		Rating:      "4.8",
		Image:       "https://images.unsplash.com/photo-1559827260-dc66d52bef19?w=400&h=300&fit=crop",
		Location:    "Palawan",
	},
	{
		ID:          "fallback-2",
		Name:        "Chocolate Hills, Bohol",
		Description: "Over 1,200 cone-shaped hills that turn chocolate brown during dry season, creating a unique landscape.",
		Rating:      "4.6",
		Image:       "https://images.unsplash.com/photo-1507551116824-9b1f52b51ab1?w=400&h=300&fit=crop",
		Location:    "Bohol",
	},
	{
		ID:          "fallback-3",
		Name:        "Mayon Volcano, Albay",
		Description: "Perfect cone-shaped active volcano offering ATV tours, hiking trails, and hot springs nearby.",
		Rating:      "4.5",
		Image:       "https://images.unsplash.com/photo-1578662996442-48f60103fc96?w=400&h=300&fit=crop",
		Location:    "Albay",
	},
	{
		ID:          "fallback-4",
		Name:        "White Beach, Boracay",
		Description: "World-famous 4-kilometer stretch of powdery white sand beach with vibrant nightlife and water sports.",
		Rating:      "4.7",
		Image:       "https://images.unsplash.com/photo-1559827260-dc66d52bef19?w=400&h=300&fit=crop",
		Location:    "Aklan",
	},
	{
		ID:          "fallback-5",
		Name:        "Banaue Rice Terraces",
		Description: "Ancient rice terraces carved into mountain slopes, often called the Eighth Wonder of the World.",
		Rating:      "4.9",
		Image:       "https://images.unsplash.com/photo-1551509134-eb8a0c7faa5d?w=400&h=300&fit=crop",
		Location:    "Ifugao",
	},
	{
		ID:          "fallback-6",
		Name:        "Lucban, Quezon",
		Description: "Famous for its colorful Pahiyas Festival celebrated every May 15th, where houses are decorated with vibrant kiping (leaf-shaped rice wafers), fruits, vegetables, and handicrafts to honor San Isidro Labrador, the patron saint of farmers. The town is also known for its delicious longganisa sausages and pancit habhab noodles.",
		Rating:      "4.6",
		Image:       "https://images.pexels.com/photos/2675268/pexels-photo-2675268.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=1",
		Location:    "Quezon",
	},
}

var fallbackRestaurants = []types.RawRecommendation{
	{
		ID:          "restaurant-1",
		Name:        "Manam Comfort Filipino",
		Description: "Modern Filipino comfort food with traditional flavors and contemporary presentation.",
		Rating:      "4.5",
		Image:       "https://images.unsplash.com/photo-1555939594-58d7cb561ad1?w=400&h=300&fit=crop",
		Location:    "Manila",
	},
	{
		ID:          "restaurant-2",
		Name:        "La Cocina de Tita Moning",
		Description: "Authentic Ilocano cuisine served in a traditional setting with family recipes.",
		Rating:      "4.7",
		Image:       "https://images.unsplash.com/photo-1414235077428-338989a2e8c0?w=400&h=300&fit=crop",
		Location:    "Vigan",
	},
	{
		ID:          "restaurant-3",
		Name:        "The Pig & Palm",
		Description: "Fine dining restaurant featuring innovative Filipino cuisine with international influences.",
		Rating:      "4.8",
		Image:       "https://images.unsplash.com/photo-1517248135467-4c7edcad34c4?w=400&h=300&fit=crop",
		Location:    "Cebu",
	},
	{
		ID:          "restaurant-4",
		Name:        "Buddy's Pancit Lucban",
		Description: "Famous for authentic Lucban longganisa and the traditional pancit habhab (noodles eaten directly from a banana leaf without utensils).",
		Rating:      "4.6",
		Image:       "https://images.unsplash.com/photo-1455619452474-d2be8b1e70cd?w=400&h=300&fit=crop",
		Location:    "Lucban, Quezon",
	},
	{
		ID:          "restaurant-5",
		Name:        "Dealo Koffee Lucban",
		Description: "Cozy café serving local coffee varieties and traditional Lucban snacks like broas and tikoy. Perfect spot to relax after exploring the Pahiyas Festival.",
		Rating:      "4.5",
		Image:       "https://images.unsplash.com/photo-1453614512568-c4024d13c247?w=400&h=300&fit=crop",
		Location:    "Lucban, Quezon",
	},
}

var fallbackAccommodations = []types.RawRecommendation{
	{
		ID:          "hotel-1",
		Name:        "The Peninsula Manila",
		Description: "Luxury hotel in Makati with elegant rooms, world-class service, and excellent dining options.",
		Rating:      "4.9",
		Image:       "https://images.unsplash.com/photo-1566073771259-6a8506099945?w=400&h=300&fit=crop",
		Location:    "Manila",
	},
	{
		ID:          "hotel-2",
		Name:        "Shangri-La Boracay",
		Description: "Beachfront resort with private beach access, multiple pools, and stunning sunset views.",
		Rating:      "4.8",
		Image:       "https://images.unsplash.com/photo-1551882547-ff40c63fe5fa?w=400&h=300&fit=crop",
		Location:    "Boracay",
	},
	{
		ID:          "hotel-3",
		Name:        "El Nido Resorts",
		Description: "Eco-luxury resort on private island with overwater villas and pristine marine sanctuary.",
		Rating:      "4.7",
		Image:       "https://images.unsplash.com/photo-1520250497591-112f2f40a3f4?w=400&h=300&fit=crop",
		Location:    "Palawan",
	},
	{
		ID:          "hotel-4",
		Name:        "Casa San Pablo",
		Description: "Charming country retreat in San Pablo, close to Lucban. Features rustic cottages, lush gardens, and artistic ambiance.",
		Rating:      "4.5",
		Image:       "https://images.unsplash.com/photo-1520250497591-112f2f40a3f4?w=400&h=300&fit=crop",
		Location:    "Quezon Province",
	},
	{
		ID:          "hotel-5",
		Name:        "Batis Aramin Resort & Hotel",
		Description: "Tranquil mountain resort near Lucban with stunning views of Mt. Banahaw, spacious rooms, and a refreshing spring-fed pool. Perfect base for exploring the Pahiyas Festival.",
		Rating:      "4.6",
		Image:       "https://images.unsplash.com/photo-1566073771259-6a8506099945?w=400&h=300&fit=crop",
		Location:    "Lucban, Quezon",
	},
}

// FallbackFor picks the static table matching the category hint by keyword.
// Unrecognized categories get the general destination set.
func FallbackFor(category string) []types.RawRecommendation {
	c := strings.ToLower(category)
	switch {
	case strings.Contains(c, "food"), strings.Contains(c, "restaurant"):
		return fallbackRestaurants
	case strings.Contains(c, "stay"), strings.Contains(c, "hotel"), strings.Contains(c, "accommodation"):
		return fallbackAccommodations
	default:
		return fallbackDestinations
	}
}

// cannedChatReply answers a free-form travel question from the keyword table
// used when no live credential is configured.
func cannedChatReply(lastMessage string) string {
	m := strings.ToLower(lastMessage)
	switch {
	case strings.Contains(m, "lucban"), strings.Contains(m, "quezon"), strings.Contains(m, "pahiyas"):
		return "Lucban in Quezon Province is famous for the colorful Pahiyas Festival held every May 15th. During this vibrant festival, houses are decorated with colorful kiping (leaf-shaped rice wafers), fruits, vegetables, and handicrafts to honor San Isidro Labrador, the patron saint of farmers. The town is known for its delicious local cuisine including Lucban longganisa (sausage) and pancit habhab (noodles eaten directly from banana leaves). The nearby Mt. Banahaw is considered a sacred mountain and attracts spiritual pilgrims. The best time to visit is during the Pahiyas Festival when the whole town transforms into a colorful artistic display, but Lucban is also charming year-round with its cool climate, colonial architecture, and friendly locals."
	case strings.Contains(m, "boracay"):
		return "Boracay is famous for its White Beach, a 4-kilometer stretch of pristine white sand. The best time to visit is during the dry season (November to April). Popular activities include island hopping, parasailing, and enjoying the vibrant nightlife. Don't miss the stunning sunsets at Station 1!"
	case strings.Contains(m, "palawan"):
		return "Palawan is known as the \"Last Frontier\" of the Philippines. El Nido and Coron are must-visit destinations with stunning lagoons and limestone cliffs. The Underground River in Puerto Princesa is a UNESCO World Heritage site. Best visited during dry season for island hopping and diving."
	case strings.Contains(m, "food"), strings.Contains(m, "eat"):
		return "Filipino cuisine is diverse and flavorful! Must-try dishes include adobo (marinated meat), lechon (roasted pig), sinigang (sour soup), and halo-halo (mixed dessert). Each region has its specialties - try longganisa in Vigan, lechon in Cebu, and fresh seafood in coastal areas. In Lucban, Quezon, don't miss the local longganisa and pancit habhab!"
	default:
		return "I'm here to help you explore the Philippines! I can provide information about destinations like Boracay, Palawan, Bohol, Lucban, and more. I can also suggest local foods, activities, and travel tips. What would you like to know about Philippine travel?"
	}
}

// cannedItinerary returns the hand-authored plan for destinations that have
// one, or a generic template otherwise.
func cannedItinerary(destination string) string {
	if strings.Contains(strings.ToLower(destination), "lucban") {
		return lucbanItinerary
	}
	return fmt.Sprintf(genericItineraryTemplate, destination)
}

const lucbanItinerary = `Day 1: Arrival and Lucban Town Exploration
9:00 AM: Arrive in Lucban, Quezon
10:00 AM: Check into your accommodation
11:00 AM: Visit Lucban Church (Basilica of St. Louis of Toulouse)
12:30 PM: Lunch at Buddy's Pancit Lucban - try the famous pancit habhab and Lucban longganisa
2:00 PM: Walking tour of colonial houses and heritage sites
4:00 PM: Visit local handicraft shops for souvenir shopping
6:00 PM: Dinner at Dealo Koffee Lucban for local specialties
8:00 PM: Evening relaxation at your accommodation

Day 2: Nature and Cultural Immersion
7:30 AM: Breakfast at your hotel
8:30 AM: Day trip to nearby Kamay ni Hesus Shrine
10:30 AM: Visit to local kiping makers to learn about this rice-wafer craft
12:00 PM: Farm-to-table lunch experience at a local restaurant
2:00 PM: Explore Barangay Kulapi's rural scenery and rice fields
4:00 PM: Visit a local bakery to try Lucban's famous broas (ladyfingers)
6:00 PM: Dinner featuring Lucban's traditional dishes
8:00 PM: Cultural show or local music performance (if available)

Day 3: Mountain Adventure and Departure
7:00 AM: Early breakfast
8:00 AM: Half-day excursion to the foothills of Mt. Banahaw
12:00 PM: Farewell lunch at a local restaurant
2:00 PM: Last-minute shopping for local products (longganisa, broas, handicrafts)
4:00 PM: Departure from Lucban

Note: If visiting during May, adjust your itinerary to center around the Pahiyas Festival on May 15th, which features colorfully decorated houses, parades, cultural performances, and food fairs.`

const genericItineraryTemplate = `Day 1: Arrival and City Tour
9:00 AM: Arrive in %s
11:00 AM: Check into hotel
1:00 PM: Local lunch and city exploration
3:00 PM: Visit main attractions
6:00 PM: Sunset viewing
8:00 PM: Traditional dinner

Day 2: Cultural Experience
8:00 AM: Breakfast
9:00 AM: Cultural sites and museums
12:00 PM: Local market visit
2:00 PM: Traditional activities
5:00 PM: Local cuisine tasting
7:00 PM: Evening entertainment

Day 3: Nature and Adventure
7:00 AM: Early breakfast
8:00 AM: Nature excursion
12:00 PM: Picnic lunch
2:00 PM: Adventure activities
5:00 PM: Relaxation time
7:00 PM: Farewell dinner`
