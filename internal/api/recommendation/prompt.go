package recommendation

import "fmt"

const recommendationSystemPrompt = "You are a Philippine travel expert. Provide accurate, helpful travel recommendations in JSON format."

const itinerarySystemPrompt = "You are a Philippine travel expert creating detailed itineraries."

const chatSystemPrompt = "You are a friendly Philippine travel assistant for the GalaGram travel guide. Help travelers with destinations, food, culture and practical tips across the Philippines."

func recommendationPrompt(category, destination string) string {
	return fmt.Sprintf(`Suggest 5 popular %s in %s, Philippines. For each suggestion, provide:
    - Name
    - Brief description (2-3 sentences)
    - Rating (4.0-5.0)
    - Location/Province

    Format as JSON array with objects containing: name, description, rating, location`, category, destination)
}

func itineraryPrompt(destination string, days int) string {
	return fmt.Sprintf(`Create a detailed %d-day itinerary for %s, Philippines. Include:
    - Daily schedule with times
    - Must-visit attractions
    - Local food recommendations
    - Cultural experiences
    - Transportation tips

    Make it practical and enjoyable for travelers.`, days, destination)
}
