package wizard

import "tripwise/internal/preferences"

type Step struct {
	ID          preferences.Section `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
}

// DefaultSteps is one step per preference section, in wizard order.
var DefaultSteps = []Step{
	{preferences.SectionDietary, "Dietary Preferences", "Tell us about your dietary preferences and restrictions"},
	{preferences.SectionMobility, "Mobility & Accessibility", "Help us understand your mobility needs"},
	{preferences.SectionInterests, "Interests & Activities", "What activities interest you the most?"},
	{preferences.SectionBudget, "Budget Preferences", "Set your budget preferences for different aspects of travel"},
	{preferences.SectionAccommodation, "Accommodation Preferences", "Tell us about your accommodation preferences"},
	{preferences.SectionActivityComfort, "Activity Comfort Levels", "Set your comfort levels for various activities"},
	{preferences.SectionTransportation, "Transportation Preferences", "How do you prefer to get around?"},
	{preferences.SectionTravelStyle, "Travel Style", "What's your preferred travel style?"},
	{preferences.SectionSpecialRequirements, "Special Requirements", "Any special requirements we should know about?"},
}
