package preferences

import "slices"

// Section names a top-level group of preference fields. The values double
// as the JSON keys of a Document and as wizard step ids.
type Section string

const (
	SectionDietary             Section = "dietary"
	SectionMobility            Section = "mobility"
	SectionInterests           Section = "interests"
	SectionBudget              Section = "budget"
	SectionAccommodation       Section = "accommodation"
	SectionActivityComfort     Section = "activityComfort"
	SectionTransportation      Section = "transportation"
	SectionTravelStyle         Section = "travelStyle"
	SectionSpecialRequirements Section = "specialRequirements"
)

// Sections lists every section in wizard order.
var Sections = []Section{
	SectionDietary,
	SectionMobility,
	SectionInterests,
	SectionBudget,
	SectionAccommodation,
	SectionActivityComfort,
	SectionTransportation,
	SectionTravelStyle,
	SectionSpecialRequirements,
}

// ParseSection resolves a section name. "travel" is accepted as an alias for
// travelStyle.
func ParseSection(name string) (Section, bool) {
	if name == "travel" {
		return SectionTravelStyle, true
	}
	s := Section(name)
	return s, slices.Contains(Sections, s)
}

const MaxFreeTextLength = 500

type DietaryRestriction string

const (
	DietNone        DietaryRestriction = "none"
	DietVegetarian  DietaryRestriction = "vegetarian"
	DietVegan       DietaryRestriction = "vegan"
	DietPescatarian DietaryRestriction = "pescatarian"
	DietGlutenFree  DietaryRestriction = "gluten-free"
	DietDairyFree   DietaryRestriction = "dairy-free"
	DietNutFree     DietaryRestriction = "nut-free"
	DietHalal       DietaryRestriction = "halal"
	DietKosher      DietaryRestriction = "kosher"
)

var DietaryRestrictions = []DietaryRestriction{
	DietNone, DietVegetarian, DietVegan, DietPescatarian, DietGlutenFree,
	DietDairyFree, DietNutFree, DietHalal, DietKosher,
}

type SpiceLevel string

const (
	SpiceNone   SpiceLevel = "none"
	SpiceMild   SpiceLevel = "mild"
	SpiceMedium SpiceLevel = "medium"
	SpiceHot    SpiceLevel = "hot"
)

var SpiceLevels = []SpiceLevel{SpiceNone, SpiceMild, SpiceMedium, SpiceHot}

type MobilityLevel string

const (
	MobilityFullyAble          MobilityLevel = "fully_able"
	MobilityLightAssistance    MobilityLevel = "light_assistance"
	MobilityModerateAssistance MobilityLevel = "moderate_assistance"
	MobilityWheelchair         MobilityLevel = "wheelchair"
)

var MobilityLevels = []MobilityLevel{
	MobilityFullyAble, MobilityLightAssistance, MobilityModerateAssistance, MobilityWheelchair,
}

type InterestCategory string

const (
	InterestCulture    InterestCategory = "culture"
	InterestNature     InterestCategory = "nature"
	InterestAdventure  InterestCategory = "adventure"
	InterestRelaxation InterestCategory = "relaxation"
	InterestFood       InterestCategory = "food"
	InterestShopping   InterestCategory = "shopping"
	InterestNightlife  InterestCategory = "nightlife"
	InterestHistory    InterestCategory = "history"
)

var InterestCategories = []InterestCategory{
	InterestCulture, InterestNature, InterestAdventure, InterestRelaxation,
	InterestFood, InterestShopping, InterestNightlife, InterestHistory,
}

const (
	SliderMin = 0
	SliderMax = 100
)

type BudgetLevel string

const (
	BudgetLow      BudgetLevel = "budget"
	BudgetModerate BudgetLevel = "moderate"
	BudgetLuxury   BudgetLevel = "luxury"
)

var BudgetLevels = []BudgetLevel{BudgetLow, BudgetModerate, BudgetLuxury}

type BudgetFlexibility string

const (
	FlexibilityStrict   BudgetFlexibility = "strict"
	FlexibilityModerate BudgetFlexibility = "moderate"
	FlexibilityFlexible BudgetFlexibility = "flexible"
)

var BudgetFlexibilities = []BudgetFlexibility{FlexibilityStrict, FlexibilityModerate, FlexibilityFlexible}

var Currencies = []string{"USD", "EUR", "GBP", "JPY", "AUD", "CAD"}

type AccommodationType string

const (
	StayHotel           AccommodationType = "hotel"
	StayHostel          AccommodationType = "hostel"
	StayApartment       AccommodationType = "apartment"
	StayResort          AccommodationType = "resort"
	StayBedAndBreakfast AccommodationType = "bed-and-breakfast"
	StayCamping         AccommodationType = "camping"
	StayGlamping        AccommodationType = "glamping"
	StayHomestay        AccommodationType = "homestay"
	StayVacationRental  AccommodationType = "vacation-rental"
)

var AccommodationTypes = []AccommodationType{
	StayHotel, StayHostel, StayApartment, StayResort, StayBedAndBreakfast,
	StayCamping, StayGlamping, StayHomestay, StayVacationRental,
}

type Amenity string

var Amenities = []Amenity{
	"wifi", "air-conditioning", "pool", "gym", "breakfast-included",
	"private-bathroom", "kitchen", "parking", "pet-friendly",
}

type LocationPreference string

var LocationPreferences = []LocationPreference{
	"city-center", "near-attractions", "quiet-area", "beachfront",
	"mountain-view", "countryside", "near-public-transport",
}

type PhysicalIntensity string

const (
	IntensitySedentary PhysicalIntensity = "sedentary"
	IntensityLight     PhysicalIntensity = "light"
	IntensityModerate  PhysicalIntensity = "moderate"
	IntensityVigorous  PhysicalIntensity = "vigorous"
	IntensityExtreme   PhysicalIntensity = "extreme"
)

var PhysicalIntensities = []PhysicalIntensity{
	IntensitySedentary, IntensityLight, IntensityModerate, IntensityVigorous, IntensityExtreme,
}

// ActivityDuration is the maximum number of hours per day spent on
// activities, bucketed.
type ActivityDuration string

const DurationExtended ActivityDuration = "10+"

var ActivityDurations = []ActivityDuration{"1-2", "3-5", "6-8", "9-10", DurationExtended}

var RestDayFrequencies = []string{"none", "1-2", "3-4", "5+"}

var TimesOfDay = []string{"morning", "afternoon", "evening", "flexible"}

const (
	MinDailyActivities = 1
	MaxDailyActivities = 10
)

type WeatherPreference string

var WeatherPreferences = []WeatherPreference{
	"hot", "warm", "mild", "cool", "cold", "rainy", "snowy", "sunny", "any",
}

type CrowdLevel string

var CrowdLevels = []CrowdLevel{"isolated", "uncrowded", "moderate", "busy", "very-crowded"}

type ActivityTiming string

var ActivityTimings = []ActivityTiming{
	"early-morning", "morning", "afternoon", "evening", "late-night", "any-time",
}

type TransportMode string

var TransportModes = []TransportMode{"plane", "train", "bus", "car", "boat", "bicycle", "walking"}

type TravelPace string

const (
	PaceRelaxed  TravelPace = "relaxed"
	PaceModerate TravelPace = "moderate"
	PaceFast     TravelPace = "fast"
)

var TravelPaces = []TravelPace{PaceRelaxed, PaceModerate, PaceFast}

type GroupSize string

var GroupSizes = []GroupSize{"solo", "couple", "family", "small_group", "large_group"}

type StyleTag string

var StyleTags = []StyleTag{"luxury", "adventure", "cultural", "nature", "urban", "rural", "beach", "mountain"}

type Season string

var Seasons = []Season{"spring", "summer", "fall", "winter"}
