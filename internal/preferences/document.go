package preferences

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is the aggregate built by the wizard. A nil section has never
// been filled in.
type Document struct {
	Dietary             *Dietary             `json:"dietary,omitempty"`
	Mobility            *Mobility            `json:"mobility,omitempty"`
	Interests           Interests            `json:"interests,omitzero"`
	Budget              *Budget              `json:"budget,omitempty"`
	Accommodation       *Accommodation       `json:"accommodation,omitempty"`
	ActivityComfort     *ActivityComfort     `json:"activityComfort,omitempty"`
	Transportation      *Transportation      `json:"transportation,omitempty"`
	TravelStyle         *TravelStyle         `json:"travelStyle,omitempty"`
	SpecialRequirements *SpecialRequirements `json:"specialRequirements,omitempty"`
}

type Dietary struct {
	Restrictions    []DietaryRestriction `json:"restrictions,omitempty"`
	Allergies       []string             `json:"allergies,omitempty"`
	Preferences     *DiningPreferences   `json:"preferences,omitempty"`
	ImportanceLevel *int                 `json:"importanceLevel,omitempty"`
	AdditionalNotes string               `json:"additionalNotes,omitempty"`
}

type DiningPreferences struct {
	Spicy        SpiceLevel `json:"spicy,omitempty"`
	LocalCuisine bool       `json:"localCuisine"`
	StreetFood   bool       `json:"streetFood"`
	FineDining   bool       `json:"fineDining"`
}

type Mobility struct {
	Level        MobilityLevel         `json:"level,omitempty"`
	Requirements *MobilityRequirements `json:"requirements,omitempty"`
	Assistance   *MobilityAssistance   `json:"assistance,omitempty"`
	Limitations  *MobilityLimitations  `json:"limitations,omitempty"`
}

type MobilityRequirements struct {
	WheelchairAccess bool `json:"wheelchairAccess"`
	ElevatorAccess   bool `json:"elevatorAccess"`
	Ramps            bool `json:"ramps"`
	LimitedStairs    bool `json:"limitedStairs"`
	RestAreas        bool `json:"restAreas"`
}

type MobilityAssistance struct {
	WalkingAid        bool `json:"walkingAid"`
	Wheelchair        bool `json:"wheelchair"`
	MobilityScooter   bool `json:"mobilityScooter"`
	PersonalAssistant bool `json:"personalAssistant"`
}

// MobilityLimitations holds walking distance in meters and standing time and
// rest frequency in minutes.
type MobilityLimitations struct {
	MaxWalkingDistance int `json:"maxWalkingDistance"`
	MaxStandingTime    int `json:"maxStandingTime"`
	RestFrequency      int `json:"restFrequency"`
}

// Interests maps each interest category to a slider value in [0,100].
type Interests map[InterestCategory]int

type Budget struct {
	Accommodation BudgetLevel       `json:"accommodation,omitempty"`
	Activities    BudgetLevel       `json:"activities,omitempty"`
	Dining        BudgetLevel       `json:"dining,omitempty"`
	Flexibility   BudgetFlexibility `json:"flexibility,omitempty"`
	Currency      string            `json:"currency,omitempty"`
	DailyBudget   *int              `json:"dailyBudget,omitempty"`
}

type Accommodation struct {
	Types           []AccommodationType  `json:"types,omitempty"`
	Amenities       []Amenity            `json:"amenities,omitempty"`
	Locations       []LocationPreference `json:"locations,omitempty"`
	MinStarRating   *int                 `json:"minStarRating,omitempty"`
	AdditionalNotes string               `json:"additionalNotes,omitempty"`
}

type ActivityComfort struct {
	MaxDuration         ActivityDuration     `json:"maxDuration,omitempty"`
	PreferredIntensity  PhysicalIntensity    `json:"preferredIntensity,omitempty"`
	RestDayFrequency    string               `json:"restDayFrequency,omitempty"`
	PreferredActivities []string             `json:"preferredActivities"`
	Limitations         *ActivityLimitations `json:"limitations,omitempty"`
	Levels              *ComfortLevels       `json:"levels,omitempty"`
}

type ActivityLimitations struct {
	MaxDailyActivities *int              `json:"maxDailyActivities,omitempty"`
	PreferredTimeOfDay string            `json:"preferredTimeOfDay,omitempty"`
	Weather            *WeatherAvoidance `json:"weather,omitempty"`
}

type WeatherAvoidance struct {
	AvoidRain        bool `json:"avoidRain"`
	AvoidExtremeHeat bool `json:"avoidExtremeHeat"`
	AvoidExtremeCold bool `json:"avoidExtremeCold"`
}

// ComfortLevels is the detailed comfort profile. Durations are in hours.
type ComfortLevels struct {
	MaxPhysicalIntensity     PhysicalIntensity   `json:"maxPhysicalIntensity,omitempty"`
	WeatherPreferences       []WeatherPreference `json:"weatherPreferences,omitempty"`
	CrowdPreferences         []CrowdLevel        `json:"crowdPreferences,omitempty"`
	TimingPreferences        []ActivityTiming    `json:"timingPreferences,omitempty"`
	ComfortableWithHeights   *bool               `json:"comfortableWithHeights,omitempty"`
	ComfortableWithWater     *bool               `json:"comfortableWithWater,omitempty"`
	ComfortableWithAnimals   *bool               `json:"comfortableWithAnimals,omitempty"`
	MaxActivityDuration      *int                `json:"maxActivityDuration,omitempty"`
	MinRestBetweenActivities *int                `json:"minRestBetweenActivities,omitempty"`
	AdditionalNotes          string              `json:"additionalNotes,omitempty"`
}

type Transportation struct {
	Modes         []TransportMode         `json:"modes,omitempty"`
	Requirements  *TransportRequirements  `json:"requirements,omitempty"`
	Accessibility *TransportAccessibility `json:"accessibility,omitempty"`
}

type TransportRequirements struct {
	DirectRoutes     bool `json:"directRoutes"`
	FlexibleDates    bool `json:"flexibleDates"`
	WindowSeat       bool `json:"windowSeat"`
	ExtraLegroom     bool `json:"extraLegroom"`
	PriorityBoarding bool `json:"priorityBoarding"`
	LuggageAllowance bool `json:"luggageAllowance"`
}

type TransportAccessibility struct {
	WheelchairAccess  bool `json:"wheelchairAccess"`
	AssistanceService bool `json:"assistanceService"`
	ServiceAnimal     bool `json:"serviceAnimal"`
	OxygenEquipment   bool `json:"oxygenEquipment"`
}

type TravelStyle struct {
	Pace      TravelPace      `json:"pace,omitempty"`
	GroupSize GroupSize       `json:"groupSize,omitempty"`
	Interests map[string]bool `json:"interests,omitempty"`
	Styles    []StyleTag      `json:"styles,omitempty"`
	Seasons   []Season        `json:"seasons,omitempty"`
}

type SpecialRequirements struct {
	Medical       string `json:"medical,omitempty"`
	Dietary       string `json:"dietary,omitempty"`
	Accessibility string `json:"accessibility,omitempty"`
	Other         string `json:"other,omitempty"`
}

// IsEmpty reports whether no section has been filled in.
func (d Document) IsEmpty() bool {
	for _, s := range Sections {
		if d.Has(s) {
			return false
		}
	}
	return true
}

// Has reports whether section s is present.
func (d Document) Has(s Section) bool {
	switch s {
	case SectionDietary:
		return d.Dietary != nil
	case SectionMobility:
		return d.Mobility != nil
	case SectionInterests:
		return d.Interests != nil
	case SectionBudget:
		return d.Budget != nil
	case SectionAccommodation:
		return d.Accommodation != nil
	case SectionActivityComfort:
		return d.ActivityComfort != nil
	case SectionTransportation:
		return d.Transportation != nil
	case SectionTravelStyle:
		return d.TravelStyle != nil
	case SectionSpecialRequirements:
		return d.SpecialRequirements != nil
	}
	return false
}

// PresentSections returns the filled-in sections in wizard order.
func (d Document) PresentSections() []Section {
	var out []Section
	for _, s := range Sections {
		if d.Has(s) {
			out = append(out, s)
		}
	}
	return out
}

// Clone returns a deep copy of d.
func (d Document) Clone() Document {
	raw, err := json.Marshal(d)
	if err != nil {
		// every field is JSON-safe; a failure here is a programming error
		panic(fmt.Sprintf("preferences: clone document: %v", err))
	}
	var out Document
	if err := json.Unmarshal(raw, &out); err != nil {
		panic(fmt.Sprintf("preferences: clone document: %v", err))
	}
	return out
}

// Equal reports whether a and b serialize identically.
func Equal(a, b Document) bool {
	ra, errA := json.Marshal(a)
	rb, errB := json.Marshal(b)
	return errA == nil && errB == nil && bytes.Equal(ra, rb)
}

// DecodeDocument strictly decodes a JSON document. Unknown keys and values
// of the wrong type are reported as *ValidationError.
func DecodeDocument(raw []byte) (Document, error) {
	var doc Document
	if len(bytes.TrimSpace(raw)) == 0 {
		return doc, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return Document{}, shapeError(err)
	}
	return doc, nil
}

// DecodeDocumentYAML decodes a YAML document using the same keys and strict
// rules as DecodeDocument.
func DecodeDocumentYAML(raw []byte) (Document, error) {
	var generic map[string]any
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return Document{}, &ValidationError{Field: "document", Message: fmt.Sprintf("Invalid YAML: %v", err)}
	}
	if generic == nil {
		return Document{}, nil
	}
	asJSON, err := json.Marshal(generic)
	if err != nil {
		return Document{}, &ValidationError{Field: "document", Message: fmt.Sprintf("Invalid YAML: %v", err)}
	}
	return DecodeDocument(asJSON)
}

func shapeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "document"
		}
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("Invalid value for %s: expected %s, got %s", field, typeErr.Type, typeErr.Value),
		}
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &ValidationError{Field: "document", Message: fmt.Sprintf("Malformed document: %v", err)}
	}
	msg := err.Error()
	if rest, ok := strings.CutPrefix(msg, "json: unknown field "); ok {
		name := strings.Trim(rest, `"`)
		return &ValidationError{Field: name, Message: fmt.Sprintf("Unknown preference field: %s", name)}
	}
	return &ValidationError{Field: "document", Message: msg}
}
