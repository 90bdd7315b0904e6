package preferences

// CrossFieldRule rejects a combination of values spanning two sections. The
// rule only runs when both sections are present.
type CrossFieldRule struct {
	Name     string
	Sections [2]Section
	Fields   []string
	Message  string
	Violated func(doc Document) bool
}

// CrossFieldRules is evaluated in order; the first violation wins.
var CrossFieldRules = []CrossFieldRule{
	{
		Name:     "luxury-long-duration",
		Sections: [2]Section{SectionBudget, SectionActivityComfort},
		Fields:   []string{"budget.accommodation", "activityComfort.maxDuration"},
		Message:  "Luxury accommodation with extended activity duration may not be suitable",
		Violated: func(d Document) bool {
			return d.Budget.Accommodation == BudgetLuxury && d.ActivityComfort.MaxDuration == DurationExtended
		},
	},
	{
		Name:     "budget-extreme-intensity",
		Sections: [2]Section{SectionBudget, SectionActivityComfort},
		Fields:   []string{"budget.activities", "activityComfort.preferredIntensity"},
		Message:  "Extreme activities may not be suitable for budget travel",
		Violated: func(d Document) bool {
			return d.Budget.Activities == BudgetLow && d.ActivityComfort.PreferredIntensity == IntensityExtreme
		},
	},
	{
		Name:     "wheelchair-long-duration",
		Sections: [2]Section{SectionMobility, SectionActivityComfort},
		Fields:   []string{"mobility.level", "activityComfort.maxDuration"},
		Message:  "Extended activity duration may not be suitable for wheelchair users",
		Violated: func(d Document) bool {
			return d.Mobility.Level == MobilityWheelchair && d.ActivityComfort.MaxDuration == DurationExtended
		},
	},
	{
		Name:     "wheelchair-extreme-intensity",
		Sections: [2]Section{SectionMobility, SectionActivityComfort},
		Fields:   []string{"mobility.level", "activityComfort.preferredIntensity"},
		Message:  "Extreme activities may not be suitable for wheelchair users",
		Violated: func(d Document) bool {
			return d.Mobility.Level == MobilityWheelchair && d.ActivityComfort.PreferredIntensity == IntensityExtreme
		},
	},
	{
		Name:     "restrictions-fast-pace",
		Sections: [2]Section{SectionDietary, SectionTravelStyle},
		Fields:   []string{"dietary.restrictions", "travelStyle.pace"},
		Message:  "Multiple dietary restrictions may be challenging with fast-paced travel",
		Violated: func(d Document) bool {
			return len(d.Dietary.Restrictions) > 2 && d.TravelStyle.Pace == PaceFast
		},
	},
	{
		Name:     "fast-pace-long-duration",
		Sections: [2]Section{SectionTravelStyle, SectionActivityComfort},
		Fields:   []string{"travelStyle.pace", "activityComfort.maxDuration"},
		Message:  "Extended activity duration may not be suitable for fast-paced travel",
		Violated: func(d Document) bool {
			return d.TravelStyle.Pace == PaceFast && d.ActivityComfort.MaxDuration == DurationExtended
		},
	},
	{
		Name:     "relaxed-pace-extreme-intensity",
		Sections: [2]Section{SectionTravelStyle, SectionActivityComfort},
		Fields:   []string{"travelStyle.pace", "activityComfort.preferredIntensity"},
		Message:  "Extreme activities may not be suitable for relaxed travel pace",
		Violated: func(d Document) bool {
			return d.TravelStyle.Pace == PaceRelaxed && d.ActivityComfort.PreferredIntensity == IntensityExtreme
		},
	},
}

func (r CrossFieldRule) applies(doc Document) bool {
	return doc.Has(r.Sections[0]) && doc.Has(r.Sections[1])
}

func (r CrossFieldRule) conflict() *ConflictError {
	return &ConflictError{Rule: r.Name, Fields: r.Fields, Message: r.Message}
}

// ValidateCrossField returns the first violated cross-field rule, or nil.
func ValidateCrossField(doc Document) error {
	for _, r := range CrossFieldRules {
		if r.applies(doc) && r.Violated(doc) {
			return r.conflict()
		}
	}
	return nil
}

// CrossFieldViolations returns every violated rule in evaluation order.
func CrossFieldViolations(doc Document) []*ConflictError {
	var out []*ConflictError
	for _, r := range CrossFieldRules {
		if r.applies(doc) && r.Violated(doc) {
			out = append(out, r.conflict())
		}
	}
	return out
}

// Validate runs every section validator and then the cross-field rules.
func Validate(doc Document) error {
	if err := ValidateSections(doc); err != nil {
		return err
	}
	return ValidateCrossField(doc)
}
