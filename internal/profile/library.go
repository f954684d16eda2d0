package profile

// Builtin persona and company records used when no profile file is supplied.
// Values mirror the stress-test roster the production agent is exercised
// against.

func builtinPersonas() map[string]*Persona {
	return map[string]*Persona{
		"worried_parent": {
			Key:          "worried_parent",
			Name:         "Sarah Johnson",
			Email:        "sarah.johnson@email.com",
			Type:         "Family Vacation Planner",
			Traits:       []string{"detail-oriented", "safety-conscious", "forgetful", "thorough"},
			GroupSize:    4,
			ChildrenAges: []int{12, 8},
			Concerns:     []string{"child safety", "food allergies", "medical facilities", "kid-friendly activities"},
			Interests:    []string{"cultural experiences", "safe activities", "educational tours"},
			BudgetMin:    4000,
			BudgetMax:    6000,
			Destination:  "Chile",
			TravelDates:  "July 15-22, 2024",
			SpecialRequirements: []string{
				"son has severe nut allergy",
				"daughter is vegetarian",
			},
			CommunicationStyle: "polite but anxious, asks lots of questions",
			Quirks: Quirks{
				ForgetsDetails:    true,
				AsksManyQuestions: true,
				ResponseDelay:     DelayMedium,
				DecisionSpeed:     "slow",
			},
		},
		"adventure_couple": {
			Key:                 "adventure_couple",
			Name:                "Mike and Lisa Chen",
			Email:               "mlchen.adventures@gmail.com",
			Type:                "Adventure Seekers",
			Traits:              []string{"spontaneous", "active", "flexible", "enthusiastic"},
			GroupSize:           2,
			Concerns:            []string{"unique experiences", "off-beaten-path", "photography spots"},
			Interests:           []string{"extreme sports", "hiking", "photography"},
			BudgetMin:           3000,
			BudgetMax:           4000,
			Destination:         "Chile",
			TravelDates:         "September 5-15, 2024",
			SpecialRequirements: []string{"want extreme sports", "prefer boutique hotels"},
			CommunicationStyle:  "casual and enthusiastic, uses emojis",
			Quirks: Quirks{
				ResponseDelay: DelayFast,
				DecisionSpeed: "fast",
			},
		},
		"budget_backpacker": {
			Key:                 "budget_backpacker",
			Name:                "Emma Thompson",
			Email:               "emma.backpacks@proton.me",
			Type:                "Solo Budget Traveler",
			Traits:              []string{"frugal", "independent", "experienced", "negotiator"},
			GroupSize:           1,
			Concerns:            []string{"costs", "hostels", "public transport", "meeting other travelers"},
			Interests:           []string{"hiking", "local cuisine", "hostels"},
			BudgetMin:           1000,
			BudgetMax:           1500,
			Destination:         "Chile",
			TravelDates:         "May 1-14, 2024",
			SpecialRequirements: []string{"vegan diet", "female-only dorms preferred"},
			CommunicationStyle:  "direct, always asking about cheaper options",
			Quirks: Quirks{
				AsksManyQuestions: true,
				ResponseDelay:     DelaySlow,
				DecisionSpeed:     "very_slow",
			},
		},
		"corporate_planner": {
			Key:                 "corporate_planner",
			Name:                "David Martinez",
			Email:               "d.martinez@techcorp.com",
			Type:                "Corporate Event Planner",
			Traits:              []string{"professional", "demanding", "organized", "impatient"},
			GroupSize:           15,
			Concerns:            []string{"meeting facilities", "wifi quality", "airport transfers", "team building"},
			Interests:           []string{"efficiency", "comfort", "networking"},
			BudgetMin:           25000,
			BudgetMax:           30000,
			Destination:         "Chile",
			TravelDates:         "August 10-13, 2024",
			SpecialRequirements: []string{"conference room for 15", "some vegetarians in group"},
			CommunicationStyle:  "formal, bullet points, expects quick responses",
			Quirks: Quirks{
				AsksManyQuestions: true,
				ResponseDelay:     DelayVeryFast,
				DecisionSpeed:     "medium",
			},
		},
		"retired_couple": {
			Key:                 "retired_couple",
			Name:                "Robert and Patricia Williams",
			Email:               "williams.travels@aol.com",
			Type:                "Luxury Seniors",
			Traits:              []string{"leisurely", "comfort-focused", "chatty", "particular"},
			GroupSize:           2,
			Concerns:            []string{"comfort", "accessibility", "medical care", "pace of tour"},
			Interests:           []string{"historical sites", "gardens", "easy walking"},
			BudgetMin:           8000,
			BudgetMax:           12000,
			Destination:         "Chile",
			TravelDates:         "October 1-14, 2024",
			SpecialRequirements: []string{"mobility assistance", "ground floor rooms", "diabetic-friendly meals"},
			CommunicationStyle:  "very polite, lengthy emails, shares personal stories",
			Quirks: Quirks{
				ForgetsDetails:    true,
				AsksManyQuestions: true,
				ResponseDelay:     DelayVerySlow,
				DecisionSpeed:     "slow",
			},
		},
	}
}

func builtinCompanies() map[string]*Company {
	return map[string]*Company{
		"luxury_chile": {
			Key:          "luxury_chile",
			Name:         "Chile Luxury Escapes",
			AgentName:    "Sofia Vargas",
			Type:         "luxury",
			Specialties:  []string{"5-star hotels", "private tours", "gourmet dining", "helicopter tours"},
			Destinations: []string{"Santiago", "Wine Valleys", "Atacama", "Patagonia"},
			SellingPoints: []string{
				"Exclusive access to private vineyards",
				"Michelin-starred dining experiences",
				"Personal butler service",
			},
			Pricing: PricingRules{
				BaseRatePerPersonPerDay: 600,
				DurationDays:            7,
				ChildDiscount:           0.2,
				ChildAgeThreshold:       12,
				MaxDiscount:             0.10,
				AddOns: []AddOn{
					{Name: "Private airport transfers", Price: 400},
					{Name: "Premium travel insurance", Price: 350},
					{Name: "Private guided tours", Price: 1200},
				},
				DietaryHandlingFee: 150,
			},
		},
		"chile_adventures": {
			Key:          "chile_adventures",
			Name:         "Chile Adventure Tours",
			AgentName:    "Carlos Mendez",
			Type:         "adventure",
			Specialties:  []string{"trekking", "climbing", "rafting", "wildlife"},
			Destinations: []string{"Torres del Paine", "Atacama", "Lake District", "Patagonia"},
			SellingPoints: []string{
				"Expert adventure guides",
				"Small group sizes",
				"All equipment included",
			},
			Pricing: PricingRules{
				BaseRatePerPersonPerDay: 120,
				DurationDays:            10,
				ChildDiscount:           0.3,
				ChildAgeThreshold:       12,
				MaxDiscount:             0.15,
				AddOns: []AddOn{
					{Name: "Airport transfers", Price: 200},
					{Name: "Travel insurance", Price: 180},
					{Name: "Guided excursions", Price: 600},
				},
				DietaryHandlingFee: 100,
			},
		},
		"family_adventures": {
			Key:          "family_adventures",
			Name:         "Family Fun Chile",
			AgentName:    "Maria Rodriguez",
			Type:         "family",
			Specialties:  []string{"family tours", "educational experiences", "safe adventures", "flexible timing"},
			Destinations: []string{"Santiago", "Valparaiso", "Lake District", "Easter Island"},
			SellingPoints: []string{
				"Kid-friendly guides",
				"Family rooms guaranteed",
				"24/7 medical support",
			},
			Pricing: PricingRules{
				BaseRatePerPersonPerDay: 150,
				DurationDays:            7,
				ChildDiscount:           0.3,
				ChildAgeThreshold:       12,
				MaxDiscount:             0.20,
				AddOns: []AddOn{
					{Name: "Airport transfers", Price: 200},
					{Name: "Travel insurance", Price: 180},
					{Name: "Guided tours", Price: 600},
				},
				DietaryHandlingFee: 100,
			},
		},
		"patagonia_tours": {
			Key:          "patagonia_tours",
			Name:         "Patagonia Wonders",
			AgentName:    "Maria Rodriguez",
			Type:         "standard",
			Specialties:  []string{"classic tours", "nature", "photography", "cultural experiences"},
			Destinations: []string{"Patagonia", "Lake District", "Chiloe", "Marble Caves"},
			SellingPoints: []string{
				"Local expert guides",
				"Sustainable tourism certified",
				"Authentic local experiences",
			},
			Pricing: PricingRules{
				BaseRatePerPersonPerDay: 180,
				DurationDays:            8,
				ChildDiscount:           0.25,
				ChildAgeThreshold:       10,
				MaxDiscount:             0.15,
				AddOns: []AddOn{
					{Name: "Airport transfers", Price: 220},
					{Name: "Travel insurance", Price: 190},
					{Name: "Photography workshop", Price: 300},
				},
				DietaryHandlingFee: 90,
			},
		},
	}
}
