package catalog

// Default returns the built-in KireiRoutine catalog.
func Default() *Catalog {
	c, err := New(defaultCategories(), defaultManual())
	if err != nil {
		panic("catalog: built-in data is invalid: " + err.Error())
	}
	return c
}

func defaultCategories() []Category {
	return []Category{
		{
			Frequency:   Weekly,
			Label:       "Weekly reset",
			Description: "Light passes that keep the home livable between deep cleans.",
			Sections: []Section{
				{
					ID:       "weekly-kitchen",
					AreaName: "Kitchen",
					ImageKey: "kitchen",
					Step:     1,
					Tools:    []string{"microfiber cloth", "neutral detergent", "sponge"},
					Tasks: []Task{
						{ID: "w-kitchen-counters", Text: "Wipe counters and backsplash"},
						{ID: "w-kitchen-stove", Text: "Degrease stovetop and knobs"},
						{ID: "w-kitchen-sink", Text: "Scrub sink and drain basket"},
					},
					ParallelTip: "Soak the drain basket while you wipe the counters.",
					WaitTime:    10,
					WaitAction:  "Let the degreaser sit on the stovetop",
				},
				{
					ID:       "weekly-bathroom",
					AreaName: "Bathroom",
					ImageKey: "bathroom",
					Step:     2,
					Tools:    []string{"bath brush", "toilet brush", "squeegee"},
					Tasks: []Task{
						{ID: "w-bath-tub", Text: "Scrub bathtub and floor"},
						{ID: "w-bath-toilet", Text: "Clean toilet bowl and seat"},
						{ID: "w-bath-mirror", Text: "Squeegee mirror"},
					},
				},
				{
					ID:       "weekly-floors",
					AreaName: "Floors",
					ImageKey: "floors",
					Step:     3,
					Tools:    []string{"vacuum", "floor wiper"},
					Tasks: []Task{
						{ID: "w-floor-vacuum", Text: "Vacuum all rooms"},
						{ID: "w-floor-entrance", Text: "Sweep the genkan"},
					},
				},
			},
		},
		{
			Frequency:   BiWeekly,
			Label:       "Every two weeks",
			Description: "Surfaces that collect grime slowly.",
			Sections: []Section{
				{
					ID:       "biweekly-bedding",
					AreaName: "Bedroom",
					ImageKey: "bedroom",
					Step:     1,
					Tools:    []string{"laundry net"},
					Tasks: []Task{
						{ID: "b-bed-sheets", Text: "Wash sheets and pillowcases"},
						{ID: "b-bed-air", Text: "Air out the futon"},
					},
					WaitTime:   60,
					WaitAction: "Run the washer",
				},
				{
					ID:       "biweekly-fridge",
					AreaName: "Refrigerator",
					ImageKey: "fridge",
					Step:     2,
					Tools:    []string{"alcohol spray", "cloth"},
					Tasks: []Task{
						{ID: "b-fridge-expired", Text: "Throw out expired food"},
						{ID: "b-fridge-shelves", Text: "Wipe shelves and door pockets"},
					},
				},
			},
		},
		{
			Frequency:   Monthly,
			Label:       "Monthly",
			Description: "Spots that build up over a month.",
			Sections: []Section{
				{
					ID:       "monthly-bath-deep",
					AreaName: "Bathroom deep clean",
					ImageKey: "bathroom",
					Step:     1,
					Tools:    []string{"mold remover", "old toothbrush", "gloves"},
					Tasks: []Task{
						{ID: "m-bath-drain", Text: "Clean bathtub drain"},
						{ID: "m-bath-mold", Text: "Treat mold on grout"},
						{ID: "m-bath-fan", Text: "Dust ventilation fan cover"},
					},
					ParallelTip: "Apply mold remover first, then work on the drain.",
					WaitTime:    15,
					WaitAction:  "Let mold remover work",
				},
				{
					ID:       "monthly-appliances",
					AreaName: "Appliances",
					ImageKey: "appliances",
					Step:     2,
					Tools:    []string{"citric acid", "cloth"},
					Tasks: []Task{
						{ID: "m-app-microwave", Text: "Steam-clean the microwave"},
						{ID: "m-app-kettle", Text: "Descale the kettle"},
						{ID: "m-app-washer-filter", Text: "Empty washer lint filter"},
					},
				},
			},
		},
		{
			Frequency:   Quarterly,
			Label:       "Quarterly",
			Description: "Seasonal jobs, once every three months.",
			Sections: []Section{
				{
					ID:       "quarterly-kitchen",
					AreaName: "Kitchen deep clean",
					ImageKey: "kitchen",
					Step:     1,
					Tools:    []string{"baking soda", "scraper"},
					Tasks: []Task{
						{ID: "q-kitchen-hood", Text: "Degrease range hood filter"},
						{ID: "q-kitchen-cabinets", Text: "Wipe cabinet fronts"},
					},
					WaitTime:   30,
					WaitAction: "Soak the hood filter",
				},
				{
					ID:       "quarterly-windows",
					AreaName: "Windows",
					ImageKey: "windows",
					Step:     2,
					Tools:    []string{"squeegee", "newspaper"},
					Tasks: []Task{
						{ID: "q-window-glass", Text: "Clean window glass"},
						{ID: "q-window-tracks", Text: "Vacuum sliding door tracks"},
					},
				},
			},
		},
		{
			Frequency:   SemiAnnual,
			Label:       "Twice a year",
			Description: "Bigger jobs for spring and autumn.",
			Sections: []Section{
				{
					ID:       "semiannual-aircon",
					AreaName: "Air conditioner",
					ImageKey: "aircon",
					Step:     1,
					Tools:    []string{"vacuum", "soft brush"},
					Tasks: []Task{
						{ID: "s-aircon-filter", Text: "Wash air conditioner filter"},
						{ID: "s-aircon-fins", Text: "Brush dust off the fins"},
					},
					WaitTime:   45,
					WaitAction: "Let the filter dry",
				},
				{
					ID:       "semiannual-closet",
					AreaName: "Closet",
					ImageKey: "closet",
					Step:     2,
					Tools:    []string{"dehumidifier packs"},
					Tasks: []Task{
						{ID: "s-closet-swap", Text: "Swap seasonal clothes"},
						{ID: "s-closet-dehumid", Text: "Replace dehumidifier packs"},
					},
				},
			},
		},
		{
			Frequency:   Annual,
			Label:       "Once a year",
			Description: "The year-end big clean (oosouji).",
			Sections: []Section{
				{
					ID:       "annual-oosouji",
					AreaName: "Whole home",
					ImageKey: "home",
					Step:     1,
					Tools:    []string{"ladder", "bucket", "rags"},
					Tasks: []Task{
						{ID: "a-home-lights", Text: "Dust light fixtures"},
						{ID: "a-home-walls", Text: "Wipe walls and switch plates"},
						{ID: "a-home-balcony", Text: "Wash the balcony"},
					},
				},
			},
		},
	}
}

func defaultManual() map[string][]string {
	return map[string][]string{
		"weekly-kitchen": {
			"Clear everything off the counters",
			"Spray degreaser on the stovetop",
			"Wipe counters from back to front",
			"Wipe the stovetop and knobs",
			"Scrub the sink and rinse the drain basket",
		},
		"monthly-bath-deep": {
			"Ventilate and put on gloves",
			"Apply mold remover to grout",
			"Pull hair out of the drain and scrub the trap",
			"Rinse mold remover thoroughly",
			"Dust the fan cover",
		},
		"semiannual-aircon": {
			"Switch off the breaker",
			"Remove and vacuum the filter",
			"Wash the filter with water",
			"Brush the fins gently",
			"Refit the dried filter",
		},
	}
}
