// Package defaults holds the seed data created for a household that has
// no categories or tasks yet. Seeding is additive: a default task whose
// title is missing from the household's task list is re-inserted on
// load, but tasks users added or deleted are never touched.
package defaults

import "github.com/mwestby/choreboard/internal/model"

type CategorySeed struct {
	Name  string
	Icon  string
	Color string
}

type TaskSeed struct {
	Title        string
	CategoryName string
	Frequency    string
	Rating       int
}

func Categories() []CategorySeed {
	return []CategorySeed{
		{Name: "Living Room", Icon: "Sofa", Color: "#E3F2FD"},
		{Name: "Kitchen", Icon: "ChefHat", Color: "#FFF3E0"},
		{Name: "Bedroom", Icon: "Bed", Color: "#F3E5F5"},
		{Name: "Bathroom", Icon: "Bath", Color: "#E0F2F1"},
		{Name: "Outdoor", Icon: "TreePine", Color: "#E8F5E9"},
	}
}

func Tasks() []TaskSeed {
	return []TaskSeed{
		{Title: "Vacuum the carpet", CategoryName: "Living Room", Frequency: model.FrequencyWeekly, Rating: 1},
		{Title: "Dust furniture", CategoryName: "Living Room", Frequency: model.FrequencyWeekly, Rating: 1},
		{Title: "Wash dishes", CategoryName: "Kitchen", Frequency: model.FrequencyDaily, Rating: 1},
		{Title: "Clean countertops", CategoryName: "Kitchen", Frequency: model.FrequencyDaily, Rating: 1},
		{Title: "Take out trash", CategoryName: "Kitchen", Frequency: model.FrequencyDaily, Rating: 1},
		{Title: "Breakfast", CategoryName: "Kitchen", Frequency: model.FrequencyDaily, Rating: 2},
		{Title: "Lunch", CategoryName: "Kitchen", Frequency: model.FrequencyDaily, Rating: 3},
		{Title: "Dinner", CategoryName: "Kitchen", Frequency: model.FrequencyDaily, Rating: 3},
		{Title: "Dishwasher", CategoryName: "Kitchen", Frequency: model.FrequencyDaily, Rating: 2},
		{Title: "Washing Machine", CategoryName: "Bathroom", Frequency: model.FrequencyDaily, Rating: 2},
		{Title: "Make beds", CategoryName: "Bedroom", Frequency: model.FrequencyDaily, Rating: 1},
		{Title: "Change bedsheets", CategoryName: "Bedroom", Frequency: model.FrequencyWeekly, Rating: 1},
		{Title: "Clean toilet", CategoryName: "Bathroom", Frequency: model.FrequencyWeekly, Rating: 1},
		{Title: "Wipe mirrors", CategoryName: "Bathroom", Frequency: model.FrequencyWeekly, Rating: 1},
		{Title: "Clean kitchen", CategoryName: "Kitchen", Frequency: model.FrequencyWeekly, Rating: 1},
		{Title: "Water plants", CategoryName: "Outdoor", Frequency: model.FrequencyWeekly, Rating: 1},
		{Title: "Car wash", CategoryName: "Outdoor", Frequency: model.FrequencyWeekly, Rating: 1},
	}
}

// CategoryID resolves a seed's category by name, falling back to the
// first category when the name is missing.
func CategoryID(categories []model.Category, name string) string {
	if len(categories) == 0 {
		return ""
	}
	for _, cat := range categories {
		if cat.Name == name {
			return cat.ID
		}
	}
	return categories[0].ID
}
