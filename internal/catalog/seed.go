package catalog

import "github.com/hammamikhairi/recipedesk/internal/domain"

// seed populates the catalog with a small kitchen.
func (m *MemoryCatalog) seed() {
	for _, name := range []string{"Bread", "Risotto", "Tart"} {
		m.dishes[m.nextDish] = domain.Dish{ID: m.nextDish, Name: name}
		m.nextDish++
	}

	for _, r := range []domain.Recipe{sourdough(), focaccia(), mushroomRisotto()} {
		r.ID = m.nextRecipe
		m.nextRecipe++
		m.recipes[r.ID] = r
	}

	for _, d := range pairingSheets() {
		m.ingredients[d.ID] = d
	}
	m.log.Debug("seeded %d dishes, %d recipes, %d ingredients", len(m.dishes), len(m.recipes), len(m.ingredients))
}

func sourdough() domain.Recipe {
	return domain.Recipe{
		Name:   "Country Sourdough",
		DishID: 1,
		Components: []domain.Component{
			{
				Name: "levain",
				Ingredients: []domain.Ingredient{
					{Name: "starter", Quantity: 20, Unit: "g"},
					{Name: "whole wheat flour", Quantity: 100, Unit: "g"},
					{Name: "water", Quantity: 100, Unit: "g"},
				},
				Instructions: []domain.Instruction{
					{Step: 1, Text: "Mix and leave covered at room temperature overnight."},
				},
			},
			{
				Name: "dough",
				Ingredients: []domain.Ingredient{
					{Name: "bread flour", Quantity: 900, Unit: "g"},
					{Name: "water", Quantity: 700, Unit: "g"},
					{Name: "salt", Quantity: 20, Unit: "g"},
				},
				Instructions: []domain.Instruction{
					{Step: 1, Text: "Autolyse flour and most of the water for an hour."},
					{Step: 2, Text: "Add levain, salt and the remaining water."},
					{Step: 3, Text: "Bulk ferment with four sets of folds."},
					{Step: 4, Text: "Shape, retard overnight, bake in a dutch oven at 250C."},
				},
			},
		},
	}
}

func focaccia() domain.Recipe {
	return domain.Recipe{
		Name:   "Focaccia",
		DishID: 1,
		Components: []domain.Component{{
			Name: "dough",
			Ingredients: []domain.Ingredient{
				{Name: "flour", Quantity: 500, Unit: "g"},
				{Name: "water", Quantity: 400, Unit: "g"},
				{Name: "olive oil", Quantity: 4, Unit: "tbsp"},
				{Name: "yeast", Quantity: 7, Unit: "g"},
				{Name: "flaky salt", Quantity: 1, Unit: "tsp"},
			},
			Instructions: []domain.Instruction{
				{Step: 1, Text: "Mix everything but the salt and rest overnight in the fridge."},
				{Step: 2, Text: "Pan with plenty of oil and dimple."},
				{Step: 3, Text: "Salt and bake at 230C for 25 minutes."},
			},
		}},
	}
}

func mushroomRisotto() domain.Recipe {
	return domain.Recipe{
		Name:   "Mushroom Risotto",
		DishID: 2,
		Components: []domain.Component{
			{
				Name: "risotto",
				Ingredients: []domain.Ingredient{
					{Name: "carnaroli rice", Quantity: 320, Unit: "g"},
					{Name: "stock", Quantity: 1.2, Unit: "l"},
					{Name: "shallot", Quantity: 1, Unit: ""},
					{Name: "white wine", Quantity: 100, Unit: "ml"},
					{Name: "parmesan", Quantity: 60, Unit: "g"},
				},
				Instructions: []domain.Instruction{
					{Step: 1, Text: "Sweat the shallot and toast the rice."},
					{Step: 2, Text: "Deglaze with wine, then add stock a ladle at a time."},
					{Step: 3, Text: "Off the heat, beat in butter and parmesan."},
				},
			},
			{
				Name: "mushrooms",
				Ingredients: []domain.Ingredient{
					{Name: "mixed mushrooms", Quantity: 300, Unit: "g"},
					{Name: "thyme", Quantity: 3, Unit: "sprigs"},
				},
				Instructions: []domain.Instruction{
					{Step: 1, Text: "Sear hard in a dry pan, then add butter and thyme."},
				},
			},
		},
	}
}

func pairingSheets() []domain.IngredientDetail {
	return []domain.IngredientDetail{
		{
			ID:         1,
			Title:      "Tomato",
			Avoid:      []string{"milk"},
			Affinities: []string{"basil + olive oil", "garlic + oregano"},
			Matches:    []domain.Match{{Name: "salt", Score: 4}, {Name: "basil", Score: 4}, {Name: "olive oil", Score: 3}, {Name: "mozzarella", Score: 3}, {Name: "anchovy", Score: 2}, {Name: "vanilla", Score: 1}},
		},
		{
			ID:         2,
			Title:      "Mushroom",
			Avoid:      []string{"citrus juice"},
			Affinities: []string{"butter + thyme"},
			Matches:    []domain.Match{{Name: "thyme", Score: 4}, {Name: "butter", Score: 4}, {Name: "garlic", Score: 3}, {Name: "parmesan", Score: 3}, {Name: "cream", Score: 2}},
		},
		{
			ID:         3,
			Title:      "Lemon",
			Avoid:      []string{},
			Affinities: []string{"honey + ginger"},
			Matches:    []domain.Match{{Name: "fish", Score: 4}, {Name: "ginger", Score: 3}, {Name: "honey", Score: 3}, {Name: "mint", Score: 2}, {Name: "beef", Score: 0}},
		},
		{
			ID:         4,
			Title:      "Basil",
			Avoid:      []string{},
			Affinities: []string{"tomato + mozzarella"},
			Matches:    []domain.Match{{Name: "tomato", Score: 4}, {Name: "pine nuts", Score: 3}, {Name: "lemon", Score: 2}},
		},
	}
}
