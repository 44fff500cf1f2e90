// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalogtest

// Sample drinks in catalog wire form.
var (
	Mojito = Drink{
		"idDrink": "11000", "strDrink": "Mojito", "strCategory": "Cocktail",
		"strGlass": "Highball glass", "strAlcoholic": "Alcoholic",
		"strTags": "IBA,ContemporaryClassic", "strInstructions": "Muddle mint with sugar and lime.",
		"strIngredient1": "Light rum", "strMeasure1": "2-3 oz",
		"strIngredient2": "Lime", "strMeasure2": "Juice of 1",
		"strIngredient3": "Mint", "strMeasure3": "2-4",
		"dateModified": "2016-11-04 09:17:09",
	}
	Margarita = Drink{
		"idDrink": "11007", "strDrink": "Margarita", "strCategory": "Ordinary Drink",
		"strGlass": "Cocktail glass", "strAlcoholic": "Alcoholic",
		"strTags": "IBA", "strInstructions": "Rub the rim of the glass with lime.",
		"strIngredient1": "Tequila", "strMeasure1": "1 1/2 oz",
		"strIngredient2": "Triple sec", "strMeasure2": "1/2 oz",
		"strIngredient3": "Lime juice", "strMeasure3": "1 oz",
		"strIngredient4": "Salt",
	}
	VirginMojito = Drink{
		"idDrink": "12780", "strDrink": "Virgin Mojito", "strCategory": "Cocktail",
		"strGlass": "Highball glass", "strAlcoholic": "Non alcoholic",
		"strInstructions": "Muddle and top with soda.",
		"strIngredient1":  "Mint", "strIngredient2": "Lime", "strIngredient3": "Soda water",
	}
	Negroni = Drink{
		"idDrink": "11003", "strDrink": "Negroni", "strCategory": "Ordinary Drink",
		"strGlass": "Old-fashioned glass", "strAlcoholic": "Alcoholic",
		"strInstructions": "Stir into glass over ice.",
		"strIngredient1":  "Gin", "strMeasure1": "1 oz",
		"strIngredient2": "Campari", "strMeasure2": "1 oz",
		"strIngredient3": "Sweet Vermouth", "strMeasure3": "1 oz",
	}
)

// All lists every sample drink.
func All() []Drink {
	return []Drink{Mojito, Margarita, VirginMojito, Negroni}
}
