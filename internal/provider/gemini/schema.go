package gemini

import (
	"fmt"
	"sort"
	"strings"

	"github.com/clydenvis-afk/nutriaitracker/internal/model"
)

type schema struct {
	Type        string            `json:"type"`
	Description string            `json:"description,omitempty"`
	Properties  map[string]schema `json:"properties,omitempty"`
	Items       *schema           `json:"items,omitempty"`
	Required    []string          `json:"required,omitempty"`
}

func str(desc string) schema { return schema{Type: "STRING", Description: desc} }
func num(desc string) schema { return schema{Type: "NUMBER", Description: desc} }

func arrayOf(desc string, item schema) schema {
	return schema{Type: "ARRAY", Description: desc, Items: &item}
}

func object(props map[string]schema, required ...string) schema {
	return schema{Type: "OBJECT", Properties: props, Required: required}
}

var foodSchema = object(map[string]schema{
	"foodItems": arrayOf("", object(map[string]schema{
		"name":        str("Short name of the food item"),
		"description": str("Portion size description (e.g., 1 cup, 100g, 1 burger)"),
		"calories":    num("Estimated calories (kcal)"),
		"protein":     num("Protein in grams"),
		"carbs":       num("Carbohydrates in grams"),
		"fat":         num("Fat in grams"),
	}, "name", "calories", "protein", "carbs", "fat", "description")),
}, "foodItems")

var exerciseSchema = object(map[string]schema{
	"exercises": arrayOf("", object(map[string]schema{
		"name":            str("Name of exercise (e.g. Running, Weight Lifting)"),
		"durationMinutes": num("Duration in minutes"),
		"caloriesBurned":  num("Estimated calories burned"),
	}, "name", "durationMinutes", "caloriesBurned")),
}, "exercises")

var recipeSchema = object(map[string]schema{
	"recipes": arrayOf("", object(map[string]schema{
		"name":        str("Name of the dish"),
		"description": str("Brief appetizing description"),
		"ingredients": arrayOf("List of main ingredients", str("")),
		"calories":    num(""),
		"protein":     num(""),
		"carbs":       num(""),
		"fat":         num(""),
	}, "name", "description", "ingredients", "calories", "protein", "carbs", "fat")),
}, "recipes")

// The wire types use pointers so absent required fields can be told apart
// from zero values.
type foodItemWire struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Calories    *float64 `json:"calories"`
	Protein     *float64 `json:"protein"`
	Carbs       *float64 `json:"carbs"`
	Fat         *float64 `json:"fat"`
}

func (w foodItemWire) toModel() (model.FoodEstimate, error) {
	if missing := missingFields(map[string]bool{
		"name":        w.Name == nil,
		"description": w.Description == nil,
		"calories":    w.Calories == nil,
		"protein":     w.Protein == nil,
		"carbs":       w.Carbs == nil,
		"fat":         w.Fat == nil,
	}); missing != "" {
		return model.FoodEstimate{}, fmt.Errorf("missing required fields: %s", missing)
	}
	return model.FoodEstimate{
		Name:        strings.TrimSpace(*w.Name),
		Description: strings.TrimSpace(*w.Description),
		Calories:    *w.Calories,
		Protein:     *w.Protein,
		Carbs:       *w.Carbs,
		Fat:         *w.Fat,
	}, nil
}

type exerciseWire struct {
	Name            *string  `json:"name"`
	DurationMinutes *float64 `json:"durationMinutes"`
	CaloriesBurned  *float64 `json:"caloriesBurned"`
}

func (w exerciseWire) toModel() (model.ExerciseEstimate, error) {
	if missing := missingFields(map[string]bool{
		"name":            w.Name == nil,
		"durationMinutes": w.DurationMinutes == nil,
		"caloriesBurned":  w.CaloriesBurned == nil,
	}); missing != "" {
		return model.ExerciseEstimate{}, fmt.Errorf("missing required fields: %s", missing)
	}
	return model.ExerciseEstimate{
		Name:            strings.TrimSpace(*w.Name),
		DurationMinutes: *w.DurationMinutes,
		CaloriesBurned:  *w.CaloriesBurned,
	}, nil
}

type recipeWire struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Ingredients *[]string `json:"ingredients"`
	Calories    *float64  `json:"calories"`
	Protein     *float64  `json:"protein"`
	Carbs       *float64  `json:"carbs"`
	Fat         *float64  `json:"fat"`
}

func (w recipeWire) toModel() (model.Recipe, error) {
	if missing := missingFields(map[string]bool{
		"name":        w.Name == nil,
		"description": w.Description == nil,
		"ingredients": w.Ingredients == nil,
		"calories":    w.Calories == nil,
		"protein":     w.Protein == nil,
		"carbs":       w.Carbs == nil,
		"fat":         w.Fat == nil,
	}); missing != "" {
		return model.Recipe{}, fmt.Errorf("missing required fields: %s", missing)
	}
	return model.Recipe{
		Name:        strings.TrimSpace(*w.Name),
		Description: strings.TrimSpace(*w.Description),
		Ingredients: append([]string{}, (*w.Ingredients)...),
		Calories:    *w.Calories,
		Protein:     *w.Protein,
		Carbs:       *w.Carbs,
		Fat:         *w.Fat,
	}, nil
}

func missingFields(checks map[string]bool) string {
	names := make([]string, 0)
	for name, missing := range checks {
		if missing {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
