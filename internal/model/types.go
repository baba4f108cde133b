package model

// MealItem is one confirmed food record. JSON keys match the backup format.
type MealItem struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	PortionDescription string  `json:"portionDescription,omitempty"`
	Brand              string  `json:"brand,omitempty"`
	Calories           float64 `json:"calories"`
	Protein            float64 `json:"protein"`
	Carbs              float64 `json:"carbs"`
	Fat                float64 `json:"fat"`
	Timestamp          int64   `json:"timestamp"`
	DateStr            string  `json:"dateStr"`
}

type ExerciseItem struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes float64 `json:"durationMinutes"`
	CaloriesBurned  float64 `json:"caloriesBurned"`
	Timestamp       int64   `json:"timestamp"`
	DateStr         string  `json:"dateStr"`
}

type WeightLog struct {
	ID     string  `json:"id"`
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
}

type UserProfile struct {
	Name           string  `json:"name"`
	Age            int     `json:"age"`
	Height         float64 `json:"height"`
	CurrentWeight  float64 `json:"currentWeight"`
	TargetCalories float64 `json:"targetCalories"`
}

func DefaultProfile() UserProfile {
	return UserProfile{
		Name:           "User",
		Age:            25,
		Height:         170,
		CurrentWeight:  70,
		TargetCalories: 2000,
	}
}

type Recipe struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Ingredients []string `json:"ingredients"`
	Calories    float64  `json:"calories"`
	Protein     float64  `json:"protein"`
	Carbs       float64  `json:"carbs"`
	Fat         float64  `json:"fat"`
}

// FoodEstimate is an unconfirmed AI guess for one food item.
type FoodEstimate struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fat         float64 `json:"fat"`
}

type ExerciseEstimate struct {
	Name            string  `json:"name"`
	DurationMinutes float64 `json:"durationMinutes"`
	CaloriesBurned  float64 `json:"caloriesBurned"`
}

type RecipeRequest struct {
	Age            int
	TargetCalories float64
	RecentMeals    []string
}
