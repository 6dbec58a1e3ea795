package main

import "aifitness/planner/internal/domain"

type sampleUser struct {
	Name     string
	Email    string
	Password string
	Age      int
	HeightCm float64
	WeightKg float64
	Gender   domain.Gender
}

var sampleUsers = []sampleUser{
	{Name: "qwerty", Email: "qwerty@gmail.com", Password: "qwerty", Age: 22, HeightCm: 155, WeightKg: 52, Gender: domain.GenderFemale},
	{Name: "john_doe", Email: "john@example.com", Password: "john123", Age: 30, HeightCm: 180, WeightKg: 75, Gender: domain.GenderMale},
	{Name: "jane_smith", Email: "jane@example.com", Password: "jane123", Age: 27, HeightCm: 165, WeightKg: 60, Gender: domain.GenderFemale},
	{Name: "mike89", Email: "mike@gmail.com", Password: "mikepass", Age: 29, HeightCm: 175, WeightKg: 70, Gender: domain.GenderMale},
	{Name: "sara92", Email: "sara@example.com", Password: "sara456", Age: 24, HeightCm: 160, WeightKg: 55, Gender: domain.GenderFemale},
}

var daysOfWeek = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

type dayMeals struct {
	Breakfast, Lunch, Dinner, Snacks string
}

var mealRotation = []dayMeals{
	{"Chia pudding with strawberries", "Quinoa salad with grilled tofu", "Lentil soup with mixed veggies", "Apple slices with peanut butter"},
	{"Smoothie bowl with granola", "Stuffed bell peppers", "Grilled mushrooms with asparagus", "Protein bar"},
	{"Oats with almonds and honey", "Whole grain pasta with tomato sauce", "Veggie curry and brown rice", "Boiled chickpeas"},
	{"Multigrain toast with avocado", "Veggie wrap with hummus", "Stir-fried tofu with kale", "Mixed fruit bowl"},
	{"Banana pancakes", "Baked falafel with couscous", "Paneer tikka with grilled zucchini", "Trail mix"},
	{"Upma with veggies", "Vegetable biryani", "Chickpea stew with spinach", "Coconut water and dates"},
	{"Idli with sambar", "Rajma chawal", "Stuffed paratha with curd", "Raisins and peanuts"},
}

type session struct {
	Exercise, Sets, Reps, Rest, Notes string
}

var workoutRotation = map[domain.WorkoutType][]session{
	domain.WorkoutCardio: {
		{"Jogging", "1", "30 minutes", "-", "Moderate"},
		{"Rest", "-", "-", "-", "-"},
		{"Cycling", "1", "30 minutes", "-", "High"},
		{"Rest", "-", "-", "-", "-"},
		{"Swimming", "1", "30 minutes", "-", "Moderate"},
		{"Rest", "-", "-", "-", "-"},
		{"Brisk walking", "1", "30 minutes", "-", "Low"},
	},
	domain.WorkoutStrength: {
		{"Push-ups", "3", "12", "60s", "High"},
		{"Squats", "3", "15", "60s", "Moderate"},
		{"Plank", "3", "1 min", "45s", "High"},
		{"Rest", "-", "-", "-", "-"},
		{"Burpees", "3", "10", "90s", "High"},
		{"Lunges", "3", "12 each leg", "60s", "Moderate"},
		{"Rest", "-", "-", "-", "-"},
	},
	domain.WorkoutYoga: {
		{"Sun salutations", "5", "rounds", "-", "Warm up slowly"},
		{"Hatha flow", "1", "40 minutes", "-", "Focus on breathing"},
		{"Rest", "-", "-", "-", "-"},
		{"Balance poses", "3", "1 min each", "30s", "Tree, warrior III"},
		{"Vinyasa flow", "1", "45 minutes", "-", "Moderate pace"},
		{"Yin yoga", "1", "30 minutes", "-", "Hold poses 3 min"},
		{"Rest", "-", "-", "-", "-"},
	},
	domain.WorkoutHIIT: {
		{"Sprint intervals", "8", "30s on / 30s off", "2 min", "High"},
		{"Rest", "-", "-", "-", "-"},
		{"Kettlebell circuit", "4", "40s per station", "90s", "High"},
		{"Active recovery walk", "1", "30 minutes", "-", "Low"},
		{"Tabata", "8", "20s on / 10s off", "1 min", "High"},
		{"Mobility", "1", "20 minutes", "-", "Low"},
		{"Rest", "-", "-", "-", "-"},
	},
}

var (
	seedWorkoutTypes = []domain.WorkoutType{domain.WorkoutCardio, domain.WorkoutStrength, domain.WorkoutYoga, domain.WorkoutHIIT, domain.WorkoutMixed}
	seedDietTypes    = []domain.DietType{domain.DietBalanced, domain.DietKeto, domain.DietVegan, domain.DietVegetarian, domain.DietMediterranean, domain.DietPaleo}
	seedRestrictions = []string{"Vegetarian", "", "Gluten-Free", "Dairy-Free", "Paleo"}
)
