package services

import "testmaster/models"

// quizBank is the fixed built-in question set the session store serves. It is
// intentionally independent of the admin catalog.
var quizBank = map[string][]models.Question{
	"math": {
		{ID: 1, Question: "What is the value of x if 2x + 5 = 15?", Options: []string{"3", "5", "7", "10"}, CorrectAnswer: 1, Category: "math"},
		{ID: 2, Question: "What is the area of a circle with radius 7 cm? (Use π = 22/7)", Options: []string{"154 cm²", "144 cm²", "132 cm²", "168 cm²"}, CorrectAnswer: 0, Category: "math"},
		{ID: 3, Question: "Simplify: (3² × 3³) ÷ 3⁴", Options: []string{"3", "9", "27", "1"}, CorrectAnswer: 0, Category: "math"},
		{ID: 4, Question: "What is the sum of interior angles of a hexagon?", Options: []string{"540°", "720°", "900°", "1080°"}, CorrectAnswer: 1, Category: "math"},
		{ID: 5, Question: "If sin θ = 3/5, what is cos θ?", Options: []string{"4/5", "3/4", "5/3", "5/4"}, CorrectAnswer: 0, Category: "math"},
		{ID: 6, Question: "What is the derivative of x³ + 2x?", Options: []string{"3x² + 2", "3x² + 2x", "x² + 2", "3x + 2"}, CorrectAnswer: 0, Category: "math"},
		{ID: 7, Question: "What is the LCM of 12 and 18?", Options: []string{"36", "72", "54", "24"}, CorrectAnswer: 0, Category: "math"},
		{ID: 8, Question: "Solve: √(144) + √(81)", Options: []string{"21", "23", "25", "27"}, CorrectAnswer: 0, Category: "math"},
		{ID: 9, Question: "What is 15% of 240?", Options: []string{"36", "32", "40", "28"}, CorrectAnswer: 0, Category: "math"},
		{ID: 10, Question: "If a = 3 and b = 4, what is the value of a² + b² + 2ab?", Options: []string{"49", "25", "36", "64"}, CorrectAnswer: 0, Category: "math"},
	},
	"science": {
		{ID: 1, Question: "What is the chemical symbol for Gold?", Options: []string{"Go", "Gd", "Au", "Ag"}, CorrectAnswer: 2, Category: "science"},
		{ID: 2, Question: "What is the powerhouse of the cell?", Options: []string{"Nucleus", "Mitochondria", "Ribosome", "Endoplasmic Reticulum"}, CorrectAnswer: 1, Category: "science"},
		{ID: 3, Question: "What is the speed of light in vacuum?", Options: []string{"3 × 10⁶ m/s", "3 × 10⁸ m/s", "3 × 10¹⁰ m/s", "3 × 10⁴ m/s"}, CorrectAnswer: 1, Category: "science"},
		{ID: 4, Question: "Which planet is known as the Red Planet?", Options: []string{"Venus", "Jupiter", "Mars", "Saturn"}, CorrectAnswer: 2, Category: "science"},
		{ID: 5, Question: "What is the atomic number of Carbon?", Options: []string{"4", "6", "8", "12"}, CorrectAnswer: 1, Category: "science"},
		{ID: 6, Question: "What type of bond is formed between Sodium and Chlorine?", Options: []string{"Covalent", "Ionic", "Metallic", "Hydrogen"}, CorrectAnswer: 1, Category: "science"},
		{ID: 7, Question: "What is the SI unit of force?", Options: []string{"Joule", "Watt", "Newton", "Pascal"}, CorrectAnswer: 2, Category: "science"},
		{ID: 8, Question: "Which gas is most abundant in Earth's atmosphere?", Options: []string{"Oxygen", "Carbon Dioxide", "Nitrogen", "Argon"}, CorrectAnswer: 2, Category: "science"},
		{ID: 9, Question: "What is the process by which plants make food?", Options: []string{"Respiration", "Photosynthesis", "Fermentation", "Digestion"}, CorrectAnswer: 1, Category: "science"},
		{ID: 10, Question: "What is the pH of pure water?", Options: []string{"0", "7", "14", "1"}, CorrectAnswer: 1, Category: "science"},
	},
	"gk": {
		{ID: 1, Question: "Which is the largest ocean in the world?", Options: []string{"Atlantic Ocean", "Indian Ocean", "Pacific Ocean", "Arctic Ocean"}, CorrectAnswer: 2, Category: "gk"},
		{ID: 2, Question: "Who painted the Mona Lisa?", Options: []string{"Vincent van Gogh", "Pablo Picasso", "Leonardo da Vinci", "Michelangelo"}, CorrectAnswer: 2, Category: "gk"},
		{ID: 3, Question: "What is the capital of Australia?", Options: []string{"Sydney", "Melbourne", "Canberra", "Perth"}, CorrectAnswer: 2, Category: "gk"},
		{ID: 4, Question: "In which year did World War II end?", Options: []string{"1943", "1944", "1945", "1946"}, CorrectAnswer: 2, Category: "gk"},
		{ID: 5, Question: "What is the currency of Japan?", Options: []string{"Yuan", "Won", "Yen", "Ringgit"}, CorrectAnswer: 2, Category: "gk"},
		{ID: 6, Question: "Which country is known as the Land of the Rising Sun?", Options: []string{"China", "Japan", "Thailand", "Vietnam"}, CorrectAnswer: 1, Category: "gk"},
		{ID: 7, Question: "What is the largest mammal in the world?", Options: []string{"African Elephant", "Blue Whale", "Giraffe", "Polar Bear"}, CorrectAnswer: 1, Category: "gk"},
		{ID: 8, Question: "Who wrote 'Romeo and Juliet'?", Options: []string{"Charles Dickens", "William Shakespeare", "Jane Austen", "Mark Twain"}, CorrectAnswer: 1, Category: "gk"},
		{ID: 9, Question: "What is the smallest country in the world?", Options: []string{"Monaco", "San Marino", "Vatican City", "Liechtenstein"}, CorrectAnswer: 2, Category: "gk"},
		{ID: 10, Question: "Which river is the longest in the world?", Options: []string{"Amazon", "Nile", "Yangtze", "Mississippi"}, CorrectAnswer: 1, Category: "gk"},
	},
	"english": {
		{ID: 1, Question: "What is the past tense of 'go'?", Options: []string{"Goed", "Gone", "Went", "Going"}, CorrectAnswer: 2, Category: "english"},
		{ID: 2, Question: "Which word is a synonym for 'happy'?", Options: []string{"Sad", "Joyful", "Angry", "Tired"}, CorrectAnswer: 1, Category: "english"},
		{ID: 3, Question: "What is the plural of 'child'?", Options: []string{"Childs", "Childrens", "Children", "Childies"}, CorrectAnswer: 2, Category: "english"},
		{ID: 4, Question: "Identify the adjective: 'The beautiful flower bloomed.'", Options: []string{"The", "Beautiful", "Flower", "Bloomed"}, CorrectAnswer: 1, Category: "english"},
		{ID: 5, Question: "What is an antonym of 'ancient'?", Options: []string{"Old", "Historic", "Modern", "Antique"}, CorrectAnswer: 2, Category: "english"},
		{ID: 6, Question: "Which sentence is grammatically correct?", Options: []string{"She don't like apples.", "She doesn't likes apples.", "She doesn't like apples.", "She not like apples."}, CorrectAnswer: 2, Category: "english"},
		{ID: 7, Question: "What type of noun is 'team'?", Options: []string{"Proper noun", "Collective noun", "Abstract noun", "Common noun"}, CorrectAnswer: 1, Category: "english"},
		{ID: 8, Question: "Choose the correct spelling:", Options: []string{"Accomodate", "Accommodate", "Acommodate", "Acomodate"}, CorrectAnswer: 1, Category: "english"},
		{ID: 9, Question: "What is the comparative form of 'good'?", Options: []string{"Gooder", "More good", "Better", "Best"}, CorrectAnswer: 2, Category: "english"},
		{ID: 10, Question: "'She sings beautifully.' What part of speech is 'beautifully'?", Options: []string{"Adjective", "Adverb", "Noun", "Verb"}, CorrectAnswer: 1, Category: "english"},
	},
}

// QuestionsForCategory returns the bank entries for a category, empty for an
// unknown one.
func QuestionsForCategory(category string) []models.Question {
	return quizBank[category]
}

// Categories lists the available quiz categories with their question counts.
func Categories() map[string]int {
	out := make(map[string]int, len(quizBank))
	for category, questions := range quizBank {
		out[category] = len(questions)
	}
	return out
}
