package dashboard

// GuideEntry is one collapsible section of the project guide.
type GuideEntry struct {
	Title string
	Body  string
}

const (
	title    = "Hooponomics: The NBA Player Value Predictor"
	subtitle = "Predicting NBA players' market value based on their statistical performance"
	about    = "The Hooponomics prediction model places each current NBA player into one of seven market value classes, " +
		"reflecting the expected yearly salary range if they were to sign a new contract at the end of the season. " +
		"It was trained on free agent data from the preceding five years, using a curated set of basic player stats and advanced metrics."
	algorithmNote = "The model is a Random Forest Classifier that predicts a player's market value from Games Played, " +
		"Games Started, Minutes Per Game, Points Per Game, Usage Percentage, Offensive Box Plus/Minus, " +
		"Value Over Replacement Player and Win Shares. The seven market value classes are $0-5M, $5-10M, " +
		"$10-15M, $15-20M, $20-25M, $25-30M and $30M+."
)

// Guide is the explanatory content shown on the Guide tab.
var Guide = []GuideEntry{
	{
		Title: "Player Market Value Estimation: Our Approach",
		Body: "A player's salary and real market value often diverge because contracts are fixed and span several years. " +
			"A model trained on historical free agents' performance and salary changes predicts what a new contract would pay, " +
			"and can be applied to every player to estimate market value.",
	},
	{
		Title: "Machine Learning Model Utilized",
		Body: "A Random Forest Classifier, an ensemble of decision trees, classifies players into seven salary range groups " +
			"with balanced class representation.",
	},
	{
		Title: "Model Training Process",
		Body: "The model was trained on free agents from 2015 to 2020 using stats from the final year of each contract. " +
			"Data was stratified into training, validation and holdout sets and hyperparameters were tuned on the validation set.",
	},
	{
		Title: "Features Considered by the Model",
		Body: "Eight stats cover both rate and volume: points per game, minutes per game, games played, games started, " +
			"usage percentage, offensive box plus/minus, value over replacement player and win shares.",
	},
	{
		Title: "Model Performance",
		Body:  "Accuracy on the 2020 holdout set was 68%, and misclassifications were rarely far from the true class.",
	},
	{
		Title: "Surplus Value Calculation",
		Body: "Surplus value is the conservative difference between market value and actual salary: zero when the salary " +
			"falls inside the market value range, otherwise the distance to the nearest edge of that range.",
	},
	{
		Title: "Why is $30M+ the highest class?",
		Body: "League rules cap the first year of a new contract between roughly $28.1M and $39.3M, and most teams offer " +
			"eligible players the maximum, so all max players share a single $30M+ class.",
	},
	{
		Title: "Determining Similar Players",
		Body: "Besides the predicted class, the model estimates the probability of that prediction. Similar players share " +
			"a player's position and predicted class and have the closest probability estimates.",
	},
}
